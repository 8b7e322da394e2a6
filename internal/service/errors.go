package service

import "errors"

var (
	ErrSessionExpired  = errors.New("error session expired")
	ErrStaleAction     = errors.New("error action does not match current step")
	ErrNotOnSummary    = errors.New("error form is not on the summary step")
	ErrAlreadySent     = errors.New("error form already submitted")
	ErrStorageDisabled = errors.New("error report storage is not configured")
)
