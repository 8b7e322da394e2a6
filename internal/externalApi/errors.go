package externalApi

import "errors"

var (
	ErrUnexpectedStatus = errors.New("unexpected response status")
)
