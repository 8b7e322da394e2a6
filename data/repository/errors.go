package repository

import "errors"

var (
	ErrAlreadyExists = errors.New("error already exists")
)
