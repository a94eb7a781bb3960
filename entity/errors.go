package entity

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("already exists")
	ErrInvalidCode        = errors.New("invalid code")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMailFailed         = errors.New("mail not sent")
	ErrDisabled           = errors.New("disabled")
)
