package user

import (
	"errors"
)

var (
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrUserDoesNotExist     = errors.New("user does not exist")
	ErrSessionDoesNotExist  = errors.New("session does not exist")
	ErrAlreadyAuthenticated = errors.New("caller is already authenticated")
)
