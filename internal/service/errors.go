package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("forbidden: insufficient permissions")
)

// RoleMismatchError is returned when a user authenticates with valid
// credentials but under a role that is not theirs. Unlike invalid
// credentials, the denial message names both roles.
type RoleMismatchError struct {
	Have string
	Want string
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("invalid credentials: you are a %q trying to log in as %q", e.Have, e.Want)
}

type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}
