package profile

import "errors"

var ErrProfileNotFound = errors.New("profile record not found")
