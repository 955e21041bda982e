package billing

import "errors"

var (
	ErrBillNotFound = errors.New("bill not found")
	ErrAlreadyPaid  = errors.New("bill is already paid")
)
