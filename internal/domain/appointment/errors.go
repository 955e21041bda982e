package appointment

import "errors"

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrInvalidStatusTransition = errors.New("invalid appointment status transition")
	ErrInvalidStatus           = errors.New("invalid appointment status")
	ErrInvalidDateTime         = errors.New("invalid appointment date/time")
)
