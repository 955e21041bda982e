package prescription

import "errors"

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrNoAcceptedContext    = errors.New("no accepted appointment with this patient")
)
