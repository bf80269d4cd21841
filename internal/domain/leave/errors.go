package leave

import "errors"

var (
	ErrInvalidRange       = errors.New("end date must not be before start date")
	ErrOverlappingRequest = errors.New("you have an overlapping leave request")
	ErrAlreadyDecided     = errors.New("leave request has already been processed")
	ErrNotFound           = errors.New("leave request not found")
)
