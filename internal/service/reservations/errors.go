package reservations

import "errors"

var (
	// ErrReservationNotFound is returned when the reservation does not exist.
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrCannotCancel is returned when the reservation is already terminal.
	ErrCannotCancel = errors.New("reservation cannot be cancelled")

	// ErrInvalidInput is returned for invalid request data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("service: internal error")
)
