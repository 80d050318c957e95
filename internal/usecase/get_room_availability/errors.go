package get_room_availability

import "errors"

var (
	// ErrInvalidInput is returned for structurally invalid request fields.
	ErrInvalidInput = errors.New("get_room_availability: invalid input data")

	// ErrInvalidInterval is returned for malformed or inverted date/time inputs.
	ErrInvalidInterval = errors.New("get_room_availability: invalid interval")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("get_room_availability: internal error")
)
