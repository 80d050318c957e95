package create_reservation

import "errors"

var (
	// ErrInvalidInput is returned for structurally invalid request fields.
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInvalidInterval is returned for malformed or inverted date/time inputs.
	ErrInvalidInterval = errors.New("create_reservation: invalid interval")

	// ErrRoomRequired is returned when a hotel reservation carries no room.
	ErrRoomRequired = errors.New("create_reservation: hotel reservation requires a room")

	// ErrEndTimeRequired is returned when a hotel reservation carries no end time.
	ErrEndTimeRequired = errors.New("create_reservation: hotel reservation requires an end time")

	// ErrRoomNotAllowed is returned when a non-hotel reservation carries a room.
	ErrRoomNotAllowed = errors.New("create_reservation: only hotel reservations may carry a room")

	// ErrForbidden is returned when the dog does not belong to the tenant.
	ErrForbidden = errors.New("create_reservation: dog does not belong to tenant")

	// ErrRoomNotFound is returned when the referenced room does not exist.
	ErrRoomNotFound = errors.New("create_reservation: room not found")

	// ErrRoomDisabled is returned when the referenced room takes no new assignments.
	ErrRoomDisabled = errors.New("create_reservation: room is disabled")

	// ErrRoomUnavailable is returned when another reservation occupies the room.
	ErrRoomUnavailable = errors.New("create_reservation: room is not available for the interval")

	// ErrCapacityExceeded is returned when the tenant's daily cap is reached.
	ErrCapacityExceeded = errors.New("create_reservation: daily reservation capacity exceeded")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("create_reservation: internal error")
)
