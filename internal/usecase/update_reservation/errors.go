package update_reservation

import "errors"

var (
	// ErrInvalidInput is returned for structurally invalid request fields.
	ErrInvalidInput = errors.New("update_reservation: invalid input data")

	// ErrInvalidInterval is returned for malformed or inverted date/time inputs.
	ErrInvalidInterval = errors.New("update_reservation: invalid interval")

	// ErrReservationNotFound is returned when the reservation does not exist.
	ErrReservationNotFound = errors.New("update_reservation: reservation not found")

	// ErrRoomRequired is returned when the merged state is hotel without a room.
	ErrRoomRequired = errors.New("update_reservation: hotel reservation requires a room")

	// ErrEndTimeRequired is returned when the merged state is hotel without an end time.
	ErrEndTimeRequired = errors.New("update_reservation: hotel reservation requires an end time")

	// ErrRoomNotAllowed is returned when the merged state is non-hotel with a room.
	ErrRoomNotAllowed = errors.New("update_reservation: only hotel reservations may carry a room")

	// ErrRoomNotFound is returned when the newly assigned room does not exist.
	ErrRoomNotFound = errors.New("update_reservation: room not found")

	// ErrRoomDisabled is returned when the newly assigned room takes no new assignments.
	ErrRoomDisabled = errors.New("update_reservation: room is disabled")

	// ErrRoomUnavailable is returned when another reservation occupies the room.
	ErrRoomUnavailable = errors.New("update_reservation: room is not available for the interval")

	// ErrInvalidTransition is returned for a status change outside the
	// transition matrix (checked_out and cancelled are terminal).
	ErrInvalidTransition = errors.New("update_reservation: invalid status transition")

	// ErrInternal is returned on unexpected failures.
	ErrInternal = errors.New("update_reservation: internal error")
)
