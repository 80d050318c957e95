package room

import "errors"

var (
	// ErrRoomNotFound is returned when the room does not exist for the tenant.
	ErrRoomNotFound = errors.New("room.repository: room not found")

	// ErrBuildQuery is returned when building a SQL statement fails.
	ErrBuildQuery = errors.New("room.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL statement fails.
	ErrExecQuery = errors.New("room.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("room.repository: failed to scan row")
)
