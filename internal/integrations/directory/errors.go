package directory

import "errors"

var (
	// ErrDogNotFound is returned when the directory has no such dog.
	ErrDogNotFound = errors.New("directory client: dog not found")

	// ErrInternal is returned on client-side failures.
	ErrInternal = errors.New("directory client: internal error")

	// ErrInvalidResponse is returned on an unexpected directory response.
	ErrInvalidResponse = errors.New("directory client: invalid response")
)
