package contract

import "errors"

var (
	// ErrContractNotFound is returned when no matching contract exists.
	ErrContractNotFound = errors.New("contract.repository: contract not found")

	// ErrBuildQuery is returned when building a SQL statement fails.
	ErrBuildQuery = errors.New("contract.repository: failed to build query")

	// ErrExecQuery is returned when executing a SQL statement fails.
	ErrExecQuery = errors.New("contract.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("contract.repository: failed to scan row")
)
