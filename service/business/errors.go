package business

import "errors"

var (
	// ErrPermissionDenied rejects a non-admin attempting an admin-only
	// operation. Denial is final for the request; nothing is written.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrStorageUnavailable marks the durable store or the archival
	// destination as unreachable. The operation aborts with no
	// partial state committed.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
