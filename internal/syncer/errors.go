package syncer

import "errors"

var (
	// ErrBackendDisabled rejects a sync before anything else happens. Every
	// non-local backend ships disabled so a fresh install cannot push data
	// anywhere by accident.
	ErrBackendDisabled = errors.New("sync backend is disabled")

	// ErrSyncFailed wraps transport failures and timeouts. Retryable at the
	// caller's discretion; the engine never retries on its own.
	ErrSyncFailed = errors.New("sync failed")

	ErrUnknownBackend = errors.New("unknown sync backend")
)
