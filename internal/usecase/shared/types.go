package shared

import (
	"parkflow/internal/pkg/errs"
)

var (
	ErrLockNotAcquired = errs.Sentinel("lock is held by another request", errs.ErrConflict)
	ErrLockLost        = errs.New("lock expired before release")
)

const PlateLockPrefix = "parkflow:lock:plate:"

func PlateLockKey(plate string) string {
	return PlateLockPrefix + plate
}
