package serverutils

import "errors"

// Domain sentinels returned by services. The error handler middleware maps
// them onto HTTP statuses so controllers can simply bubble errors up.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("access denied")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrUnsupportedMedia = errors.New("unsupported file type")
	ErrConflict         = errors.New("resource already exists")
)
