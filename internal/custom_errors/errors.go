package custom_errors

import "errors"

var (
	ErrPostNotFound   = errors.New("post not found")
	ErrPostValidation = errors.New("post validation failed")
	ErrPostResolved   = errors.New("post already resolved")
	ErrLikesLimit     = errors.New("post likes at maximum")
	ErrInvalidOrder   = errors.New("invalid list order")

	ErrDatabaseQuery = errors.New("database query error")
	ErrDatabaseScan  = errors.New("database scan error")
	ErrNoUpdateRows  = errors.New("no fields to update")

	ErrCacheMiss = errors.New("cache miss")
)
