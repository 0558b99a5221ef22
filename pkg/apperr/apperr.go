// Package apperr defines the error taxonomy shared across stores and
// handlers. Storage errors are wrapped into one of these sentinels at the
// repository boundary; callers match with errors.Is and never see raw
// driver errors.
package apperr

import "errors"

var (
	// ErrNotFound covers title/user/movie lookup misses. Recoverable;
	// surfaced as an empty or negative result.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists covers duplicate usernames and duplicate watchlist
	// entries, i.e. unique-constraint violations.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidArgument covers caller contract violations such as an
	// out-of-range rating or empty review text. Rejected before mutation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDataIntegrity signals that the catalog and similarity matrix are
	// inconsistent. Fatal at load time; never retried.
	ErrDataIntegrity = errors.New("data integrity error")

	// ErrExternalService covers metadata-provider failures. Degrades to a
	// placeholder and never propagates past the fetcher.
	ErrExternalService = errors.New("external service error")
)
