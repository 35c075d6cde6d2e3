package errs

// Category markers. Domain sentinels are marked with exactly one of these at
// declaration so the transport layer can map any error without knowing every
// sentinel.
var (
	// bad input, nothing mutated
	ErrValidation = New("validation error")
	// state conflict, caller may retry with different parameters
	ErrConflict = New("conflict")
	ErrNotFound = New("not found")
	// gateway timeout/5xx after internal retries
	ErrExternalTransient = New("external dependency unavailable")
	// unverifiable input from an external party
	ErrExternalUntrusted = New("untrusted external input")

	ErrDatabaseOperationFailed = New("database operation failed")
)

type Category string

const (
	CategoryValidation        Category = "validation"
	CategoryConflict          Category = "conflict"
	CategoryNotFound          Category = "not_found"
	CategoryExternalTransient Category = "external_transient"
	CategoryExternalUntrusted Category = "external_untrusted"
	CategoryInternal          Category = "internal"
)

func CategoryOf(err error) Category {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrValidation):
		return CategoryValidation
	case Is(err, ErrConflict):
		return CategoryConflict
	case Is(err, ErrNotFound):
		return CategoryNotFound
	case Is(err, ErrExternalTransient):
		return CategoryExternalTransient
	case Is(err, ErrExternalUntrusted):
		return CategoryExternalUntrusted
	default:
		return CategoryInternal
	}
}

// Sentinel declares a domain error carrying a category marker.
func Sentinel(msg string, category error) error {
	return Mark(New(msg), category)
}
