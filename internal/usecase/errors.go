package usecase

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrStructuralMismatch means a page no longer has the layout the parsers
	// expect. It aborts the area being scraped.
	ErrStructuralMismatch = errors.New("structural mismatch")
	// ErrMissingData marks an optional page section that is absent.
	ErrMissingData = errors.New("missing data")
	// ErrCoercion marks a value that cannot be converted to its column type.
	// It aborts the competition being scraped.
	ErrCoercion = errors.New("type coercion failed")
	// ErrPageUnavailable is returned for non-2xx responses and exhausted
	// retries. Callers treat it as absence, like ErrMissingData.
	ErrPageUnavailable = errors.New("page unavailable")
)

// IsAbsence reports whether err only signals that data is not there.
func IsAbsence(err error) bool {
	return errors.Is(err, ErrMissingData) || errors.Is(err, ErrPageUnavailable)
}
