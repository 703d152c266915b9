package errors

import "errors"

// Sentinels for the failure classes the guide distinguishes. Call sites wrap
// them with fmt.Errorf("%w: ...") to carry detail.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrDataLoad       = errors.New("catalog load failed")
	ErrTransport      = errors.New("upstream transport failed")
	ErrUpstream       = errors.New("upstream returned an error")
	ErrNoFileSelected = errors.New("no file selected")
	ErrCacheError     = errors.New("cache error")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
