// errors.go defines the error taxonomy for the summarization pipeline.
//
// Only input problems (empty transcript, bad time range) ever reach the
// caller as errors. Upstream failures and schema violations resolve to a
// fallback summary internally, so handlers can map any returned error
// straight to a 400.
package summarize

import (
	"errors"
	"fmt"
)

// InputError marks a problem with the caller's request. It is the only
// error type Generate ever returns once the transcript is non-empty and
// the range is valid.
type InputError struct {
	msg string
}

func (e *InputError) Error() string { return e.msg }

// inputErrorf builds an InputError with a formatted message.
func inputErrorf(format string, args ...any) *InputError {
	return &InputError{msg: fmt.Sprintf(format, args...)}
}

// IsInputError reports whether err is (or wraps) an InputError.
func IsInputError(err error) bool {
	var ie *InputError
	return errors.As(err, &ie)
}
