// Package errx provides small helpers for attaching context to sentinel
// errors while keeping them matchable with errors.Is.
package errx

import "fmt"

// With appends formatted detail to a sentinel error.
// The result still matches the sentinel with errors.Is, and %w verbs in
// the suffix wrap their argument as usual.
func With(err error, format string, args ...any) error {
	return fmt.Errorf("%w"+format, append([]any{err}, args...)...)
}

// Wrap chains a cause onto a sentinel error.
// The result matches both the sentinel and the cause with errors.Is.
func Wrap(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// Wrapf chains a cause onto a sentinel error with a formatted detail string.
func Wrapf(sentinel, cause error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", sentinel, fmt.Sprintf(format, args...), cause)
}
