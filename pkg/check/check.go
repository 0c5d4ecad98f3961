// Package check holds the precondition helper shared by the core packages.
package check

import "github.com/pkg/errors"

// ErrInvalidArgument is wrapped by every precondition failure.
// Callers test for it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// Argument returns nil when ok holds, otherwise ErrInvalidArgument
// annotated with the formatted message.
func Argument(ok bool, format string, args ...any) error {
	if ok {
		return nil
	}
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
