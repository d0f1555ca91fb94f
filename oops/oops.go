// Errors that remember where they were created. Is/As see through to the wrapped error, so typed
// errors (fuzzydate.PreconditionError, models.ErrRecordExists) stay matchable after wrapping.
package oops

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type Error struct {
	Inner StackTracer
}

func (err *Error) Error() string {
	return err.Inner.Error()
}

// Verbose renders the message followed by one stack frame per line.
func (err *Error) Verbose() string {
	var b strings.Builder
	fmt.Fprint(&b, err.Inner.Error())
	for _, frame := range err.StackTrace() {
		frameText, _ := frame.MarshalText()
		fmt.Fprint(&b, "\n")
		fmt.Fprint(&b, string(frameText))
	}
	return b.String()
}

func (err *Error) Unwrap() error {
	return err.Inner
}

func (err *Error) Is(target error) bool {
	return errors.Is(err.Inner, target)
}

func (err *Error) As(target any) bool {
	return errors.As(err.Inner, target)
}

func (err *Error) StackTrace() errors.StackTrace {
	return err.Inner.StackTrace()
}

type StackTracer interface {
	Error() string
	StackTrace() errors.StackTrace
}

func Wrap(err error) error {
	if err == nil {
		return nil
	}
	if sterr, ok := err.(*Error); ok {
		return sterr
	}

	return &Error{
		Inner: errors.WithStack(err).(StackTracer),
	}
}

func Wrapf(err error, format string, a ...any) error {
	if err == nil {
		return nil
	}

	inner := errors.Wrapf(err, format, a...)
	return &Error{
		Inner: inner.(StackTracer),
	}
}

func New(message string) error {
	err := errors.New(message)
	return &Error{
		Inner: err.(StackTracer),
	}
}

func Newf(format string, a ...any) error {
	err := errors.Errorf(format, a...)
	return &Error{
		Inner: err.(StackTracer),
	}
}
