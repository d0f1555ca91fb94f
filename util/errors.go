package util

import (
	"errors"
	"fmt"
)

type HttpError struct {
	Status int
	Inner  error
}

func (e HttpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Inner.Error())
}

func (e HttpError) Unwrap() error {
	return e.Inner
}

func HttpPanic(status int, text string) {
	panic(HttpError{
		Status: status,
		Inner:  errors.New(text),
	})
}

// HttpPanicErr keeps err for the logs and shows its message to the client.
func HttpPanicErr(status int, err error) {
	panic(HttpError{
		Status: status,
		Inner:  err,
	})
}
