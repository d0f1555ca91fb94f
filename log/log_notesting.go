//go:build !testing

package log

import (
	"os"

	"github.com/rs/zerolog"
)

func newBase() zerolog.Logger {
	return zerolog.New(os.Stderr).With().Stack().Logger()
}
