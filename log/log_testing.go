//go:build testing

package log

import (
	"os"

	"github.com/rs/zerolog"
)

func newBase() zerolog.Logger {
	writer := zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true}
	return zerolog.New(writer).Level(zerolog.WarnLevel).With().Stack().Logger()
}
