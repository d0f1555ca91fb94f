// Wraps zerolog logger, ensuring the timestamp goes in the beginning.
package log

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Base is the process-wide logger. Request-scoped loggers build their events on top of it.
var Base zerolog.Logger

func init() {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.DurationFieldInteger = true
	zerolog.TimeFieldFormat = time.RFC3339Nano
	Base = newBase()
}

type Logger interface {
	Info() *zerolog.Event
	Warn() *zerolog.Event
	Error() *zerolog.Event
}

type baseLogger struct{}

// Default is the Logger for code that runs outside of a request.
var Default Logger = baseLogger{}

func (baseLogger) Info() *zerolog.Event {
	return Info()
}

func (baseLogger) Warn() *zerolog.Event {
	return Warn()
}

func (baseLogger) Error() *zerolog.Event {
	return Error()
}

func Debug() *zerolog.Event {
	return Base.Debug().Timestamp()
}

func Info() *zerolog.Event {
	return Base.Info().Timestamp()
}

func Warn() *zerolog.Event {
	return Base.Warn().Timestamp()
}

func Error() *zerolog.Event {
	return Base.Error().Timestamp()
}
