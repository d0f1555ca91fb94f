package middleware

import (
	"context"
	"net/http"
	"time"

	"fuzzydates/db/dbw"
	"fuzzydates/log"
	"fuzzydates/oops"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIdHeader = "X-Request-ID"

const longDbDuration = time.Second

// Logger should come before Recoverer. A request id coming from a proxy is kept, otherwise one is
// generated, and it is echoed back either way.
func Logger(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		requestId := r.Header.Get(requestIdHeader)
		if requestId == "" {
			requestId = uuid.NewString()
		}
		ww.Header().Set(requestIdHeader, requestId)
		logger := &WebLogger{RequestId: requestId}
		request := requestFields(r)

		logger.Info().Func(request).Str("remote_addr", r.RemoteAddr).Msg("started")

		var errorWrapper errorWrapper
		r = dbw.WithDBDuration(withLogger(withErrorWrapper(r, &errorWrapper), logger))

		defer func() {
			logCompleted(logger, request, ww.Status(), start, dbw.DbDuration(r.Context()), errorWrapper.err)
		}()
		next.ServeHTTP(ww, r)
	}
	return http.HandlerFunc(fn)
}

func requestFields(r *http.Request) func(*zerolog.Event) {
	uri := r.URL.RequestURI()
	return func(event *zerolog.Event) {
		event.Str("method", r.Method).Str("uri", uri)
	}
}

func logCompleted(
	logger *WebLogger, request func(*zerolog.Event), status int, start time.Time,
	dbDuration time.Duration, err *oops.Error,
) {
	if dbDuration > longDbDuration {
		logger.Warn().Func(request).Dur("db_duration", dbDuration).Msg("long db duration")
	}

	var event *zerolog.Event
	var msg string
	if status >= http.StatusInternalServerError {
		event, msg = logger.Error(), "failed"
		if err != nil {
			event.Err(err)
		}
	} else {
		event, msg = logger.Info(), "completed"
		if err != nil {
			event.Str("client_error", err.Error())
		}
	}
	event.
		Func(request).
		Int("status", status).
		TimeDiff("duration", time.Now(), start).
		Dur("db_duration", dbDuration).
		Msg(msg)
}

type errorWrapperKeyType struct{}

var errorWrapperKey = &errorWrapperKeyType{}

type errorWrapper struct {
	err *oops.Error
}

func withErrorWrapper(r *http.Request, errorWrapper *errorWrapper) *http.Request {
	r = r.WithContext(context.WithValue(r.Context(), errorWrapperKey, errorWrapper))
	return r
}

func setError(r *http.Request, err *oops.Error) {
	errorWrapper, ok := r.Context().Value(errorWrapperKey).(*errorWrapper)
	if ok {
		errorWrapper.err = err
	}
}

type loggerKeyType struct{}

var loggerKey = &loggerKeyType{}

func withLogger(r *http.Request, logger *WebLogger) *http.Request {
	r = r.WithContext(context.WithValue(r.Context(), loggerKey, logger))
	return r
}

// GetLogger falls back to the process logger for handlers mounted without the Logger middleware.
func GetLogger(r *http.Request) log.Logger {
	logger, ok := r.Context().Value(loggerKey).(*WebLogger)
	if !ok {
		return log.Default
	}
	return logger
}

type WebLogger struct {
	RequestId string
}

func (l *WebLogger) Info() *zerolog.Event {
	return l.withRequestId(log.Base.Info())
}

func (l *WebLogger) Warn() *zerolog.Event {
	return l.withRequestId(log.Base.Warn())
}

func (l *WebLogger) Error() *zerolog.Event {
	return l.withRequestId(log.Base.Error())
}

func (l *WebLogger) withRequestId(event *zerolog.Event) *zerolog.Event {
	return event.Timestamp().Str("request_id", l.RequestId)
}
