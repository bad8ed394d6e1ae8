package http

import (
	stdhttp "net/http"
	"time"

	"github.com/google/uuid"

	perr "codefence/internal/platform/errors"
	"codefence/internal/platform/logger"
	pnet "codefence/internal/platform/net"
)

const requestIDHeader = "X-Request-Id"

// RequestID assigns a request id (incoming header wins, else a fresh uuid)
// and stashes it on the context and response
func RequestID(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(pnet.WithRequestID(r.Context(), id)))
	})
}

func perrPanic(rec any) error { return perr.PanicErrf("panic: %v", rec) }

// statusWriter captures the response status for the access log
type statusWriter struct {
	stdhttp.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	sw.status = code
	sw.ResponseWriter.WriteHeader(code)
}

// AccessLog emits one structured line per request
func AccessLog(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: stdhttp.StatusOK}
		next.ServeHTTP(sw, r)
		logger.Named("http").Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", sw.status).
			Dur("took", time.Since(start)).
			Str("request_id", pnet.RequestID(r.Context())).
			Msg("request")
	})
}

// RecoverJSON turns handler panics into a 500 envelope instead of a dropped
// connection
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Named("http").Error().Any("panic", rec).Str("path", r.URL.Path).Msg("handler panic")
				RespondError(w, r, perrPanic(rec))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
