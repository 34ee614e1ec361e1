package handler

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/lordvidex/errs/v2"
	"github.com/lordvidex/x/resp"
	"github.com/rs/zerolog/log"
)

var errInternal = errs.B().Code(errs.Internal).Msg("internal server error").Err()

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// logMiddleware logs every request after it is served.
func logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(sw, r)
		log.Info().
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Int("status", sw.status).
			Dur("duration", time.Since(start)).
			Msg("request served")
	})
}

// recoverMiddleware converts panics into a generic server error. The stack
// is logged, never returned to the caller.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Str("url", r.URL.String()).
					Str("stack", string(debug.Stack())).
					Msg("handler panicked")
				resp.Error(w, errInternal)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
