package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/2beens/fitscore/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// PanicRecovery turns a handler panic into a 500, the panic and its stack are logged.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// let the server abort the connection as it would without the middleware
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				fields := log.Fields{
					"method": req.Method,
					"path":   req.URL.Path,
				}
				if userID, ok := UserIDFromContext(req.Context()); ok {
					fields["user"] = userID
				}
				log.WithFields(fields).Errorf("http: panic serving request: %v\n%s", rec, debug.Stack())

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, req)
		})
	}
}
