package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/Varun5711/authcore/internal/logger"
	"github.com/Varun5711/authcore/internal/presenter"
)

// Recover turns a panic into a generic 500 and logs the stack.
func Recover(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					log.Error("Panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
					presenter.Error(w, http.StatusInternalServerError, "internal server error")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
