package ratelimit

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// Middleware returns a mux middleware that checks the limiter before the
// wrapped handler runs. Limit headers are set on every response; rejected
// requests get a 429 with Retry-After and a coded JSON body.
func Middleware(limiter *Limiter, opts Options) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := limiter.Check(ClientIP(r), opts)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.Reset, 10))

			if !result.Success {
				retryAfter := result.RetryAfter
				if retryAfter <= 0 {
					retryAfter = opts.Window
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				json.NewEncoder(w).Encode(map[string]interface{}{
					"error": map[string]string{
						"message": "Too many requests. Please try again later.",
						"code":    "RATE_LIMIT_EXCEEDED",
					},
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
