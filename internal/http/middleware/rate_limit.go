package middleware

import (
	"context"
	"encoding/json"
	"net"
	"net/http"

	rl "github.com/rogerio-castellano/product-catalog/internal/http/rate_limiter"
	"github.com/rogerio-castellano/product-catalog/internal/obs"
)

// Banner records strikes against clients and reports bans. A nil Banner turns
// banning off and leaves plain rate limiting.
type Banner interface {
	IsBanned(ctx context.Context, target string) (bool, error)
	AddStrike(ctx context.Context, target, route string) (bool, error)
}

type errorBody struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{Message: message})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit rejects clients over their token bucket with 429 and, when a
// Banner is set, banned clients with 403.
func RateLimit(limiter *rl.Limiter, banner Banner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)

			if banner != nil {
				banned, err := banner.IsBanned(r.Context(), key)
				if err != nil {
					// A failed check lets the request through.
					obs.Logger.Error("ban_check_failed", "client", key, "error", err)
				}
				if banned {
					writeError(w, http.StatusForbidden, "Client is temporarily banned")
					return
				}
			}

			if !limiter.Allow(key) {
				if banner != nil {
					if _, err := banner.AddStrike(r.Context(), key, r.URL.Path); err != nil {
						obs.Logger.Error("ban_strike_failed", "client", key, "error", err)
					}
				}
				writeError(w, http.StatusTooManyRequests, "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
