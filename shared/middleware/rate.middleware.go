package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"record-service/shared/response"
	"record-service/shared/utils/cache"
)

type RateLimitOptions struct {
	Limit         int
	Window        time.Duration
	BlockDuration time.Duration
	KeyPrefix     string
}

// RateLimiter counts requests per client IP in Redis. Over Limit within
// Window the client is blocked for BlockDuration.
func RateLimiter(c *cache.Cache, opts RateLimitOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			clientID := "ip:" + clientIP(r)
			blockKey := clientID + ":blocked"

			if blocked, _ := c.Get(ctx, opts.KeyPrefix, blockKey); blocked == "1" {
				ttl, _ := c.GetTTL(ctx, opts.KeyPrefix, blockKey)
				w.Header().Set("Retry-After", strconv.Itoa(int(ttl.Seconds())))
				response.Error(w, http.StatusTooManyRequests, "Too Many Requests. Try again in "+ttl.String())
				return
			}

			count, err := c.IncrWithExpire(ctx, opts.KeyPrefix, clientID, opts.Window)
			if err != nil {
				// Fail open when Redis is unavailable
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(opts.Limit) {
				_ = c.Set(ctx, opts.KeyPrefix, blockKey, "1", opts.BlockDuration)
				w.Header().Set("Retry-After", strconv.Itoa(int(opts.BlockDuration.Seconds())))
				response.Error(w, http.StatusTooManyRequests, "Too Many Requests. Blocked for "+opts.BlockDuration.String())
				return
			}

			ttl, _ := c.GetTTL(ctx, opts.KeyPrefix, clientID)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(opts.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(opts.Limit-int(count)))
			w.Header().Set("X-RateLimit-Reset", strconv.Itoa(int(ttl.Seconds())))

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return strings.TrimSpace(strings.Split(fwd, ",")[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
