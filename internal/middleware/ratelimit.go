package middleware

import (
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"
)

type window struct {
	count int
	reset time.Time
}

// RateLimit applies a fixed-window limit per client IP. Over-limit requests
// get 429 with a Retry-After hint and the API's usual error envelope. Expired
// windows are swept opportunistically, at most once per period.
func RateLimit(limit int, per time.Duration) func(http.Handler) http.Handler {
	var (
		mu        sync.Mutex
		windows   = make(map[string]*window)
		lastSweep = time.Now()
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientKey(r)
			now := time.Now()

			mu.Lock()
			if now.Sub(lastSweep) > per {
				for k, win := range windows {
					if now.After(win.reset) {
						delete(windows, k)
					}
				}
				lastSweep = now
			}

			win, ok := windows[key]
			if !ok || now.After(win.reset) {
				win = &window{reset: now.Add(per)}
				windows[key] = win
			}
			if win.count >= limit {
				reset := win.reset
				mu.Unlock()

				retryAfter := int(time.Until(reset).Seconds()) + 1
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(`{"error":{"code":"rate_limited","message":"Too many requests, slow down."}}`))
				return
			}
			win.count++
			mu.Unlock()

			next.ServeHTTP(w, r)
		})
	}
}

// clientKey buckets requests by validated client IP. When no parseable IP can
// be extracted the raw remote address still yields a stable key.
func clientKey(r *http.Request) string {
	if ip := ClientIP(r); net.ParseIP(ip) != nil {
		return ip
	}
	return r.RemoteAddr
}
