package api

import (
	"context"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"lawblox.app/assistant/internal/store"
)

type contextKey string

const userKey contextKey = "user"

// userFromContext returns the account attached by JWTAuthMiddleware.
func userFromContext(ctx context.Context) *store.User {
	user, _ := ctx.Value(userKey).(*store.User)
	return user
}

func (h *APIHandler) JWTAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header is required")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		email, err := h.tokens.ValidateJWT(tokenString)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		user, err := h.chatService.GetUserByEmail(email)
		if err != nil {
			log.Printf("Error in JWTAuthMiddleware for user %s: %v", email, err)
			writeError(w, http.StatusInternalServerError, "Failed to process user identity")
			return
		}
		if user == nil {
			writeError(w, http.StatusUnauthorized, "User not found")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

const (
	limiterIdleTTL    = 30 * time.Minute
	limiterSweepEvery = 5 * time.Minute
)

type ipLimiter struct {
	limiter *rate.Limiter
	last    time.Time
}

// RateLimiter keeps one token bucket per client IP.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*ipLimiter
	rps       rate.Limit
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

// NewRateLimiter returns nil, meaning no limit, when rps is not positive.
func NewRateLimiter(rps, burst int) *RateLimiter {
	if rps <= 0 {
		return nil
	}
	return &RateLimiter{
		limiters:  make(map[string]*ipLimiter),
		rps:       rate.Limit(rps),
		burst:     burst,
		lastSweep: time.Now(),
		now:       time.Now,
	}
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) > limiterSweepEvery {
		for key, il := range rl.limiters {
			if now.Sub(il.last) > limiterIdleTTL {
				delete(rl.limiters, key)
			}
		}
		rl.lastSweep = now
	}

	il, ok := rl.limiters[ip]
	if !ok {
		il = &ipLimiter{limiter: rate.NewLimiter(rl.rps, rl.burst)}
		rl.limiters[ip] = il
	}
	il.last = now
	return il.limiter.AllowN(now, 1)
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(remoteIP(r)) {
			writeError(w, http.StatusTooManyRequests, "Too many requests, slow down")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// remoteIP expects middleware.RealIP to have rewritten RemoteAddr already.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
