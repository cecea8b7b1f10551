package api

import (
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/albapepper/scoracle-cricket/internal/api/respond"
	"github.com/albapepper/scoracle-cricket/internal/scoring"
)

// --------------------------------------------------------------------------
// Request timing middleware
// --------------------------------------------------------------------------

// TimingMiddleware adds X-Process-Time header to all responses.
func TimingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)
		w.Header().Set("X-Process-Time", fmt.Sprintf("%.2fms", float64(elapsed.Microseconds())/1000.0))
	})
}

// --------------------------------------------------------------------------
// Rate limiting middleware (IP-based token bucket)
// --------------------------------------------------------------------------

type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
}

func newIPLimiter(requestsPerWindow int, window time.Duration) *ipLimiter {
	rps := float64(requestsPerWindow) / window.Seconds()
	return &ipLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(rps),
		burst:    max(requestsPerWindow/2, 1),
	}
}

func (l *ipLimiter) getLimiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if limiter, exists := l.limiters[ip]; exists {
		return limiter
	}
	limiter := rate.NewLimiter(l.rate, l.burst)
	l.limiters[ip] = limiter
	return limiter
}

// RateLimitMiddleware returns middleware that rate-limits by client IP.
func RateLimitMiddleware(requestsPerWindow int, window time.Duration) func(http.Handler) http.Handler {
	limiter := newIPLimiter(requestsPerWindow, window)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip, _, _ := net.SplitHostPort(r.RemoteAddr)
			if ip == "" {
				ip = r.RemoteAddr
			}

			if !limiter.getLimiter(ip).Allow() {
				w.Header().Set("Retry-After", strconv.Itoa(int(window.Seconds())))
				respond.WriteError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// --------------------------------------------------------------------------
// Identity middleware
// --------------------------------------------------------------------------

// Identity headers set by the upstream auth layer.
const (
	HeaderActorRole = "X-Actor-Role"
	HeaderCoachID   = "X-Coach-ID"
	HeaderPlayerID  = "X-Player-ID"
)

// ActorMiddleware parses the identity headers into a scoring.Actor on the
// request context. Requests without X-Actor-Role pass through anonymous;
// malformed identity is rejected with 401.
func ActorMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := strings.TrimSpace(r.Header.Get(HeaderActorRole))
		if role == "" {
			next.ServeHTTP(w, r)
			return
		}

		a, err := parseActor(scoring.Role(strings.ToLower(role)), r.Header)
		if err != nil {
			respond.WriteErrorDetail(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Invalid identity", err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(scoring.WithActor(r.Context(), a)))
	})
}

// RequireActor rejects anonymous requests with 401.
func RequireActor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := scoring.ActorFrom(r.Context()); !ok {
			respond.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Identity headers are required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func parseActor(role scoring.Role, h http.Header) (scoring.Actor, error) {
	a := scoring.Actor{Role: role}
	var err error
	switch role {
	case scoring.RoleCoach:
		a.CoachID, err = headerID(h, HeaderCoachID, true)
		if err == nil {
			a.PlayerID, err = headerID(h, HeaderPlayerID, false)
		}
	case scoring.RolePlayer:
		a.PlayerID, err = headerID(h, HeaderPlayerID, true)
	default:
		err = fmt.Errorf("unknown role %q", role)
	}
	return a, err
}

func headerID(h http.Header, name string, required bool) (*int64, error) {
	v := strings.TrimSpace(h.Get(name))
	if v == "" {
		if required {
			return nil, fmt.Errorf("%s is required", name)
		}
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%s must be a positive integer", name)
	}
	return &id, nil
}
