package api

import (
	"context"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/errs"
)

type authMiddleware struct {
	responder Responder
	sessions  sessionIssuer
}

func newAuthMiddleware(sessions sessionIssuer) authMiddleware {
	logger := log.With().Str("handlerName", "authMiddleware").Logger()
	return authMiddleware{
		responder: NewResponder(logger),
		sessions:  sessions,
	}
}

// authenticate lets a request through only with a valid session cookie.
func (m authMiddleware) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" || len(m.sessions.secret) == 0 {
			m.responder.WriteError(w, errs.NewUnauthorizedError("Unauthorized"))
			return
		}

		s, err := m.sessions.verify(cookie.Value)
		if err != nil {
			m.responder.WriteError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(ctxWithSession(r.Context(), s)))
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusResponseWriter) WriteHeader(statusCode int) {
	if !w.wroteHeader {
		w.status = statusCode
		w.wroteHeader = true
		w.ResponseWriter.WriteHeader(statusCode)
	}
}

func (w *statusResponseWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func LogInternalServerErrors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		defer func() {
			if err := recover(); err != nil {
				log.Error().
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", err).
					Str("stack", string(debug.Stack())).
					Msg("Recovered from panic")

				// Write 500 if nothing written yet
				if !srw.wroteHeader {
					srw.WriteHeader(http.StatusInternalServerError)
				}
			}
		}()

		next.ServeHTTP(srw, r)

		if srw.status == http.StatusInternalServerError {
			log.Error().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("500 error response")
		}
	})
}

// CORSCheckMiddleware rejects preflight requests from origins outside the allow list with a JSON error.
func CORSCheckMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			// If no origin header, it's likely a same-origin request
			if origin == "" || originAllowed(allowedOrigins, origin) {
				next.ServeHTTP(w, r)
				return
			}

			if r.Method == http.MethodOptions {
				responder := NewResponder(log.Logger)
				responder.WriteError(w, errs.NewCORSError(origin))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(allowedOrigins []string, origin string) bool {
	for _, allowedOrigin := range allowedOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}
	return false
}

// corsMiddleware sets CORS headers for allowed origins. Credentials are allowed for the session cookie.
func corsMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.New(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return originAllowed(allowedOrigins, origin)
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}

// ColoredHTTPLoggingMiddleware logs HTTP requests, at a level picked from the status code
func ColoredHTTPLoggingMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			srw := &statusResponseWriter{ResponseWriter: w, status: 200}

			next.ServeHTTP(srw, r)

			duration := time.Since(start)

			var logEvent *zerolog.Event
			switch {
			case srw.status >= 500:
				logEvent = logger.Error()
			case srw.status >= 400:
				logEvent = logger.Warn()
			default:
				logEvent = logger.Info()
			}

			logEvent.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", srw.status).
				Dur("duration", duration).
				Str("remote_addr", r.RemoteAddr).
				Msg("HTTP Request")
		})
	}
}

// NewConsoleLogger is the colored development logger.
func NewConsoleLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "portfolio_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "portfolio_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// metricsMiddleware records request counts and latency, labelled by chi route pattern.
func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		srw := &statusResponseWriter{ResponseWriter: w, status: 200}

		next.ServeHTTP(srw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(srw.status)).Inc()
		httpDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// hitCounter keeps rate limit counters outside the process.
type hitCounter interface {
	Enabled() bool
	CountHit(ctx context.Context, resource, id string, window time.Duration) (int64, error)
}

// RateLimiter is a fixed-window rate limiter per client IP. Counters live in memory unless a
// shared counter is attached.
type RateLimiter struct {
	visitors  map[string]*visitor
	mu        sync.Mutex
	limit     int
	window    time.Duration
	lastSweep time.Time
	counter   hitCounter
	resource  string
	logger    zerolog.Logger
	responder Responder
}

type visitor struct {
	windowStart time.Time
	count       int
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	logger := log.With().Str("handlerName", "rateLimiter").Logger()
	return &RateLimiter{
		visitors:  make(map[string]*visitor),
		limit:     limit,
		window:    window,
		lastSweep: time.Now(),
		logger:    logger,
		responder: NewResponder(logger),
	}
}

// WithCounter counts requests in counter under resource, so every instance shares one window.
// While counter is disabled or failing the in-memory window applies.
func (rl *RateLimiter) WithCounter(counter hitCounter, resource string) *RateLimiter {
	rl.counter = counter
	rl.resource = resource
	return rl
}

// admit counts a request from ip in the shared counter when there is one, else in memory.
func (rl *RateLimiter) admit(ctx context.Context, ip string, now time.Time) bool {
	if rl.counter != nil && rl.counter.Enabled() {
		count, err := rl.counter.CountHit(ctx, rl.resource, ip, rl.window)
		if err == nil {
			return count <= int64(rl.limit)
		}
		rl.logger.Warn().Err(err).Str("resource", rl.resource).Msg("shared rate limit unavailable, counting in memory")
	}
	return rl.allow(ip, now)
}

// allow counts a request from ip and reports whether it is within the limit.
func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) > rl.window {
		for key, v := range rl.visitors {
			if now.Sub(v.windowStart) > rl.window {
				delete(rl.visitors, key)
			}
		}
		rl.lastSweep = now
	}

	v, exists := rl.visitors[ip]
	if !exists || now.Sub(v.windowStart) > rl.window {
		v = &visitor{windowStart: now}
		rl.visitors[ip] = v
	}
	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.admit(r.Context(), clientIP(r), time.Now()) {
			rl.responder.WriteError(w, errs.NewRateLimitedError())
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP is the request's remote host. chi's RealIP middleware has already applied proxy headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
