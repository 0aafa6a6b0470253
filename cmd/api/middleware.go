package main

import (
	"fmt"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"questionnaire/internal/fault"

	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger writes one line per request once the response is done.
func (app *application) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			app.logger.Infow("request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}

// corsGuard rejects cross-origin requests the CORS policy does not allow. The headers
// of allowed requests are written by cors.Handler further down the chain.
func (app *application) corsGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if !originAllowed(app.config.cors.allowedOrigins, origin) {
			app.corsForbiddenResponse(w, r, fmt.Errorf("origin %q not allowed", origin))
			return
		}

		reqMethod := r.Header.Get("Access-Control-Request-Method")
		if r.Method == http.MethodOptions && reqMethod != "" {
			if !slices.Contains(corsAllowedMethods, strings.ToUpper(reqMethod)) {
				app.corsForbiddenResponse(w, r, fmt.Errorf("method %q not allowed", reqMethod))
				return
			}
			for _, h := range strings.Split(r.Header.Get("Access-Control-Request-Headers"), ",") {
				h = strings.TrimSpace(h)
				if h == "" {
					continue
				}
				if !slices.ContainsFunc(corsAllowedHeaders, func(allowed string) bool {
					return strings.EqualFold(allowed, h)
				}) {
					app.corsForbiddenResponse(w, r, fmt.Errorf("header %q not allowed", h))
					return
				}
			}
		}

		next.ServeHTTP(w, r)
	})
}

func (app *application) corsForbiddenResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, fault.New(fault.KindCORSForbidden, "cors", err))
}

// originAllowed matches origin against patterns that are either "*", an exact origin,
// or an origin with a single "*" wildcard such as "https://*.example.com".
func originAllowed(patterns []string, origin string) bool {
	origin = strings.ToLower(origin)
	for _, p := range patterns {
		p = strings.ToLower(p)
		if p == "*" || p == origin {
			return true
		}
		if prefix, suffix, ok := strings.Cut(p, "*"); ok {
			if len(origin) >= len(prefix)+len(suffix) &&
				strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, suffix) {
				return true
			}
		}
	}
	return false
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if allow, retryAfter := app.rateLimiter.Allow(clientIP(r)); !allow {
			app.rateLimitExceededResponse(w, r, retryAfter)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP drops the port so that one client's connections share a budget.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
