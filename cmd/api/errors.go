package main

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"questionnaire/internal/fault"

	"github.com/go-chi/chi/v5/middleware"
)

// errorResponse is the one place a failure becomes an HTTP response. The client gets
// the mapped status, code and message; the cause only reaches the log.
func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, err error) {
	resp := fault.Map(err)

	fields := []any{
		"request_id", middleware.GetReqID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"status", resp.Status,
		"code", resp.Code,
		"error", err.Error(),
	}
	if resp.Status >= http.StatusInternalServerError {
		app.logger.Errorw("server error", fields...)
	} else {
		app.logger.Warnw("client error", fields...)
	}

	writeJSONError(w, resp.Status, resp.Code, resp.Message)
}

// malformedBodyResponse reports a body that could not be decoded or failed validation.
func (app *application) malformedBodyResponse(w http.ResponseWriter, r *http.Request, op string, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		err = fmt.Errorf("body exceeds %d bytes: %w", maxBytesErr.Limit, err)
	}
	app.errorResponse(w, r, fault.New(fault.KindMalformedBody, op, err))
}

func (app *application) rateLimitExceededResponse(w http.ResponseWriter, r *http.Request, retryAfter time.Duration) {
	seconds := int(retryAfter.Round(time.Second) / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	w.Header().Set("Retry-After", strconv.Itoa(seconds))

	app.errorResponse(w, r, fault.New(fault.KindRateLimited, "ratelimit", fmt.Errorf("client %s over limit", r.RemoteAddr)))
}

func (app *application) routeNotFoundHandler(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, fault.New(fault.KindRouteNotFound, "router", fmt.Errorf("no route for %s %s", r.Method, r.URL.Path)))
}
