// Package fault holds every failure the service can report, both the ones raised
// by the store and the ones raised by the HTTP layer, as a single closed set of kinds.
package fault

import (
	"errors"
	"fmt"
)

// Kind identifies one member of the closed fault set.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindInvalidID
	KindMissingParameters
	KindParse
	KindQuestionNotFound
	KindDatabaseQuery

	// Raised outside the store, by the transport layer.
	KindCORSForbidden
	KindMalformedBody
	KindRouteNotFound
	KindRateLimited
)

var kindNames = [...]string{
	KindUnknown:           "unknown",
	KindInvalidID:         "invalid_id",
	KindMissingParameters: "missing_parameters",
	KindParse:             "parse_error",
	KindQuestionNotFound:  "question_not_found",
	KindDatabaseQuery:     "database_query_error",
	KindCORSForbidden:     "cors_forbidden",
	KindMalformedBody:     "malformed_body",
	KindRouteNotFound:     "route_not_found",
	KindRateLimited:       "too_many_requests",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// Sentinels for errors.Is checks. Any *Error of the same kind matches them.
var (
	ErrInvalidID         = &Error{Kind: KindInvalidID}
	ErrMissingParameters = &Error{Kind: KindMissingParameters}
	ErrParse             = &Error{Kind: KindParse}
	ErrQuestionNotFound  = &Error{Kind: KindQuestionNotFound}
	ErrDatabaseQuery     = &Error{Kind: KindDatabaseQuery}
	ErrCORSForbidden     = &Error{Kind: KindCORSForbidden}
	ErrMalformedBody     = &Error{Kind: KindMalformedBody}
	ErrRouteNotFound     = &Error{Kind: KindRouteNotFound}
	ErrRateLimited       = &Error{Kind: KindRateLimited}
)

// Error is a fault of a given kind raised by an operation, optionally wrapping a cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

// New builds a fault. err may be nil.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := e.Kind.String()
	if e.Op != "" {
		base = fmt.Sprintf("%s: %s", e.Op, base)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is a fault of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the outermost fault in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) && fe != nil {
		return fe.Kind
	}
	return KindUnknown
}

// Query wraps a backing-store failure.
func Query(op string, err error) *Error {
	return New(KindDatabaseQuery, op, err)
}
