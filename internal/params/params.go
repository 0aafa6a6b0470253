package params

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"questionnaire/internal/fault"
)

// URL: /questions?start=2&end=5
// → ParsePagination() → Pagination{Mode:ModeRange, Start:2, End:5}
// → memory store: Bounds(total) → data[1:5]
// → SQL store: SQLWindow() → OFFSET 1 LIMIT 4
//
// URL: /questions?offset=10&limit=5
// → Pagination{Mode:ModeOffset, Offset:10, Limit:5}, passed through as-is.

// Mode selects how the two bounds of a Pagination are read.
type Mode uint8

const (
	// ModeRange is a 1-based inclusive start..end window.
	ModeRange Mode = iota + 1
	// ModeOffset is an offset/limit window.
	ModeOffset
)

// Pagination holds the requested window into an ordered listing.
type Pagination struct {
	Mode   Mode `json:"-"`
	Start  int  `json:"start,omitempty"`
	End    int  `json:"end,omitempty"`
	Offset int  `json:"offset,omitempty"`
	Limit  int  `json:"limit,omitempty"`
}

// ParsePagination reads ?start=..&end=.. or ?offset=..&limit=..  Keys are case sensitive.
// An empty query yields nil, meaning no pagination. Any other query that does not carry
// a complete pair fails with a missing-parameters fault.
func ParsePagination(q url.Values) (*Pagination, error) {
	if len(q) == 0 {
		return nil, nil
	}

	switch {
	case q.Has("start") && q.Has("end"):
		start, err := parseBound(q, "start")
		if err != nil {
			return nil, err
		}
		end, err := parseBound(q, "end")
		if err != nil {
			return nil, err
		}
		if start > end {
			start, end = end, start
		}
		return &Pagination{Mode: ModeRange, Start: start, End: end}, nil

	case q.Has("offset") && q.Has("limit"):
		offset, err := parseBound(q, "offset")
		if err != nil {
			return nil, err
		}
		limit, err := parseBound(q, "limit")
		if err != nil {
			return nil, err
		}
		return &Pagination{Mode: ModeOffset, Offset: offset, Limit: limit}, nil
	}

	return nil, fault.New(fault.KindMissingParameters, "params.ParsePagination", nil)
}

func parseBound(q url.Values, key string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(q.Get(key)))
	if err != nil {
		return 0, fault.New(fault.KindParse, "params.ParsePagination", fmt.Errorf("%s: %w", key, err))
	}
	if v < 0 {
		return 0, fault.New(fault.KindParse, "params.ParsePagination", fmt.Errorf("%s: negative value %d", key, v))
	}
	return v, nil
}

// Normalize applies the range rules against a listing of total rows: start and end
// are swapped when reversed, end is clamped to total and start is clamped to at least 1.
// Offset windows are returned unchanged.
func (p Pagination) Normalize(total int) Pagination {
	if p.Mode == ModeOffset {
		return p
	}
	if p.Start > p.End {
		p.Start, p.End = p.End, p.Start
	}
	if p.End > total {
		p.End = total
	}
	if p.Start < 1 {
		p.Start = 1
	}
	return p
}

// Bounds returns the 0-based half-open slice bounds of the window over total rows.
// The result is always within [0, total] and lo <= hi.
func (p Pagination) Bounds(total int) (lo, hi int) {
	if p.Mode == ModeOffset {
		lo = min(p.Offset, total)
		hi = total
		if p.Limit < total-lo {
			hi = lo + p.Limit
		}
		return lo, hi
	}

	n := p.Normalize(total)
	lo, hi = n.Start-1, n.End
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// SQLWindow translates the window into OFFSET and LIMIT values. Offset windows are
// passed through; the database tolerates out-of-range values.
func (p Pagination) SQLWindow() (offset, limit int) {
	if p.Mode == ModeOffset {
		return p.Offset, p.Limit
	}

	start, end := p.Start, p.End
	if start > end {
		start, end = end, start
	}
	if start < 1 {
		start = 1
	}
	offset = start - 1
	return offset, max(end-offset, 0)
}
