package params

import (
	"net/url"
	"testing"

	"questionnaire/internal/fault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	t.Run("empty query means no pagination", func(t *testing.T) {
		p, err := ParsePagination(url.Values{})
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("range", func(t *testing.T) {
		p, err := ParsePagination(url.Values{"start": {"1"}, "end": {"3"}})
		require.NoError(t, err)
		assert.Equal(t, &Pagination{Mode: ModeRange, Start: 1, End: 3}, p)
	})

	t.Run("reversed range is swapped", func(t *testing.T) {
		p, err := ParsePagination(url.Values{"start": {"5"}, "end": {"2"}})
		require.NoError(t, err)
		assert.Equal(t, 2, p.Start)
		assert.Equal(t, 5, p.End)
	})

	t.Run("offset and limit", func(t *testing.T) {
		p, err := ParsePagination(url.Values{"offset": {"10"}, "limit": {" 5 "}})
		require.NoError(t, err)
		assert.Equal(t, &Pagination{Mode: ModeOffset, Offset: 10, Limit: 5}, p)
	})

	t.Run("missing end", func(t *testing.T) {
		_, err := ParsePagination(url.Values{"start": {"1"}})
		assert.ErrorIs(t, err, fault.ErrMissingParameters)
	})

	t.Run("mixed pair", func(t *testing.T) {
		_, err := ParsePagination(url.Values{"start": {"1"}, "limit": {"3"}})
		assert.ErrorIs(t, err, fault.ErrMissingParameters)
	})

	t.Run("keys are case sensitive", func(t *testing.T) {
		_, err := ParsePagination(url.Values{"Start": {"1"}, "End": {"3"}})
		assert.ErrorIs(t, err, fault.ErrMissingParameters)
	})

	t.Run("not a number", func(t *testing.T) {
		_, err := ParsePagination(url.Values{"start": {"abc"}, "end": {"3"}})
		assert.ErrorIs(t, err, fault.ErrParse)
	})

	t.Run("negative", func(t *testing.T) {
		_, err := ParsePagination(url.Values{"offset": {"-1"}, "limit": {"3"}})
		assert.ErrorIs(t, err, fault.ErrParse)
	})
}

func TestNormalize(t *testing.T) {
	n := Pagination{Mode: ModeRange, Start: 5, End: 2}.Normalize(10)
	assert.Equal(t, 2, n.Start)
	assert.Equal(t, 5, n.End)

	n = Pagination{Mode: ModeRange, Start: 0, End: 1000}.Normalize(10)
	assert.Equal(t, 1, n.Start)
	assert.Equal(t, 10, n.End)

	o := Pagination{Mode: ModeOffset, Offset: 50, Limit: 7}
	assert.Equal(t, o, o.Normalize(10))
}

func TestBounds(t *testing.T) {
	tests := []struct {
		name   string
		p      Pagination
		total  int
		lo, hi int
	}{
		{"first three", Pagination{Mode: ModeRange, Start: 1, End: 3}, 5, 0, 3},
		{"swapped", Pagination{Mode: ModeRange, Start: 5, End: 2}, 10, 1, 5},
		{"clamped", Pagination{Mode: ModeRange, Start: 0, End: 1000}, 10, 0, 10},
		{"start beyond listing", Pagination{Mode: ModeRange, Start: 8, End: 20}, 5, 5, 5},
		{"zero window", Pagination{Mode: ModeRange, Start: 0, End: 0}, 5, 0, 0},
		{"empty listing", Pagination{Mode: ModeRange, Start: 1, End: 3}, 0, 0, 0},
		{"offset", Pagination{Mode: ModeOffset, Offset: 2, Limit: 2}, 5, 2, 4},
		{"offset past end", Pagination{Mode: ModeOffset, Offset: 9, Limit: 2}, 5, 5, 5},
		{"limit past end", Pagination{Mode: ModeOffset, Offset: 3, Limit: 100}, 5, 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lo, hi := tt.p.Bounds(tt.total)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestSQLWindow(t *testing.T) {
	offset, limit := Pagination{Mode: ModeRange, Start: 2, End: 5}.SQLWindow()
	assert.Equal(t, 1, offset)
	assert.Equal(t, 4, limit)

	offset, limit = Pagination{Mode: ModeRange, Start: 0, End: 0}.SQLWindow()
	assert.Equal(t, 0, offset)
	assert.Equal(t, 0, limit)

	offset, limit = Pagination{Mode: ModeOffset, Offset: 40, Limit: 10}.SQLWindow()
	assert.Equal(t, 40, offset)
	assert.Equal(t, 10, limit)
}
