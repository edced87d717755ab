package id

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsSortable(t *testing.T) {
	t.Parallel()

	ids := make([]string, 100)
	for i := range ids {
		ids[i] = New()
	}
	assert.True(t, sort.StringsAreSorted(ids))
	assert.Len(t, ids[0], 26)
}

func TestAtRoundTrip(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, 3, 15, 10, 30, 45, 123_000_000, time.UTC)
	s, err := At(ts)
	require.NoError(t, err)
	got, err := Time(s)
	require.NoError(t, err)
	assert.True(t, got.Equal(ts), got)
}

func TestTimeRejectsGarbage(t *testing.T) {
	t.Parallel()

	_, err := Time("not-a-ulid")
	assert.Error(t, err)
}

func TestAtOutOfRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ts   time.Time
	}{
		{"before epoch", time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"long before epoch", time.Date(1965, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"after max", time.Date(10900, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := At(tt.ts)
			assert.ErrorIs(t, err, ErrTimeRange)
			assert.Empty(t, s)
		})
	}

	s, err := At(time.UnixMilli(0))
	require.NoError(t, err)
	assert.Len(t, s, 26)
}
