package classifier

import (
	"testing"
	"time"

	"gilded/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func res(id, date string) models.Reservation {
	return models.Reservation{ID: id, EventID: id, Date: date}
}

func ids(rs []models.Reservation) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.ID
	}
	return out
}

func TestClassify_Example(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	input := []models.Reservation{
		res("a", "2025-01-10"),
		res("b", "2025-12-15"),
		res("c", "not-a-date"),
	}

	b := Classify(input, now)

	assert.Equal(t, []string{"b"}, ids(b.Upcoming))
	assert.Equal(t, []string{"a"}, ids(b.Past))
	assert.Equal(t, []string{"c"}, ids(b.Excluded))
}

func TestClassify_Ordering(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	input := []models.Reservation{
		res("p1", "2025-01-10"),
		res("u2", "2025-12-15"),
		res("p2", "2025-03-01T10:00:00Z"),
		res("u1", "2025-07-01"),
		res("u3", "2026-02-05"),
		res("p3", "2024-11-30"),
	}

	b := Classify(input, now)

	assert.Equal(t, []string{"u1", "u2", "u3"}, ids(b.Upcoming))
	assert.Equal(t, []string{"p2", "p1", "p3"}, ids(b.Past))
	assert.Empty(t, b.Excluded)
}

func TestClassify_StableForEqualDates(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	input := []models.Reservation{
		res("x", "2025-09-01"),
		res("y", "2025-09-01"),
		res("z", "2025-09-01"),
		res("old1", "2025-01-01"),
		res("old2", "2025-01-01"),
	}

	b := Classify(input, now)

	assert.Equal(t, []string{"x", "y", "z"}, ids(b.Upcoming))
	assert.Equal(t, []string{"old1", "old2"}, ids(b.Past))
}

func TestClassify_Boundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// A reservation dated exactly now is not strictly before it
	b := Classify([]models.Reservation{res("today", "2025-06-01")}, now)

	assert.Equal(t, []string{"today"}, ids(b.Upcoming))
	assert.Empty(t, b.Past)
}

func TestClassify_Partition(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	input := []models.Reservation{
		res("1", "2025-12-15"), res("2", ""), res("3", "2025-01-10"),
		res("4", "15/12/2025"), res("5", "2025-06-01T00:00:00.5Z"),
	}

	b := Classify(input, now)

	require.Equal(t, len(input), len(b.Upcoming)+len(b.Past)+len(b.Excluded))
	assert.ElementsMatch(t, []string{"2", "4"}, ids(b.Excluded))
	assert.NotNil(t, b.Upcoming)
	assert.NotNil(t, b.Past)
}

func TestClassify_Empty(t *testing.T) {
	b := Classify(nil, time.Now())
	assert.Empty(t, b.Upcoming)
	assert.Empty(t, b.Past)
	assert.Empty(t, b.Excluded)
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2025-12-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC), d)

	_, ok = ParseDate("2025-12-15T19:00:00+02:00")
	assert.True(t, ok)

	_, ok = ParseDate("tomorrow")
	assert.False(t, ok)
}
