// Package classifier splits reservations into upcoming and past buckets.
package classifier

import (
	"sort"
	"strings"
	"time"

	"gilded/internal/models"
)

// Buckets is the result of Classify. Every input reservation lands in exactly one bucket.
type Buckets struct {
	Upcoming []models.Reservation
	Past     []models.Reservation
	// Excluded holds reservations whose date could not be parsed
	Excluded []models.Reservation
}

var layouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
}

// ParseDate accepts an ISO date (UTC midnight) or an RFC 3339 timestamp
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type dated struct {
	r models.Reservation
	t time.Time
}

// Classify puts reservations dated strictly before now into Past (newest
// first) and the rest into Upcoming (soonest first). Equal dates keep their
// input order.
func Classify(reservations []models.Reservation, now time.Time) Buckets {
	var upcoming, past []dated
	b := Buckets{
		Upcoming: []models.Reservation{},
		Past:     []models.Reservation{},
		Excluded: []models.Reservation{},
	}

	for _, r := range reservations {
		t, ok := ParseDate(r.Date)
		if !ok {
			b.Excluded = append(b.Excluded, r)
			continue
		}
		if t.Before(now) {
			past = append(past, dated{r, t})
		} else {
			upcoming = append(upcoming, dated{r, t})
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].t.Before(upcoming[j].t) })
	sort.SliceStable(past, func(i, j int) bool { return past[i].t.After(past[j].t) })

	for _, d := range upcoming {
		b.Upcoming = append(b.Upcoming, d.r)
	}
	for _, d := range past {
		b.Past = append(b.Past, d.r)
	}
	return b
}
