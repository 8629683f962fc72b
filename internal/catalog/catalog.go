package catalog

import (
	"strings"

	apperrors "gilded/internal/errors"
	"gilded/internal/models"
)

// AllCategories selects every category in Filter
const AllCategories = "All"

// Store is the fixed in-memory catalog. It is built once and never mutated;
// every accessor hands out copies.
type Store struct {
	events []models.Event
	byID   map[string]int
}

// New builds a catalog from the given events, keeping their order
func New(events []models.Event) *Store {
	s := &Store{
		events: make([]models.Event, len(events)),
		byID:   make(map[string]int, len(events)),
	}
	for i, e := range events {
		s.events[i] = cloneEvent(e)
		s.byID[e.ID] = i
	}
	return s
}

// Default returns the catalog shipped with the service
func Default() *Store {
	return New(defaultEvents)
}

// All returns every event in catalog order
func (s *Store) All() []models.Event {
	out := make([]models.Event, len(s.events))
	for i, e := range s.events {
		out[i] = cloneEvent(e)
	}
	return out
}

// Get returns the event with the given id
func (s *Store) Get(id string) (models.Event, error) {
	i, ok := s.byID[id]
	if !ok {
		return models.Event{}, apperrors.ErrEventNotFound
	}
	return cloneEvent(s.events[i]), nil
}

// Categories returns "All" followed by the distinct categories in catalog order
func (s *Store) Categories() []string {
	seen := make(map[string]struct{}, len(s.events))
	categories := []string{AllCategories}
	for _, e := range s.events {
		if _, ok := seen[e.Category]; ok {
			continue
		}
		seen[e.Category] = struct{}{}
		categories = append(categories, e.Category)
	}
	return categories
}

// Filter returns events of the category (empty or "All" matches every event)
// whose name or description contains the search term, case-insensitively.
func (s *Store) Filter(category, search string) []models.Event {
	term := strings.ToLower(strings.TrimSpace(search))
	out := []models.Event{}
	for _, e := range s.events {
		if category != "" && category != AllCategories && e.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(e.Name), term) &&
			!strings.Contains(strings.ToLower(e.Description), term) {
			continue
		}
		out = append(out, cloneEvent(e))
	}
	return out
}

func cloneEvent(e models.Event) models.Event {
	tiers := make([]models.TicketType, len(e.TicketTypes))
	copy(tiers, e.TicketTypes)
	e.TicketTypes = tiers
	return e
}
