package service

import (
	"gilded/internal/catalog"
	"gilded/internal/models"
)

type EventService struct {
	catalog *catalog.Store
}

func NewEventService(c *catalog.Store) *EventService {
	return &EventService{catalog: c}
}

func (s *EventService) List(category, query string) models.ListEventsResponse {
	return s.catalog.Filter(category, query)
}

func (s *EventService) Get(id string) (models.Event, error) {
	return s.catalog.Get(id)
}

func (s *EventService) Categories() models.CategoriesResponse {
	return s.catalog.Categories()
}
