package models

// TicketType is one price tier of an event
type TicketType struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Event represents a catalog event
type Event struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	LongDescription string       `json:"longDescription"`
	Date            string       `json:"date"`
	Time            string       `json:"time"`
	Location        string       `json:"location"`
	Venue           string       `json:"venue"`
	ImageURL        string       `json:"imageUrl"`
	ImageHint       string       `json:"imageHint"`
	Category        string       `json:"category"`
	TicketTypes     []TicketType `json:"ticketTypes"`
}

// TicketType returns the tier with the given id. An empty id selects the first tier.
func (e *Event) TicketType(id string) (TicketType, bool) {
	if len(e.TicketTypes) == 0 {
		return TicketType{}, false
	}
	if id == "" {
		return e.TicketTypes[0], true
	}
	for _, t := range e.TicketTypes {
		if t.ID == id {
			return t, true
		}
	}
	return TicketType{}, false
}

// Reservation represents a user's confirmed booking against one event.
// Empty fields are omitted so that a merge-upsert only touches the fields it carries.
type Reservation struct {
	ID         string `json:"id,omitempty"`
	EventID    string `json:"eventId"`
	EventName  string `json:"eventName,omitempty"`
	Date       string `json:"date,omitempty"`
	Location   string `json:"location,omitempty"`
	ImageURL   string `json:"imageUrl,omitempty"`
	ImageHint  string `json:"imageHint,omitempty"`
	ReservedAt string `json:"reservedAt,omitempty"`
}

// Merge copies the non-empty fields of other over r
func (r *Reservation) Merge(other Reservation) {
	if other.EventID != "" {
		r.EventID = other.EventID
	}
	if other.EventName != "" {
		r.EventName = other.EventName
	}
	if other.Date != "" {
		r.Date = other.Date
	}
	if other.Location != "" {
		r.Location = other.Location
	}
	if other.ImageURL != "" {
		r.ImageURL = other.ImageURL
	}
	if other.ImageHint != "" {
		r.ImageHint = other.ImageHint
	}
	if other.ReservedAt != "" {
		r.ReservedAt = other.ReservedAt
	}
}

// LoginHistoryEntry is one successful sign-in
type LoginHistoryEntry struct {
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
}

// UserProfile is the users/{uid} document written at signup
type UserProfile struct {
	ID         string `json:"id"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	DateJoined string `json:"dateJoined"`
}

// Session identifies the signed-in user of a request
type Session struct {
	UserID string
	Email  string
}
