package catalog

import "gilded/internal/models"

type image struct {
	url  string
	hint string
}

var placeholderImages = map[string]image{
	"music-concert":   {url: "https://picsum.photos/seed/music-concert/600/400", hint: "orchestra concert"},
	"art-exhibition":  {url: "https://picsum.photos/seed/art-exhibition/600/400", hint: "art gallery"},
	"tech-conference": {url: "https://picsum.photos/seed/tech-conference/600/400", hint: "tech conference"},
	"food-festival":   {url: "https://picsum.photos/seed/food-festival/600/400", hint: "food festival"},
	"film-premiere":   {url: "https://picsum.photos/seed/film-premiere/600/400", hint: "red carpet"},
	"charity-gala":    {url: "https://picsum.photos/seed/charity-gala/600/400", hint: "gala dinner"},
}

// imageFor falls back to a default picture for unknown ids
func imageFor(id string) (string, string) {
	if img, ok := placeholderImages[id]; ok {
		return img.url, img.hint
	}
	return "https://picsum.photos/seed/default/600/400", "event"
}

func withImage(e models.Event, imageID string) models.Event {
	e.ImageURL, e.ImageHint = imageFor(imageID)
	return e
}

var defaultEvents = []models.Event{
	withImage(models.Event{
		ID:              "1",
		Name:            "Starlight Symphony Orchestra",
		Description:     "An evening of classical music under the stars.",
		LongDescription: "Join us for a magical evening with the Starlight Symphony Orchestra. Featuring timeless pieces from Mozart, Beethoven, and Bach, this open-air concert promises an unforgettable experience. Bring a blanket and enjoy the sublime melodies in a breathtaking natural amphitheater.",
		Date:            "2025-12-15",
		Time:            "19:00",
		Location:        "Grand Park Amphitheater",
		Venue:           "Section A, Row 5",
		Category:        "Music",
		TicketTypes: []models.TicketType{
			{ID: "t1", Name: "General Admission", Price: 75},
			{ID: "t2", Name: "VIP Seating", Price: 150},
		},
	}, "music-concert"),
	withImage(models.Event{
		ID:              "2",
		Name:            `Modern Art Showcase: "Futurescapes"`,
		Description:     "Explore the future of art with digital and interactive installations.",
		LongDescription: `"Futurescapes" is a groundbreaking exhibition that pushes the boundaries of art and technology. Experience immersive VR installations, interactive digital sculptures, and AI-generated masterpieces from pioneering artists around the globe. A must-see for art lovers and tech enthusiasts alike.`,
		Date:            "2025-11-20",
		Time:            "10:00 - 20:00",
		Location:        "Metropolis Gallery of Modern Art",
		Venue:           "Main Hall",
		Category:        "Art",
		TicketTypes: []models.TicketType{
			{ID: "t1", Name: "Adult", Price: 40},
			{ID: "t2", Name: "Student", Price: 25},
		},
	}, "art-exhibition"),
	withImage(models.Event{
		ID:              "3",
		Name:            "Innovate Summit 2025",
		Description:     "The premier conference for technology and innovation leaders.",
		LongDescription: "Innovate Summit 2025 brings together the brightest minds in tech for three days of keynotes, workshops, and networking. Hear from industry giants, discover disruptive startups, and get hands-on with the latest technologies that are shaping our world. Your ticket to the future starts here.",
		Date:            "2025-01-10",
		Time:            "09:00 - 17:00",
		Location:        "Silicon Valley Convention Center",
		Venue:           "Keynote Stage",
		Category:        "Tech",
		TicketTypes: []models.TicketType{
			{ID: "t1", Name: "Full Conference Pass", Price: 999},
			{ID: "t2", Name: "One-Day Pass", Price: 399},
		},
	}, "tech-conference"),
	withImage(models.Event{
		ID:              "4",
		Name:            "Gourmet World Food Festival",
		Description:     "A culinary journey with flavors from around the globe.",
		LongDescription: "Embark on a delicious adventure at the Gourmet World Food Festival. Sample exotic dishes from over 30 countries, watch live cooking demonstrations by celebrity chefs, and discover artisanal products in our gourmet market. A paradise for foodies!",
		Date:            "2025-10-25",
		Time:            "11:00 - 22:00",
		Location:        "Harborfront Park",
		Venue:           "Food Stalls Area",
		Category:        "Food",
		TicketTypes: []models.TicketType{
			{ID: "t1", Name: "Entry Ticket", Price: 20},
			{ID: "t2", Name: "Tasting Package", Price: 50},
		},
	}, "food-festival"),
	withImage(models.Event{
		ID:              "5",
		Name:            `Premiere of "The Crimson Cipher"`,
		Description:     "Walk the red carpet at the most anticipated film premiere of the year.",
		LongDescription: `Be among the first to see "The Crimson Cipher," the new spy thriller from acclaimed director Anya Sharma. This exclusive red carpet event includes the film screening, followed by a Q&A with the cast and crew, and an invitation to the official after-party.`,
		Date:            "2026-02-05",
		Time:            "18:00",
		Location:        "The Majestic Theatre",
		Venue:           "Orchestra Seats",
		Category:        "Film",
		TicketTypes: []models.TicketType{
			{ID: "t1", Name: "Premiere Ticket", Price: 250},
		},
	}, "film-premiere"),
	withImage(models.Event{
		ID:              "6",
		Name:            "The Golden Age Charity Gala",
		Description:     "An elegant evening of dining and fundraising for a good cause.",
		LongDescription: "Join us for The Golden Age Charity Gala, an exclusive black-tie event to support children's education programs. The evening features a gourmet dinner, a silent auction with luxury items, live entertainment, and a keynote address from a special guest. Make a difference while enjoying a night of glamour.",
		Date:            "2025-11-30",
		Time:            "18:30",
		Location:        "The Ritz-Carlton Ballroom",
		Venue:           "Table 12",
		Category:        "Gala",
		TicketTypes: []models.TicketType{
			{ID: "t1", Name: "Individual Ticket", Price: 500},
			{ID: "t2", Name: "Table of 10", Price: 4500},
		},
	}, "charity-gala"),
}
