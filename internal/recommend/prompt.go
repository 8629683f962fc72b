package recommend

import (
	"strings"
	"text/template"
)

// FieldRecommendations is the only field the generator must return
const FieldRecommendations = "recommendations"

var promptTemplate = template.Must(template.New("recommendations").Parse(
	`You are an event recommendation expert. Based on the user's stated preferences and past bookings, you will provide a list of event recommendations tailored to their interests.

User Preferences: {{.UserPreferences}}
Past Bookings: {{.PastBookings}}

Answer with a JSON object whose "recommendations" field is a comma separated list of short event names or event types.

Recommendations:`))

type promptData struct {
	UserPreferences string
	PastBookings    string
}

func renderPrompt(preferences, pastBookings string) (string, error) {
	var b strings.Builder
	if err := promptTemplate.Execute(&b, promptData{
		UserPreferences: preferences,
		PastBookings:    pastBookings,
	}); err != nil {
		return "", err
	}
	return b.String(), nil
}
