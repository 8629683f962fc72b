package recommend

import (
	"fmt"
	"strings"

	"gilded/internal/models"
)

// Split turns the comma separated generator output into labels.
// Tokens are trimmed, empty ones dropped, order and duplicates kept.
func Split(raw string) []string {
	labels := []string{}
	for _, token := range strings.Split(raw, ",") {
		if token = strings.TrimSpace(token); token != "" {
			labels = append(labels, token)
		}
	}
	return labels
}

// Match returns the events whose name contains any label, case-insensitively.
// The result keeps catalog order and is empty when nothing matches.
func Match(labels []string, events []models.Event) []models.Event {
	lowered := make([]string, 0, len(labels))
	for _, l := range labels {
		if l = strings.ToLower(strings.TrimSpace(l)); l != "" {
			lowered = append(lowered, l)
		}
	}

	matched := []models.Event{}
	if len(lowered) == 0 {
		return matched
	}

	for _, e := range events {
		name := strings.ToLower(e.Name)
		for _, l := range lowered {
			if strings.Contains(name, l) {
				matched = append(matched, e)
				break
			}
		}
	}
	return matched
}

// FallbackMessage is shown when labels exist but none matched the catalog
func FallbackMessage(labels []string) string {
	return fmt.Sprintf("We found some recommendations: %s. However, no currently available events match these suggestions. Please check back later!",
		strings.Join(labels, ", "))
}
