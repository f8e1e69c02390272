package advisor

import (
	"fmt"
	"strings"

	"github.com/rahhal-app/rahhal/backend/internal/model/advisor"
	"github.com/rahhal-app/rahhal/backend/internal/model/trip"
)

// SystemPrompt renders the persona instructions the model speaks under.
func SystemPrompt(p advisor.Profile) string {
	return fmt.Sprintf(`You are %s, a %s.

Guidelines:
- %s

Stay in character as %s and keep every recommendation grounded in %s.`,
		p.Name,
		p.Title,
		strings.Join(p.Directives, "\n- "),
		p.Name,
		p.Region,
	)
}

// PreferencesPrompt renders a submitted trip preferences form as a
// recommendation request.
func PreferencesPrompt(p advisor.Profile, prefs trip.Preferences) string {
	family := prefs.FamilyComposition
	if family == "" {
		family = "not specified"
	}

	return fmt.Sprintf(`Please provide a personalized travel recommendation for %s with the following details:
Location: %s
Budget: %d %s
Trip Type: %s
Family Composition: %s
Duration: %d days`,
		p.Region,
		prefs.Destination,
		prefs.Budget,
		prefs.Currency,
		prefs.TripType,
		family,
		prefs.DurationDays,
	)
}
