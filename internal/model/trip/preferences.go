package trip

import (
	"fmt"
	"strings"
)

// Preferences is the transient form payload a visitor submits to request an
// initial recommendation. It only exists long enough to synthesize the
// opening prompt and is never stored.
type Preferences struct {
	Destination       string `json:"destination"`
	Budget            int    `json:"budget"`
	Currency          string `json:"currency"`
	TripType          string `json:"tripType"`
	FamilyComposition string `json:"familyComposition"`
	DurationDays      int    `json:"durationDays"`
}

// Validate checks the fields the prompt template depends on. Family
// composition may be empty; the form treats it as free text.
func (p Preferences) Validate() error {
	if strings.TrimSpace(p.Destination) == "" {
		return fmt.Errorf("destination is required")
	}
	if strings.TrimSpace(p.Currency) == "" {
		return fmt.Errorf("currency is required")
	}
	if strings.TrimSpace(p.TripType) == "" {
		return fmt.Errorf("trip type is required")
	}
	if p.Budget < 0 {
		return fmt.Errorf("budget must not be negative")
	}
	if p.DurationDays < 1 {
		return fmt.Errorf("duration must be at least one day")
	}
	return nil
}
