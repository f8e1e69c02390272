package advisor

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Profile holds the advisor persona and the form vocabularies the frontend
// renders. Persona text and guidance directives are data, not code, so a
// deployment can swap the advisor without rebuilding.
type Profile struct {
	Name         string   `json:"name" yaml:"name"`
	Title        string   `json:"title" yaml:"title"`
	Region       string   `json:"region" yaml:"region"`
	OpeningLine  string   `json:"openingLine" yaml:"opening_line"`
	Directives   []string `json:"directives" yaml:"directives"`
	Destinations []string `json:"destinations" yaml:"destinations"`
	TripTypes    []string `json:"tripTypes" yaml:"trip_types"`
	Currencies   []string `json:"currencies" yaml:"currencies"`
}

// Default returns the built-in Saudi tourism advisor.
func Default() Profile {
	return Profile{
		Name:        "Rahhal",
		Title:       "Saudi Arabia tourism expert",
		Region:      "Saudi Arabia",
		OpeningLine: "Marhaba! Fill in your trip preferences and I will put together a plan, or just ask me anything about visiting Saudi Arabia.",
		Directives: []string{
			"Ground every recommendation in the visitor's stated preferences and budget.",
			"Name specific places, activities, and realistic costs rather than generic advice.",
			"Respect local customs and point out cultural considerations, especially around religious sites.",
			"Mention safety notes and the best times of day or year when they matter.",
			"Keep responses friendly, practical, and easy to follow.",
		},
		Destinations: []string{"Riyadh", "Jeddah", "Mecca", "Medina", "AlUla"},
		TripTypes:    []string{"Religious", "Entertainment", "Business", "Cultural"},
		Currencies:   []string{"SAR", "USD", "EUR"},
	}
}

// Load reads a profile overlay from a YAML file. Fields missing from the
// file keep their default values; an empty path returns the default profile
// unchanged.
func Load(path string) (Profile, error) {
	profile := Default()
	if path == "" {
		return profile, nil
	}

	if _, err := os.Stat(path); err != nil {
		return Profile{}, fmt.Errorf("advisor profile %s: %w", path, err)
	}
	if err := cleanenv.ReadConfig(path, &profile); err != nil {
		return Profile{}, fmt.Errorf("failed to parse advisor profile %s: %w", path, err)
	}

	fillMissing(&profile)
	return profile, nil
}

// fillMissing restores defaults for fields a sparse overlay left empty, so
// a profile file can override just the persona text without re-listing the
// form vocabularies.
func fillMissing(p *Profile) {
	def := Default()
	if p.Name == "" {
		p.Name = def.Name
	}
	if p.Title == "" {
		p.Title = def.Title
	}
	if p.Region == "" {
		p.Region = def.Region
	}
	if p.OpeningLine == "" {
		p.OpeningLine = def.OpeningLine
	}
	if len(p.Directives) == 0 {
		p.Directives = def.Directives
	}
	if len(p.Destinations) == 0 {
		p.Destinations = def.Destinations
	}
	if len(p.TripTypes) == 0 {
		p.TripTypes = def.TripTypes
	}
	if len(p.Currencies) == 0 {
		p.Currencies = def.Currencies
	}
}
