package domain

import (
	"fmt"
	"strings"

	apperrors "focusflow/internal/platform/errors"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(raw string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", fmt.Errorf("%w: unknown theme %q", apperrors.ErrInvalidInput, raw)
	}
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

type Environment string

const (
	EnvironmentForest  Environment = "forest"
	EnvironmentOcean   Environment = "ocean"
	EnvironmentSpace   Environment = "space"
	EnvironmentZen     Environment = "zen"
	EnvironmentMinimal Environment = "minimal"
)

// Environments returns the cycle order.
func Environments() []Environment {
	return []Environment{EnvironmentForest, EnvironmentOcean, EnvironmentSpace, EnvironmentZen, EnvironmentMinimal}
}

func ParseEnvironment(raw string) (Environment, error) {
	value := Environment(strings.ToLower(strings.TrimSpace(raw)))
	for _, env := range Environments() {
		if env == value {
			return env, nil
		}
	}
	return "", fmt.Errorf("%w: unknown environment %q", apperrors.ErrInvalidInput, raw)
}

// Next wraps from the last environment to the first. Unknown values restart the cycle.
func (e Environment) Next() Environment {
	all := Environments()
	for i, env := range all {
		if env == e {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

type Preferences struct {
	SchemaVersion   int         `json:"schemaVersion"`
	Theme           Theme       `json:"theme"`
	Environment     Environment `json:"environment"`
	MusicEnabled    bool        `json:"musicEnabled"`
	BrainVizEnabled bool        `json:"brainVizEnabled"`
	TotalXP         int         `json:"totalXP"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		SchemaVersion:   SchemaVersion,
		Theme:           ThemeLight,
		Environment:     EnvironmentForest,
		MusicEnabled:    true,
		BrainVizEnabled: true,
		TotalXP:         0,
	}
}

// Normalize replaces out-of-range fields with their defaults.
func (p Preferences) Normalize() Preferences {
	defaults := DefaultPreferences()
	if _, err := ParseTheme(string(p.Theme)); err != nil {
		p.Theme = defaults.Theme
	}
	if _, err := ParseEnvironment(string(p.Environment)); err != nil {
		p.Environment = defaults.Environment
	}
	if p.TotalXP < 0 {
		p.TotalXP = 0
	}
	p.SchemaVersion = SchemaVersion
	return p
}
