// Package theme holds the color palette shared by every renderer.
//
// The default palette is colorblind-safe: blue and orange never carry
// meaning on their own, and text contrast stays above 7:1 on white.
package theme

import "strings"

// Theme is a named color palette. Colors are #rrggbb hex strings.
type Theme struct {
	Primary    string `json:"primary" yaml:"primary" toml:"primary" validate:"omitempty,hexcolor"`
	Secondary  string `json:"secondary" yaml:"secondary" toml:"secondary" validate:"omitempty,hexcolor"`
	Neutral    string `json:"neutral" yaml:"neutral" toml:"neutral" validate:"omitempty,hexcolor"`
	Tertiary   string `json:"tertiary" yaml:"tertiary" toml:"tertiary" validate:"omitempty,hexcolor"`
	Text       string `json:"text" yaml:"text" toml:"text" validate:"omitempty,hexcolor"`
	Background string `json:"background" yaml:"background" toml:"background" validate:"omitempty,hexcolor"`
}

// Default palette colors.
const (
	Blue      = "#3b82f6"
	Orange    = "#f97316"
	Gray      = "#6b7280"
	Purple    = "#8b5cf6"
	DarkGray  = "#1f2937"
	White     = "#ffffff"
	FillAlpha = "20" // appended to a color for translucent fills
)

// Default returns the built-in palette.
func Default() Theme {
	return Theme{
		Primary:    Blue,
		Secondary:  Orange,
		Neutral:    Gray,
		Tertiary:   Purple,
		Text:       DarkGray,
		Background: White,
	}
}

// WithDefaults fills empty colors from [Default].
func (t Theme) WithDefaults() Theme {
	d := Default()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&t.Primary, d.Primary)
	fill(&t.Secondary, d.Secondary)
	fill(&t.Neutral, d.Neutral)
	fill(&t.Tertiary, d.Tertiary)
	fill(&t.Text, d.Text)
	fill(&t.Background, d.Background)
	return t
}

// Fill returns the translucent variant of a #rrggbb color.
// Colors that already carry an alpha channel are returned unchanged.
func Fill(color string) string {
	if len(color) == 7 && strings.HasPrefix(color, "#") {
		return color + FillAlpha
	}
	return color
}
