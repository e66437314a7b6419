package settings

import (
	"errors"

	"pattern-projector/internal/store"
)

// Overlay selects what is drawn over the projected pattern.
type Overlay struct {
	Disabled       bool `json:"disabled"`
	Grid           bool `json:"grid"`
	Border         bool `json:"border"`
	Paper          bool `json:"paper"`
	FlipLines      bool `json:"flipLines"`
	FlippedPattern bool `json:"flippedPattern"`
}

// Theme is the color theme of the projection overlays.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DisplaySettings is the persisted set of display options. Core logic only
// reads named flags.
type DisplaySettings struct {
	Overlay       Overlay `json:"overlay"`
	Theme         Theme   `json:"theme"`
	Inverted      bool    `json:"inverted"`
	InvertedGreen bool    `json:"isInvertedGreen"`
	FourCorners   bool    `json:"isFourCorners"`
}

// Default returns the settings of a fresh session.
func Default() DisplaySettings {
	return DisplaySettings{
		Overlay:     Overlay{Grid: true, FlippedPattern: true},
		Theme:       ThemeLight,
		FourCorners: true,
	}
}

// Load reads the settings from s, falling back to Default when nothing was
// saved yet. A malformed record also falls back, and its error is returned
// alongside so the caller may report it.
func Load(s store.Store) (DisplaySettings, error) {
	ds := Default()
	err := store.GetJSON(s, store.KeyDisplaySettings, &ds)
	if errors.Is(err, store.ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Default(), err
	}
	return ds, nil
}

// Save writes ds to s.
func Save(s store.Store, ds DisplaySettings) error {
	return store.SetJSON(s, store.KeyDisplaySettings, ds)
}
