package domain

import "fmt"

// VariantSettings controls password list enhancement.
type VariantSettings struct {
	// Enhance turns on variant generation by default.
	Enhance bool

	// Cap bounds the variants generated per candidate.
	Cap int
}

// ThrottleSettings limits how fast trials are made.
type ThrottleSettings struct {
	// Rate is the maximum attempts per second. Zero means unlimited.
	Rate float64
}

// IsEnabled returns true if attempts are rate limited.
func (t ThrottleSettings) IsEnabled() bool {
	return t.Rate > 0
}

// DisplaySettings controls how progress is shown.
type DisplaySettings struct {
	// ShowCandidates prints candidates verbatim instead of masked.
	ShowCandidates bool
}

// HistorySettings controls run history.
type HistorySettings struct {
	// Enabled records finished runs.
	Enabled bool
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Variants holds enhancement settings.
	Variants VariantSettings

	// Throttle holds attempt rate settings.
	Throttle ThrottleSettings

	// Display holds progress display settings.
	Display DisplaySettings

	// History holds run history settings.
	History HistorySettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Variants: VariantSettings{
			Enhance: false,
			Cap:     DefaultVariantCap,
		},
		Throttle: ThrottleSettings{Rate: 0},
		Display:  DisplaySettings{ShowCandidates: false},
		History:  HistorySettings{Enabled: true},
	}
}

// Validate checks the settings are usable.
func (s AppSettings) Validate() error {
	if s.Variants.Cap < 1 {
		return fmt.Errorf("%w: variant cap must be at least 1", ErrInvalidInput)
	}
	if s.Throttle.Rate < 0 {
		return fmt.Errorf("%w: throttle rate must not be negative", ErrInvalidInput)
	}
	return nil
}
