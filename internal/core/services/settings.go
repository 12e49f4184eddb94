package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/zirar/internal/core/domain"
	"github.com/custodia-labs/zirar/internal/core/ports/driven"
	"github.com/custodia-labs/zirar/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyVariantsEnhance       = "variants.enhance"
	KeyVariantsCap           = "variants.cap"
	KeyThrottleRate          = "throttle.rate"
	KeyDisplayShowCandidates = "display.show_candidates"
	KeyHistoryEnabled        = "history.enabled"
)

var settingKeys = []string{
	KeyVariantsEnhance,
	KeyVariantsCap,
	KeyThrottleRate,
	KeyDisplayShowCandidates,
	KeyHistoryEnabled,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings. Missing or invalid
// values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, errors.New("config store not configured")
	}
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Variants: domain.VariantSettings{
			Enhance: s.getBool(KeyVariantsEnhance, defaults.Variants.Enhance),
			Cap:     s.getCap(defaults.Variants.Cap),
		},
		Throttle: domain.ThrottleSettings{
			Rate: s.getRate(defaults.Throttle.Rate),
		},
		Display: domain.DisplaySettings{
			ShowCandidates: s.getBool(KeyDisplayShowCandidates, defaults.Display.ShowCandidates),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(KeyHistoryEnabled, defaults.History.Enabled),
		},
	}

	return settings, nil
}

// Save validates and persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return errors.New("config store not configured")
	}
	if settings == nil {
		return fmt.Errorf("%w: settings are required", domain.ErrInvalidInput)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{KeyVariantsEnhance, settings.Variants.Enhance},
		{KeyVariantsCap, settings.Variants.Cap},
		{KeyThrottleRate, settings.Throttle.Rate},
		{KeyDisplayShowCandidates, settings.Display.ShowCandidates},
		{KeyHistoryEnabled, settings.History.Enabled},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	return nil
}

// Set updates one setting, parsing value according to the key's type.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	value = strings.TrimSpace(value)
	switch key {
	case KeyVariantsEnhance:
		settings.Variants.Enhance, err = parseBool(key, value)
	case KeyVariantsCap:
		settings.Variants.Cap, err = parseInt(key, value)
	case KeyThrottleRate:
		settings.Throttle.Rate, err = parseFloat(key, value)
	case KeyDisplayShowCandidates:
		settings.Display.ShowCandidates, err = parseBool(key, value)
	case KeyHistoryEnabled:
		settings.History.Enabled, err = parseBool(key, value)
	default:
		return fmt.Errorf("%w: unknown setting %q (valid: %s)",
			domain.ErrInvalidInput, key, strings.Join(settingKeys, ", "))
	}
	if err != nil {
		return err
	}

	return s.Save(settings)
}

// Keys lists the settable keys.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal
	}
	if _, ok := val.(bool); !ok {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getCap(defaultVal int) int {
	val := s.configStore.GetInt(KeyVariantsCap)
	if val < 1 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getRate(defaultVal float64) float64 {
	if _, exists := s.configStore.Get(KeyThrottleRate); !exists {
		return defaultVal
	}
	val := s.configStore.GetFloat(KeyThrottleRate)
	if val < 0 {
		return defaultVal
	}
	return val
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("%w: %s expects true or false, got %q", domain.ErrInvalidInput, key, value)
	}
	return b, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s expects an integer, got %q", domain.ErrInvalidInput, key, value)
	}
	return n, nil
}

func parseFloat(key, value string) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s expects a number, got %q", domain.ErrInvalidInput, key, value)
	}
	return f, nil
}
