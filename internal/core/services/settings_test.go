package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zirar/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/zirar/internal/core/domain"
)

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyVariantsEnhance, true)
	_ = store.Set(KeyVariantsCap, 12)
	_ = store.Set(KeyThrottleRate, 2.5)
	_ = store.Set(KeyDisplayShowCandidates, true)
	_ = store.Set(KeyHistoryEnabled, false)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	assert.True(t, settings.Variants.Enhance)
	assert.Equal(t, 12, settings.Variants.Cap)
	assert.InDelta(t, 2.5, settings.Throttle.Rate, 1e-9)
	assert.True(t, settings.Display.ShowCandidates)
	assert.False(t, settings.History.Enabled)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set(KeyVariantsEnhance, "yes please")
	_ = store.Set(KeyVariantsCap, -3)
	_ = store.Set(KeyThrottleRate, -1.0)
	_ = store.Set(KeyHistoryEnabled, 7)

	settings, err := NewSettingsService(store).Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Variants.Enhance, settings.Variants.Enhance)
	assert.Equal(t, defaults.Variants.Cap, settings.Variants.Cap)
	assert.Zero(t, settings.Throttle.Rate)
	assert.True(t, settings.History.Enabled)
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	want := domain.AppSettings{
		Variants: domain.VariantSettings{Enhance: true, Cap: 20},
		Throttle: domain.ThrottleSettings{Rate: 10},
		Display:  domain.DisplaySettings{ShowCandidates: true},
		History:  domain.HistorySettings{Enabled: false},
	}
	require.NoError(t, service.Save(&want))

	assert.True(t, store.GetBool(KeyVariantsEnhance))
	assert.Equal(t, 20, store.GetInt(KeyVariantsCap))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
}

func TestSettingsService_Save_Invalid(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings := domain.DefaultAppSettings()
	settings.Variants.Cap = 0

	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)
}

func TestSettingsService_Set(t *testing.T) {
	tests := []struct {
		key   string
		value string
		check func(t *testing.T, s *domain.AppSettings)
	}{
		{KeyVariantsEnhance, "true", func(t *testing.T, s *domain.AppSettings) {
			assert.True(t, s.Variants.Enhance)
		}},
		{KeyVariantsCap, " 7 ", func(t *testing.T, s *domain.AppSettings) {
			assert.Equal(t, 7, s.Variants.Cap)
		}},
		{KeyThrottleRate, "0.5", func(t *testing.T, s *domain.AppSettings) {
			assert.InDelta(t, 0.5, s.Throttle.Rate, 1e-9)
		}},
		{KeyDisplayShowCandidates, "1", func(t *testing.T, s *domain.AppSettings) {
			assert.True(t, s.Display.ShowCandidates)
		}},
		{KeyHistoryEnabled, "false", func(t *testing.T, s *domain.AppSettings) {
			assert.False(t, s.History.Enabled)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			require.NoError(t, service.Set(tt.key, tt.value))

			settings, err := service.Get()
			require.NoError(t, err)
			tt.check(t, settings)
		})
	}
}

func TestSettingsService_Set_Errors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown key", "search.mode", "fast"},
		{"bad bool", KeyVariantsEnhance, "maybe"},
		{"bad int", KeyVariantsCap, "many"},
		{"zero cap", KeyVariantsCap, "0"},
		{"bad float", KeyThrottleRate, "fast"},
		{"negative rate", KeyThrottleRate, "-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewSettingsService(memory.NewConfigStore())

			err := service.Set(tt.key, tt.value)

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestSettingsService_Keys(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	keys := service.Keys()
	assert.Len(t, keys, 5)
	assert.Contains(t, keys, KeyThrottleRate)

	keys[0] = "mutated"
	assert.Equal(t, KeyVariantsEnhance, service.Keys()[0])
}

func TestSettingsService_NotConfigured(t *testing.T) {
	service := NewSettingsService(nil)

	_, err := service.Get()
	assert.Error(t, err)
	assert.Error(t, service.Set(KeyVariantsCap, "3"))
}

func TestSettingsService_GetDefaults(t *testing.T) {
	assert.Equal(t, domain.DefaultAppSettings(), NewSettingsService(nil).GetDefaults())
}
