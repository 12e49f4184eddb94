package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultAppSettings(t *testing.T) {
	s := DefaultAppSettings()

	assert.False(t, s.Variants.Enhance)
	assert.Equal(t, DefaultVariantCap, s.Variants.Cap)
	assert.False(t, s.Throttle.IsEnabled())
	assert.False(t, s.Display.ShowCandidates)
	assert.True(t, s.History.Enabled)
	assert.NoError(t, s.Validate())
}

func TestAppSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppSettings)
		wantErr bool
	}{
		{name: "defaults", mutate: func(*AppSettings) {}, wantErr: false},
		{name: "cap of one", mutate: func(s *AppSettings) { s.Variants.Cap = 1 }, wantErr: false},
		{name: "zero cap", mutate: func(s *AppSettings) { s.Variants.Cap = 0 }, wantErr: true},
		{name: "negative rate", mutate: func(s *AppSettings) { s.Throttle.Rate = -1 }, wantErr: true},
		{name: "positive rate", mutate: func(s *AppSettings) { s.Throttle.Rate = 2.5 }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultAppSettings()
			tt.mutate(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidInput))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestThrottleSettings_IsEnabled(t *testing.T) {
	assert.False(t, ThrottleSettings{}.IsEnabled())
	assert.True(t, ThrottleSettings{Rate: 0.5}.IsEnabled())
}
