package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/zirar/internal/core/domain"
)

func TestJobEvent_CarriesTerminalFlag(t *testing.T) {
	result := domain.Found("pw")

	assert.True(t, JobEvent{Event: domain.JobEvent{Result: &result}}.Event.IsTerminal())
	assert.False(t, JobEvent{Event: domain.JobEvent{Progress: &domain.ProgressEvent{Index: 1}}}.Event.IsTerminal())
}

func TestTickInterval(t *testing.T) {
	assert.Positive(t, TickInterval)
}
