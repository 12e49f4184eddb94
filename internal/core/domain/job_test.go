package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobState_Transitions(t *testing.T) {
	terminal := []JobState{JobFound, JobExhausted, JobStopped, JobFailed}

	assert.True(t, JobIdle.CanTransitionTo(JobRunning))
	assert.False(t, JobIdle.CanTransitionTo(JobFound))

	for _, s := range terminal {
		assert.True(t, JobRunning.CanTransitionTo(s), s)
		assert.True(t, s.IsTerminal(), s)
		for _, to := range append(terminal, JobIdle, JobRunning) {
			assert.False(t, s.CanTransitionTo(to), "%s -> %s", s, to)
		}
	}

	assert.False(t, JobRunning.CanTransitionTo(JobIdle))
	assert.False(t, JobIdle.IsTerminal())
	assert.False(t, JobRunning.IsTerminal())
}

func TestStateForOutcome(t *testing.T) {
	s, err := StateForOutcome(OutcomeStopped)
	require.NoError(t, err)
	assert.Equal(t, JobStopped, s)

	_, err = StateForOutcome("bogus")
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestJobRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     JobRequest
		wantErr error
	}{
		{name: "valid", req: JobRequest{ArchivePath: "a.zip", PasswordListPath: "l.txt"}},
		{name: "missing archive", req: JobRequest{PasswordListPath: "l.txt"}, wantErr: ErrInvalidInput},
		{name: "missing list", req: JobRequest{ArchivePath: "a.zip"}, wantErr: ErrInvalidInput},
		{
			name:    "negative cap",
			req:     JobRequest{ArchivePath: "a.zip", PasswordListPath: "l.txt", VariantCap: -1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "bad format",
			req:     JobRequest{ArchivePath: "a.zip", PasswordListPath: "l.txt", Format: "7z"},
			wantErr: ErrUnsupportedFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), err)
		})
	}
}

func TestJobRequest_Archive(t *testing.T) {
	req := JobRequest{ArchivePath: "backup.dat", PasswordListPath: "l.txt"}
	assert.Equal(t, FormatUnknown, req.Archive().Format)

	req.Format = FormatZIP
	assert.Equal(t, FormatZIP, req.Archive().Format)
	assert.Equal(t, ".dat", req.Archive().Ext)
}

func TestJobRequest_Cap(t *testing.T) {
	assert.Equal(t, DefaultVariantCap, JobRequest{}.Cap())
	assert.Equal(t, 7, JobRequest{VariantCap: 7}.Cap())
}

func TestJobRequest_Key(t *testing.T) {
	a := JobRequest{ArchivePath: "a.zip", PasswordListPath: "l.txt"}
	b := JobRequest{ArchivePath: "a.zip", PasswordListPath: "l.txt", Enhance: true}
	c := JobRequest{ArchivePath: "b.zip", PasswordListPath: "l.txt"}

	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), c.Key())
}

func TestNewRunRecord(t *testing.T) {
	req := JobRequest{ArchivePath: "a.rar", PasswordListPath: "l.txt", Enhance: true}
	res := Found("hunter2")
	res.Attempts = 3
	res.Total = 10

	rec := NewRunRecord("id-1", req, res)

	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, FormatRAR, rec.Format)
	assert.True(t, rec.Enhanced)
	assert.Equal(t, OutcomeFound, rec.Outcome)
	assert.Equal(t, 3, rec.Attempts)
	assert.Equal(t, 10, rec.Total)
}
