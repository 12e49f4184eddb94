package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/zirar/internal/core/domain"
)

// crackFixture writes an encrypted archive and a password list.
func crackFixture(t *testing.T, password string, candidates ...string) (archivePath, listPath string) {
	t.Helper()
	dir := t.TempDir()
	archivePath = filepath.Join(dir, "secret.zip")
	writeZip(t, archivePath, password)
	listPath = writeFile(t, dir, "passwords.txt", strings.Join(candidates, "\n")+"\n")
	return archivePath, listPath
}

func TestCrackCmd_Use(t *testing.T) {
	assert.Equal(t, "crack <archive> <password-list>", crackCmd.Use)
}

func TestCrackCmd_Flags(t *testing.T) {
	tests := []struct {
		name      string
		shorthand string
		defValue  string
	}{
		{"enhance", "e", "false"},
		{"cap", "", "50"},
		{"format", "f", ""},
		{"rate", "", "0"},
		{"show", "", "false"},
		{"tui", "", "false"},
		{"no-history", "", "false"},
		{"yes", "y", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := crackCmd.Flags().Lookup(tt.name)
			require.NotNil(t, flag, "%s flag should exist", tt.name)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
			assert.Equal(t, tt.defValue, flag.DefValue)
		})
	}
}

func TestCrackCmd_RequiresTwoArgs(t *testing.T) {
	_, err := execute(t, "crack", "only-one")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestCrackCmd_NotConfigured(t *testing.T) {
	setupTestServices(t)
	crackFactory = nil

	_, err := execute(t, "crack", "a.zip", "list.txt", "--yes")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "crack service not configured")
}

func TestCrackCmd_Found(t *testing.T) {
	ts := setupTestServices(t)
	archivePath, listPath := crackFixture(t, "admin", "secret", "admin", "letmein")

	out, err := execute(t, "crack", archivePath, listPath, "--yes")

	require.NoError(t, err)
	assert.Contains(t, out, "Password found: admin")
	assert.Contains(t, out, "Attempts: 2 of 3")

	records, err := ts.history.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.OutcomeFound, records[0].Outcome)
	assert.Equal(t, archivePath, records[0].ArchivePath)
}

func TestCrackCmd_ExhaustedExitsNonZero(t *testing.T) {
	setupTestServices(t)
	archivePath, listPath := crackFixture(t, "admin", "secret", "letmein")

	out, err := execute(t, "crack", archivePath, listPath, "--yes")

	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.True(t, IsReported(err))
	assert.Contains(t, out, "Password not found: tried 2 candidates")
}

func TestCrackCmd_EmptyListFails(t *testing.T) {
	setupTestServices(t)
	archivePath, listPath := crackFixture(t, "admin", "   ", "")

	out, err := execute(t, "crack", archivePath, listPath, "--yes")

	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Contains(t, out, "Failed: "+domain.ErrEmptyCandidateList.Error())
}

func TestCrackCmd_Enhance(t *testing.T) {
	setupTestServices(t)
	archivePath, listPath := crackFixture(t, "p@ssword", "password")

	out, err := execute(t, "crack", archivePath, listPath, "--yes", "--enhance")

	require.NoError(t, err)
	assert.Contains(t, out, "Password found: p@ssword")
}

func TestCrackCmd_EnhanceFromSettings(t *testing.T) {
	ts := setupTestServices(t)
	require.NoError(t, ts.config.Set("variants.enhance", true))
	archivePath, listPath := crackFixture(t, "p@ssword", "password")

	out, err := execute(t, "crack", archivePath, listPath, "--yes")

	require.NoError(t, err)
	assert.Contains(t, out, "Password found: p@ssword")
}

func TestCrackCmd_FlagOverridesSettings(t *testing.T) {
	ts := setupTestServices(t)
	require.NoError(t, ts.config.Set("variants.enhance", true))
	archivePath, listPath := crackFixture(t, "p@ssword", "password")

	_, err := execute(t, "crack", archivePath, listPath, "--yes", "--enhance=false")

	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
}

func TestCrackCmd_NoHistory(t *testing.T) {
	ts := setupTestServices(t)
	archivePath, listPath := crackFixture(t, "admin", "admin")

	_, err := execute(t, "crack", archivePath, listPath, "--yes", "--no-history")
	require.NoError(t, err)

	records, err := ts.history.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
	require.Len(t, ts.options, 1)
	assert.False(t, ts.options[0].RecordHistory)
}

func TestCrackCmd_HistoryDisabledInSettings(t *testing.T) {
	ts := setupTestServices(t)
	require.NoError(t, ts.config.Set("history.enabled", false))
	archivePath, listPath := crackFixture(t, "admin", "admin")

	_, err := execute(t, "crack", archivePath, listPath, "--yes")
	require.NoError(t, err)

	require.Len(t, ts.options, 1)
	assert.False(t, ts.options[0].RecordHistory)
}

func TestCrackCmd_RatePassedToFactory(t *testing.T) {
	ts := setupTestServices(t)
	archivePath, listPath := crackFixture(t, "admin", "admin")

	_, err := execute(t, "crack", archivePath, listPath, "--yes", "--rate", "500")
	require.NoError(t, err)

	require.Len(t, ts.options, 1)
	assert.InDelta(t, 500.0, ts.options[0].Rate, 0.001)
	assert.True(t, ts.options[0].RecordHistory)
}

func TestCrackCmd_NegativeRate(t *testing.T) {
	setupTestServices(t)
	archivePath, listPath := crackFixture(t, "admin", "admin")

	_, err := execute(t, "crack", archivePath, listPath, "--yes", "--rate", "-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCrackCmd_UnknownExtensionNeedsFormat(t *testing.T) {
	setupTestServices(t)
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "backup.bin")
	writeZip(t, archivePath, "admin")
	listPath := writeFile(t, dir, "passwords.txt", "admin\n")

	_, err := execute(t, "crack", archivePath, listPath, "--yes")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), ".bin")

	out, err := execute(t, "crack", archivePath, listPath, "--yes", "--format", "zip")
	require.NoError(t, err)
	assert.Contains(t, out, "Password found: admin")
}

func TestCrackCmd_InvalidFormat(t *testing.T) {
	setupTestServices(t)
	archivePath, listPath := crackFixture(t, "admin", "admin")

	_, err := execute(t, "crack", archivePath, listPath, "--yes", "--format", "7z")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
}

func TestCrackCmd_Confirmation(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"yes", "y\n", ""},
		{"yes word", "YES\n", ""},
		{"no", "n\n", "aborted"},
		{"empty", "\n", "aborted"},
		{"eof", "", "aborted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestServices(t)
			archivePath, listPath := crackFixture(t, "admin", "admin")

			rootCmd.SetIn(strings.NewReader(tt.input))
			out, err := execute(t, "crack", archivePath, listPath)

			assert.Contains(t, out, authorisationNotice)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.NotContains(t, out, "Password found")
				return
			}
			require.NoError(t, err)
			assert.Contains(t, out, "Password found: admin")
		})
	}
}

func TestPreflight(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "secret.zip")
	writeZip(t, archivePath, "admin")
	listPath := writeFile(t, dir, "passwords.txt", "admin\n")
	noExt := writeFile(t, dir, "archive", "x")

	tests := []struct {
		name    string
		req     domain.JobRequest
		wantErr string
	}{
		{"ok", domain.JobRequest{ArchivePath: archivePath, PasswordListPath: listPath}, ""},
		{"missing archive", domain.JobRequest{ArchivePath: filepath.Join(dir, "nope.zip"), PasswordListPath: listPath},
			"archive not found"},
		{"missing list", domain.JobRequest{ArchivePath: archivePath, PasswordListPath: filepath.Join(dir, "nope.txt")},
			"password list not found"},
		{"archive is directory", domain.JobRequest{ArchivePath: dir, PasswordListPath: listPath},
			"archive is a directory"},
		{"list is directory", domain.JobRequest{ArchivePath: archivePath, PasswordListPath: dir},
			"password list is a directory"},
		{"no extension", domain.JobRequest{ArchivePath: noExt, PasswordListPath: listPath}, "(none)"},
		{"format override", domain.JobRequest{ArchivePath: noExt, PasswordListPath: listPath, Format: domain.FormatRAR},
			""},
		{"empty paths", domain.JobRequest{}, "archive path is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := preflight(tt.req)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestPreflight_UnreadableList(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "secret.zip")
	writeZip(t, archivePath, "admin")
	listPath := writeFile(t, dir, "passwords.txt", "admin\n")
	require.NoError(t, os.Chmod(listPath, 0o000))

	err := preflight(domain.JobRequest{ArchivePath: archivePath, PasswordListPath: listPath})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot read password list")
}

func TestProgressLine(t *testing.T) {
	p := domain.ProgressEvent{Index: 5, Total: 20, Candidate: "hunter2"}

	assert.Equal(t, "[ 25%] 5/20 *******", progressLine(p, false))
	assert.Equal(t, "[ 25%] 5/20 hunter2", progressLine(p, true))
}

func TestPrintResult(t *testing.T) {
	stopped := domain.Stopped()
	stopped.Attempts = 3
	stopped.Total = 10

	tests := []struct {
		name   string
		result domain.RunResult
		want   string
	}{
		{"found", domain.Found("admin"), "Password found: admin"},
		{"exhausted", domain.RunResult{Outcome: domain.OutcomeExhausted, Total: 7}, "Password not found: tried 7 candidates"},
		{"stopped", stopped, "Stopped after 3 of 10 attempts"},
		{"failed", domain.Failed("could not read password list", nil), "Failed: could not read password list"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := new(strings.Builder)
			crackCmd.SetOut(buf)
			defer crackCmd.SetOut(nil)

			printResult(crackCmd, tt.result)

			assert.Contains(t, buf.String(), tt.want)
		})
	}
}
