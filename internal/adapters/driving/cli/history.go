package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/zirar/internal/core/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past runs",
	Long: `List finished crack runs, most recent first.

Found passwords are never recorded.`,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past runs",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one run",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded runs",
	RunE:  runHistoryClear,
}

func init() {
	historyCmd.PersistentFlags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of runs to list (0 for all)")
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "Output as JSON")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

// historyEntry is the JSON form of a run record.
type historyEntry struct {
	ID           string    `json:"id"`
	Archive      string    `json:"archive"`
	PasswordList string    `json:"password_list"`
	Format       string    `json:"format"`
	Enhanced     bool      `json:"enhanced"`
	Outcome      string    `json:"outcome"`
	Message      string    `json:"message,omitempty"`
	Attempts     int       `json:"attempts"`
	Total        int       `json:"total"`
	StartedAt    time.Time `json:"started_at"`
	EndedAt      time.Time `json:"ended_at"`
}

func toHistoryEntry(r domain.RunRecord) historyEntry {
	return historyEntry{
		ID:           r.ID,
		Archive:      r.ArchivePath,
		PasswordList: r.PasswordListPath,
		Format:       r.Format.String(),
		Enhanced:     r.Enhanced,
		Outcome:      r.Outcome.String(),
		Message:      r.Message,
		Attempts:     r.Attempts,
		Total:        r.Total,
		StartedAt:    r.StartedAt,
		EndedAt:      r.EndedAt,
	}
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}
	if historyLimit < 0 {
		return fmt.Errorf("%w: --limit must not be negative", domain.ErrInvalidInput)
	}

	records, err := historyService.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if historyJSON {
		entries := make([]historyEntry, 0, len(records))
		for _, r := range records {
			entries = append(entries, toHistoryEntry(r))
		}
		return writeJSON(cmd, entries)
	}

	if len(records) == 0 {
		cmd.Println("No runs recorded.")
		return nil
	}

	for _, r := range records {
		cmd.Printf("%s  %-9s  %d/%d  %s\n",
			r.EndedAt.Local().Format("2006-01-02 15:04:05"), r.Outcome, r.Attempts, r.Total, r.ArchivePath)
		cmd.Printf("    ID: %s\n", r.ID)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	record, err := historyService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("run not found: %s", args[0])
		}
		return fmt.Errorf("failed to get run: %w", err)
	}

	if historyJSON {
		return writeJSON(cmd, toHistoryEntry(*record))
	}

	cmd.Printf("ID:            %s\n", record.ID)
	cmd.Printf("Archive:       %s\n", record.ArchivePath)
	cmd.Printf("Password list: %s\n", record.PasswordListPath)
	cmd.Printf("Format:        %s\n", record.Format.Description())
	cmd.Printf("Enhanced:      %t\n", record.Enhanced)
	cmd.Printf("Outcome:       %s\n", record.Outcome.Description())
	if record.Message != "" {
		cmd.Printf("Message:       %s\n", record.Message)
	}
	cmd.Printf("Attempts:      %d of %d\n", record.Attempts, record.Total)
	cmd.Printf("Started:       %s\n", record.StartedAt.Local().Format(time.RFC3339))
	cmd.Printf("Duration:      %s\n", record.Duration().Round(time.Millisecond))
	return nil
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	if historyService == nil {
		return errors.New("history service not configured")
	}

	if err := historyService.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	cmd.Println("History cleared.")
	return nil
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
