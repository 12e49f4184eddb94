package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure defaults for crack runs.

Use subcommands to change a single setting or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Long: `Change one setting.

Available keys:
  variants.enhance        - Enhance password lists by default (true/false)
  variants.cap            - Maximum variants per password (at least 1)
  throttle.rate           - Maximum attempts per second, 0 for unlimited
  display.show_candidates - Show passwords in clear text (true/false)
  history.enabled         - Record finished runs (true/false)`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Variants]")
	cmd.Printf("  Enhance: %t\n", settings.Variants.Enhance)
	cmd.Printf("  Cap: %d\n", settings.Variants.Cap)
	cmd.Println()

	cmd.Println("[Throttle]")
	if settings.Throttle.IsEnabled() {
		cmd.Printf("  Rate: %s attempts/s\n", formatRate(settings.Throttle.Rate))
	} else {
		cmd.Println("  Rate: unlimited")
	}
	cmd.Println()

	cmd.Println("[Display]")
	cmd.Printf("  Show candidates: %t\n", settings.Display.ShowCandidates)
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Enabled: %t\n", settings.History.Enabled)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to update setting: %w", err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Zirar Settings Wizard")
	cmd.Println("=====================")
	cmd.Println("Press Enter to keep the current value.")
	cmd.Println()

	settings.Variants.Enhance = promptBool(cmd, reader, "Enhance password lists by default", settings.Variants.Enhance)
	settings.Variants.Cap = promptInt(cmd, reader, "Maximum variants per password", settings.Variants.Cap, 1)
	settings.Throttle.Rate = promptRate(cmd, reader, settings.Throttle.Rate)
	settings.Display.ShowCandidates = promptBool(cmd, reader, "Show passwords in clear text",
		settings.Display.ShowCandidates)
	settings.History.Enabled = promptBool(cmd, reader, "Record finished runs", settings.History.Enabled)

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println()
	cmd.Println("Settings saved.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func promptBool(cmd *cobra.Command, reader *bufio.Reader, label string, current bool) bool {
	hint := "y/N"
	if current {
		hint = "Y/n"
	}
	cmd.Printf("%s? [%s]: ", label, hint)
	return parseYesNo(readLine(reader), current)
}

func promptInt(cmd *cobra.Command, reader *bufio.Reader, label string, current, minVal int) int {
	cmd.Printf("%s [%d]: ", label, current)
	return parseChoice(readLine(reader), minVal, current)
}

func promptRate(cmd *cobra.Command, reader *bufio.Reader, current float64) float64 {
	cmd.Printf("Maximum attempts per second, 0 for unlimited [%s]: ", formatRate(current))
	input := readLine(reader)
	if input == "" {
		return current
	}
	val, err := strconv.ParseFloat(input, 64)
	if err != nil || val < 0 {
		return current
	}
	return val
}

func parseYesNo(input string, defaultVal bool) bool {
	switch strings.ToLower(input) {
	case "y", "yes", "true":
		return true
	case "n", "no", "false":
		return false
	default:
		return defaultVal
	}
}

func parseChoice(input string, minVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < minVal {
		return defaultVal
	}
	return val
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', -1, 64)
}
