package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/zirar/internal/core/ports/driving"
	"github.com/custodia-labs/zirar/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flags.
var (
	verbose   bool
	configDir string
)

// Services used by commands. Set by the composition root via SetServices
// or the bootstrap function.
var (
	crackFactory    CrackFactory
	wordlistService driving.WordlistService
	historyService  driving.HistoryService
	settingsService driving.SettingsService
)

// annotationNoServices marks commands that run without service bootstrap.
const annotationNoServices = "zirar/no-services"

// CrackOptions are per-run choices that shape the crack service.
type CrackOptions struct {
	// Rate limits attempts per second. Zero means unlimited.
	Rate float64

	// RecordHistory saves the finished run.
	RecordHistory bool
}

// CrackFactory builds a crack service for one run.
type CrackFactory func(opts CrackOptions) driving.CrackService

// Services holds the driving ports the CLI depends on.
type Services struct {
	Crack    CrackFactory
	Wordlist driving.WordlistService
	History  driving.HistoryService
	Settings driving.SettingsService
}

// Bootstrap builds services for a config directory. The returned function
// releases them and may be nil.
type Bootstrap func(configDir string) (*Services, func(), error)

var (
	bootstrap Bootstrap
	release   func()
)

var rootCmd = &cobra.Command{
	Use:   "zirar",
	Short: "Recover archive passwords from a password list",
	Long: `Zirar tries every password in a list against an encrypted ZIP or RAR
archive until one opens it.

Lists can be enhanced with common character substitutions (a -> @, s -> $)
so that "password" also tries "p@ssword", "pa$$word" and similar variants.

Only use zirar on archives you own or are authorised to open.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "",
		"Configuration directory (default $ZIRAR_HOME or ~/.zirar)")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetServices injects the services used by commands.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	crackFactory = s.Crack
	wordlistService = s.Wordlist
	historyService = s.History
	settingsService = s.Settings
}

// SetBootstrap sets the function that builds services once global flags
// have been parsed.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// Execute runs the root command.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if bootstrap == nil || skipsServices(cmd) {
		return nil
	}

	services, closer, err := bootstrap(configDir)
	if err != nil {
		return fmt.Errorf("failed to initialise: %w", err)
	}
	SetServices(services)
	release = closer
	return nil
}

func skipsServices(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if _, ok := c.Annotations[annotationNoServices]; ok {
			return true
		}
	}
	return false
}

func closeServices() {
	if release != nil {
		release()
		release = nil
	}
}

// ExitError carries a process exit status without an error message.
// Commands return it once they have already reported the outcome.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// IsReported reports whether err has already been shown to the user.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}
