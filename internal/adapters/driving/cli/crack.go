package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/zirar/internal/adapters/driving/tui"
	"github.com/custodia-labs/zirar/internal/core/domain"
	"github.com/custodia-labs/zirar/internal/core/ports/driving"
)

// progressInterval limits how often the progress line is redrawn.
const progressInterval = 100 * time.Millisecond

const authorisationNotice = "Only open archives you own or are authorised to access."

var (
	crackEnhance   bool
	crackCap       int
	crackFormat    string
	crackRate      float64
	crackShow      bool
	crackTUI       bool
	crackNoHistory bool
	crackYes       bool
)

var crackCmd = &cobra.Command{
	Use:   "crack <archive> <password-list>",
	Short: "Try a password list against an encrypted archive",
	Long: `Try every password in a list against a ZIP or RAR archive until one
opens it, the list runs out, or the run is interrupted.

The archive family is taken from the file extension. Use --format for
archives without a .zip or .rar extension.

With --enhance each password is also tried with common character
substitutions, up to --cap variants per password.

Passwords are masked in progress output unless --show is given.
The exit status is 0 when a password is found and 1 otherwise.`,
	Args: cobra.ExactArgs(2),
	RunE: runCrack,
}

func init() {
	crackCmd.Flags().BoolVarP(&crackEnhance, "enhance", "e", false, "Also try common character substitutions")
	crackCmd.Flags().IntVar(&crackCap, "cap", domain.DefaultVariantCap, "Maximum variants per password")
	crackCmd.Flags().StringVarP(&crackFormat, "format", "f", "", "Archive format (zip or rar), overriding the extension")
	crackCmd.Flags().Float64Var(&crackRate, "rate", 0, "Maximum attempts per second (0 for unlimited)")
	crackCmd.Flags().BoolVar(&crackShow, "show", false, "Show passwords in clear text")
	crackCmd.Flags().BoolVar(&crackTUI, "tui", false, "Show progress in the interactive terminal UI")
	crackCmd.Flags().BoolVar(&crackNoHistory, "no-history", false, "Do not record this run in history")
	crackCmd.Flags().BoolVarP(&crackYes, "yes", "y", false, "Skip the authorised-use confirmation")
	rootCmd.AddCommand(crackCmd)
}

func runCrack(cmd *cobra.Command, args []string) error {
	if crackFactory == nil {
		return errors.New("crack service not configured")
	}

	settings := currentSettings()
	applySettingDefaults(cmd, settings)

	req := domain.JobRequest{
		ArchivePath:      args[0],
		PasswordListPath: args[1],
		Enhance:          crackEnhance,
		VariantCap:       crackCap,
	}
	if crackFormat != "" {
		format, err := domain.ParseArchiveFormat(crackFormat)
		if err != nil {
			return err
		}
		req.Format = format
	}
	if crackRate < 0 {
		return fmt.Errorf("%w: --rate must not be negative", domain.ErrInvalidInput)
	}

	if err := preflight(req); err != nil {
		return err
	}

	if !crackYes {
		if err := confirm(cmd); err != nil {
			return err
		}
	}

	service := crackFactory(CrackOptions{
		Rate:          crackRate,
		RecordHistory: settings.History.Enabled && !crackNoHistory,
	})
	if service == nil {
		return errors.New("crack service not configured")
	}

	job, err := service.Start(cmd.Context(), req)
	if err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	stop := cancelOnSignal(job.Cancel, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var result domain.RunResult
	if crackTUI {
		result, err = tui.Run(job, tui.Options{
			Title:  filepath.Base(req.ArchivePath),
			Reveal: crackShow,
		}, nil, nil)
		if err != nil {
			return fmt.Errorf("TUI error: %w", err)
		}
	} else {
		result = followJob(cmd, job, isTerminal(cmd.OutOrStdout()))
	}

	printResult(cmd, result)

	if result.Outcome != domain.OutcomeFound {
		return &ExitError{Code: 1}
	}
	return nil
}

// cancelOnSignal calls cancel when one of sigs arrives, letting the trial
// in flight finish. The returned stop function stops listening.
func cancelOnSignal(cancel func(), sigs ...os.Signal) (stop func()) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, sigs...)

	done := make(chan struct{})
	go func() {
		select {
		case <-ch:
			cancel()
		case <-done:
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}

// currentSettings returns saved settings, or defaults when none are available.
func currentSettings() domain.AppSettings {
	if settingsService == nil {
		return domain.DefaultAppSettings()
	}
	settings, err := settingsService.Get()
	if err != nil || settings == nil {
		return domain.DefaultAppSettings()
	}
	return *settings
}

// applySettingDefaults fills flags the user did not pass from settings.
func applySettingDefaults(cmd *cobra.Command, settings domain.AppSettings) {
	flags := cmd.Flags()
	if !flags.Changed("enhance") {
		crackEnhance = settings.Variants.Enhance
	}
	if !flags.Changed("cap") {
		crackCap = settings.Variants.Cap
	}
	if !flags.Changed("rate") {
		crackRate = settings.Throttle.Rate
	}
	if !flags.Changed("show") {
		crackShow = settings.Display.ShowCandidates
	}
}

// preflight rejects requests that cannot succeed before a job is started.
func preflight(req domain.JobRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if err := checkReadable(req.ArchivePath, "archive"); err != nil {
		return err
	}
	if err := checkReadable(req.PasswordListPath, "password list"); err != nil {
		return err
	}

	ref := req.Archive()
	if !ref.Recognised() {
		ext := ref.Ext
		if ext == "" {
			ext = "(none)"
		}
		return fmt.Errorf("%w: extension %s, use --format zip or --format rar", domain.ErrUnsupportedFormat, ext)
	}
	return nil
}

func checkReadable(path, what string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s not found: %s", what, path)
		}
		return fmt.Errorf("cannot access %s: %w", what, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory: %s", what, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", what, err)
	}
	return f.Close()
}

// confirm asks the user to acknowledge authorised use.
func confirm(cmd *cobra.Command) error {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return errors.New("confirmation required: pass --yes when input is not a terminal")
	}

	cmd.Println(authorisationNotice)
	cmd.Print("Continue? [y/N]: ")

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	default:
		return errors.New("aborted")
	}
}

// followJob drains the job's events, redrawing a progress line when out is
// a terminal.
func followJob(cmd *cobra.Command, job driving.Job, live bool) domain.RunResult {
	out := cmd.OutOrStdout()

	var (
		result    domain.RunResult
		lastDrawn time.Time
		drawn     bool
	)
	for ev := range job.Events() {
		if ev.Result != nil {
			result = *ev.Result
			continue
		}
		if !live || ev.Progress == nil {
			continue
		}

		p := *ev.Progress
		if p.Index != p.Total && time.Since(lastDrawn) < progressInterval {
			continue
		}
		lastDrawn = time.Now()
		drawn = true
		_, _ = fmt.Fprintf(out, "\r\033[K%s", progressLine(p, crackShow))
	}
	if drawn {
		_, _ = fmt.Fprintln(out)
	}
	return result
}

func progressLine(p domain.ProgressEvent, show bool) string {
	candidate := p.Candidate
	if !show {
		candidate = domain.MaskCandidate(candidate)
	}
	return fmt.Sprintf("[%3.0f%%] %d/%d %s", p.Fraction()*100, p.Index, p.Total, candidate)
}

func printResult(cmd *cobra.Command, result domain.RunResult) {
	switch result.Outcome {
	case domain.OutcomeFound:
		cmd.Printf("Password found: %s\n", result.Password)
		cmd.Printf("Attempts: %d of %d\n", result.Attempts, result.Total)
	case domain.OutcomeExhausted:
		cmd.Printf("Password not found: tried %d candidates\n", result.Total)
	case domain.OutcomeStopped:
		cmd.Printf("Stopped after %d of %d attempts\n", result.Attempts, result.Total)
	case domain.OutcomeFailed:
		cmd.Printf("Failed: %s\n", result.Message)
	default:
		cmd.Printf("Finished: %s\n", result.Outcome.Description())
	}
	if d := result.Duration(); d > 0 {
		cmd.Printf("Elapsed: %s\n", d.Round(time.Millisecond))
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
