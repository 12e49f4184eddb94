package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/zirar/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/zirar/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/zirar/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/zirar/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/zirar/internal/core/domain"
	"github.com/custodia-labs/zirar/internal/core/ports/driving"
)

// Options configures the progress view.
type Options struct {
	// Title is shown in the header, usually the archive name.
	Title string

	// Reveal starts with candidates shown in clear text.
	Reveal bool

	// Styles overrides the default styles.
	Styles *styles.Styles

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// App is the progress view following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	job    driving.Job
	title  string
	styles *styles.Styles
	keymap *keymap.KeyMap
	bar    *status.Bar
	help   help.Model
	meter  progress.Model
	clock  func() time.Time

	started  time.Time
	now      time.Time
	current  domain.ProgressEvent
	result   *domain.RunResult
	revealed bool
	// quitting is set once the user asked to leave; the app exits as soon
	// as the job reports its result.
	quitting bool
	closed   bool
	width    int
}

// NewApp creates a progress view for job.
func NewApp(job driving.Job, opts Options) *App {
	s := opts.Styles
	if s == nil {
		s = styles.DefaultStyles()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	km := keymap.DefaultKeyMap()

	bar := status.NewBar(s, km)
	bar.SetState(domain.JobRunning)

	now := clock()
	return &App{
		job:      job,
		title:    opts.Title,
		styles:   s,
		keymap:   km,
		bar:      bar,
		help:     help.New(),
		meter:    progress.New(progress.WithGradient(string(s.Theme().Primary), string(s.Theme().Secondary))),
		clock:    clock,
		started:  now,
		now:      now,
		revealed: opts.Reveal,
		width:    80,
	}
}

// Init starts reading job events and the elapsed-time ticker.
func (a *App) Init() tea.Cmd {
	return tea.Batch(waitForEvent(a.job.Events()), tick())
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.bar.SetWidth(msg.Width)
		a.meter.Width = max(10, msg.Width-4)
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case messages.JobEvent:
		return a.handleEvent(msg.Event)

	case messages.StreamClosed:
		a.closed = true
		if a.quitting {
			return a, tea.Quit
		}
		return a, nil

	case messages.Tick:
		if a.result != nil {
			return a, nil
		}
		a.now = msg.Time
		return a, tick()
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keymap.Quit):
		a.quitting = true
		if a.result != nil {
			return a, tea.Quit
		}
		a.job.Cancel()
		a.bar.SetMessage("stopping")
		return a, nil

	case key.Matches(msg, a.keymap.Cancel):
		if a.result == nil {
			a.job.Cancel()
			a.bar.SetMessage("stopping")
		}
		return a, nil

	case key.Matches(msg, a.keymap.Reveal):
		a.revealed = !a.revealed
		return a, nil

	case key.Matches(msg, a.keymap.Help):
		a.help.ShowAll = !a.help.ShowAll
		return a, nil
	}

	return a, nil
}

func (a *App) handleEvent(ev domain.JobEvent) (tea.Model, tea.Cmd) {
	if ev.Progress != nil {
		a.current = *ev.Progress
		return a, waitForEvent(a.job.Events())
	}

	if ev.Result != nil {
		result := *ev.Result
		a.result = &result
		a.now = a.clock()
		if state, err := domain.StateForOutcome(result.Outcome); err == nil {
			a.bar.SetState(state)
		}
		a.bar.SetMessage("")
		if a.quitting {
			return a, tea.Quit
		}
	}

	// Keep reading until the stream is closed.
	return a, waitForEvent(a.job.Events())
}

// View renders the job panel and status bar.
func (a *App) View() string {
	var b strings.Builder

	title := "zirar"
	if a.title != "" {
		title += " - " + a.title
	}
	b.WriteString(a.styles.Title.Render(title))
	b.WriteString("\n\n")

	panel := strings.Join([]string{
		a.meter.ViewAs(a.fraction()),
		a.row("Attempt", a.attemptText()),
		a.row("Trying", a.candidateText()),
		a.row("Elapsed", a.elapsed().Round(time.Second).String()),
	}, "\n")
	if a.result != nil {
		panel += "\n\n" + a.resultText()
	}
	b.WriteString(a.styles.Panel.Render(panel))
	b.WriteString("\n")

	if a.help.ShowAll {
		b.WriteString(a.help.View(a.keymap))
		b.WriteString("\n")
	}
	b.WriteString(a.bar.View())

	return b.String()
}

func (a *App) row(label, value string) string {
	return a.styles.Label.Render(label) + a.styles.Normal.Render(value)
}

func (a *App) fraction() float64 {
	if a.result != nil && a.result.Outcome == domain.OutcomeExhausted {
		return 1
	}
	return a.current.Fraction()
}

func (a *App) attemptText() string {
	if a.current.Total == 0 {
		return "loading password list"
	}
	return fmt.Sprintf("%d / %d", a.current.Index, a.current.Total)
}

func (a *App) candidateText() string {
	if a.current.Index == 0 {
		return "-"
	}
	if a.revealed {
		return a.styles.Candidate.Render(a.current.Candidate)
	}
	return a.styles.Candidate.Render(domain.MaskCandidate(a.current.Candidate))
}

func (a *App) resultText() string {
	r := a.result
	style := a.styles.Outcome(r.Outcome)

	switch r.Outcome {
	case domain.OutcomeFound:
		pw := domain.MaskCandidate(r.Password)
		if a.revealed {
			pw = r.Password
		}
		return style.Render("Password found: " + pw)
	case domain.OutcomeExhausted:
		return style.Render(fmt.Sprintf("Password not found in %d candidates", r.Total))
	case domain.OutcomeStopped:
		return style.Render(fmt.Sprintf("Stopped after %d of %d attempts", r.Attempts, r.Total))
	case domain.OutcomeFailed:
		return style.Render("Failed: " + r.Message)
	default:
		return style.Render(r.Outcome.Description())
	}
}

func (a *App) elapsed() time.Duration {
	if a.result != nil && !a.result.StartedAt.IsZero() {
		return a.result.Duration()
	}
	return a.now.Sub(a.started)
}

// Result returns the job result once it has been received.
func (a *App) Result() (domain.RunResult, bool) {
	if a.result == nil {
		return domain.RunResult{}, false
	}
	return *a.result, true
}

// Run shows the progress view until the user quits after the job ends.
// The job's event stream is always drained, so the returned result is the
// job's terminal result even if the program exits early.
func Run(job driving.Job, opts Options, in io.Reader, out io.Writer) (domain.RunResult, error) {
	app := NewApp(job, opts)

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if in != nil {
		programOpts = append(programOpts, tea.WithInput(in))
	}
	if out != nil {
		programOpts = append(programOpts, tea.WithOutput(out))
	}

	final, err := tea.NewProgram(app, programOpts...).Run()
	if m, ok := final.(*App); ok {
		app = m
	}
	if err != nil || !app.closed {
		job.Cancel()
		for range job.Events() {
		}
	}
	<-job.Done()

	if result, ok := app.Result(); ok {
		return result, err
	}
	return job.Result(), err
}

func waitForEvent(events <-chan domain.JobEvent) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return messages.StreamClosed{}
		}
		return messages.JobEvent{Event: ev}
	}
}

func tick() tea.Cmd {
	return tea.Tick(messages.TickInterval, func(t time.Time) tea.Msg {
		return messages.Tick{Time: t}
	})
}
