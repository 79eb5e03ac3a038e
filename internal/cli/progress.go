package cli

import (
	"fmt"

	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdelaney/contentpipe-go/internal/pipeline"
)

// Theme holds the color scheme for the progress display.
type Theme struct {
	Status  lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Status:  lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

func (t Theme) statusStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Status)
}

func (t Theme) completedStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Success).Bold(true)
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Error).Bold(true)
}

func (t Theme) hintStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Hint).Italic(true)
}

// eventMsg carries one pipeline progress event.
type eventMsg pipeline.Event

// runDoneMsg signals that the pipeline goroutine returned.
type runDoneMsg struct{ err error }

// progressModel renders live pipeline progress from the event stream.
type progressModel struct {
	events      <-chan pipeline.Event
	done        <-chan error
	progress    progress.Model
	theme       Theme
	totalStages int
	doneStages  int
	current     string
	finished    bool
	quitting    bool
	drained     bool
	err         error
}

// newProgressModel creates a model over a run's event stream. totalStages is
// the number of stage completions expected for the run.
func newProgressModel(events <-chan pipeline.Event, done <-chan error, totalStages int) progressModel {
	prog := progress.New(
		progress.WithDefaultBlend(),
		progress.WithWidth(40),
	)

	return progressModel{
		events:      events,
		done:        done,
		progress:    prog,
		theme:       defaultTheme,
		totalStages: totalStages,
	}
}

// Init returns the initial command (wait for the first event).
func (m progressModel) Init() tea.Cmd {
	return tea.Batch(
		m.waitForEvent(),
		m.progress.Init(),
	)
}

// waitForEvent blocks on the event stream in a command goroutine.
func (m progressModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case event, ok := <-m.events:
			if !ok {
				return runDoneMsg{err: <-m.done}
			}
			return eventMsg(event)
		case err := <-m.done:
			return runDoneMsg{err: err}
		}
	}
}

// Update handles messages and returns the updated model.
func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		}

	case eventMsg:
		event := pipeline.Event(msg)
		switch event.Type {
		case "stage_start":
			m.current = stageLabel(event)
		case "stage_done":
			m.doneStages++
		case "run_done":
			m.finished = true
			return m, tea.Quit
		}
		return m, m.waitForEvent()

	case runDoneMsg:
		m.finished = true
		m.drained = true
		m.err = msg.err
		return m, tea.Quit

	case progress.FrameMsg:
		var cmd tea.Cmd
		m.progress, cmd = m.progress.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the progress display.
func (m progressModel) View() tea.View {
	return tea.NewView(m.renderContent())
}

func (m progressModel) renderContent() string {
	if m.finished || m.quitting {
		return m.finalView()
	}

	var pct float64
	if m.totalStages > 0 {
		pct = float64(m.doneStages) / float64(m.totalStages)
	}

	status := m.theme.statusStyle().Render(fmt.Sprintf("[%s]", m.current))
	progressBar := m.progress.ViewAs(pct)
	counts := fmt.Sprintf("%d/%d stages", m.doneStages, m.totalStages)
	hint := m.theme.hintStyle().Render("Press Ctrl+C to abort")

	return fmt.Sprintf("%s %s %s\n%s\n", status, progressBar, counts, hint)
}

func (m progressModel) finalView() string {
	if m.quitting {
		return m.theme.hintStyle().Render("\nAborted.\n")
	}
	if m.err != nil {
		return m.theme.errorStyle().Render(fmt.Sprintf("\n✗ Pipeline failed: %s\n", m.err))
	}
	return m.theme.completedStyle().Render("✓ Pipeline complete\n")
}

// stageLabel names the in-flight stage for the status line.
func stageLabel(event pipeline.Event) string {
	if event.PieceID != "" {
		return fmt.Sprintf("%s %s", event.Stage, event.PieceID)
	}
	return string(event.Stage)
}

// runWithProgress drives the interactive progress UI while the pipeline runs
// in the background. cancel aborts the run when the user quits. Returns the
// pipeline's error.
func runWithProgress(events <-chan pipeline.Event, done <-chan error, totalStages int, cancel func()) error {
	model := newProgressModel(events, done, totalStages)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("progress UI error: %w", err)
	}

	if m, ok := finalModel.(progressModel); ok {
		if m.drained {
			return m.err
		}
		if m.quitting {
			cancel()
		}
	}

	// Drain remaining events so the pipeline goroutine can finish
	go func() {
		for range events {
		}
	}()
	return <-done
}
