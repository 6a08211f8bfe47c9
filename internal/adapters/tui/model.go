// Package tui drives a quiz session from an interactive terminal. Ticks come
// from tea.Tick and are tagged with a generation so that ticks scheduled for
// an earlier countdown are dropped.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bnema/picquiz/internal/adapters/render/summary"
	"github.com/bnema/picquiz/internal/application"
	"github.com/bnema/picquiz/internal/domain"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyQuit  = "ctrl+c"

	defaultTickInterval = time.Second
	warnBelowSeconds    = 2
)

type Options struct {
	TickInterval time.Duration
	Title        string
}

type tickMsg struct {
	generation int
}

type Model struct {
	engine     *application.Engine
	input      textinput.Model
	styles     styles
	opts       Options
	generation int
	summary    *domain.Summary
	err        error
	width      int
}

func New(engine *application.Engine, opts Options) Model {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}
	if opts.Title == "" {
		opts.Title = "Guess the picture!"
	}

	ti := textinput.New()
	ti.Placeholder = "type your answer"
	ti.CharLimit = 200
	ti.Width = 40

	return Model{
		engine: engine,
		input:  ti,
		styles: newStyles(),
		opts:   opts,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		return m.handleTick(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case keyQuit:
			return m, tea.Quit
		case keyEsc:
			return m.handleManualEnd()
		case keyEnter:
			return m.handleEnter()
		}
	}

	if m.engine.Phase() != domain.PhaseRunning {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	if msg.generation != m.generation {
		return m, nil
	}

	outcome, err := m.engine.Tick()
	if err != nil {
		return m, nil
	}
	if outcome.Ended {
		return m.finish(outcome.Summary), nil
	}

	return m, m.scheduleTick()
}

func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.summary != nil {
		m.summary = nil
		return m, nil
	}

	if m.engine.Phase() != domain.PhaseRunning {
		return m.start()
	}

	outcome, err := m.engine.Submit(m.input.Value())
	if err != nil {
		return m, nil
	}
	if outcome.Ended {
		return m.finish(outcome.Summary), nil
	}

	// A correct answer restarts the countdown, so the pending tick belongs to
	// the previous round.
	m.input.Reset()
	m.generation++
	return m, m.scheduleTick()
}

func (m Model) handleManualEnd() (tea.Model, tea.Cmd) {
	result, err := m.engine.End()
	if err != nil {
		return m, nil
	}

	return m.finish(result), nil
}

func (m Model) start() (tea.Model, tea.Cmd) {
	if _, err := m.engine.Start(); err != nil {
		m.err = err
		return m, nil
	}

	m.err = nil
	m.generation++
	m.input.Reset()
	focus := m.input.Focus()

	return m, tea.Batch(focus, m.scheduleTick())
}

func (m Model) finish(result domain.Summary) Model {
	m.summary = &result
	m.generation++
	m.input.Reset()
	m.input.Blur()
	return m
}

func (m Model) scheduleTick() tea.Cmd {
	generation := m.generation
	return tea.Tick(m.opts.TickInterval, func(time.Time) tea.Msg {
		return tickMsg{generation: generation}
	})
}

func (m Model) View() string {
	state := m.engine.State()
	s := m.styles

	sections := []string{
		s.caption.Render(fmt.Sprintf("%d pictures", m.engine.PoolSize())),
		s.title.Render(m.opts.Title),
		"",
	}

	switch {
	case m.summary != nil:
		sections = append(sections,
			summary.View(*m.summary, summary.RenderOptions{}),
			"",
			s.hint.Render("enter: continue   ctrl+c: quit"),
		)
	case state.Phase == domain.PhaseRunning:
		sections = append(sections,
			s.image.Render(imageOf(state.CurrentItem)),
			"",
			m.timerLine(state),
			m.input.View(),
			"",
			s.hint.Render("enter: answer   esc: end game   ctrl+c: quit"),
		)
	default:
		sections = append(sections,
			s.image.Render("press enter to start"),
			"",
			s.hint.Render("enter: start   ctrl+c: quit"),
		)
	}

	if m.err != nil {
		sections = append(sections, s.err.Render(m.err.Error()))
	}

	sections = append(sections, "", m.statsBlock(state))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) timerLine(state domain.SessionState) string {
	line := fmt.Sprintf("Time left: %ds", state.RemainingSeconds)
	if state.RemainingSeconds <= warnBelowSeconds {
		return m.styles.urgent.Render(line)
	}
	return m.styles.timer.Render(line)
}

func (m Model) statsBlock(state domain.SessionState) string {
	lines := []string{
		fmt.Sprintf("Elapsed: %ds", state.ElapsedSeconds),
		fmt.Sprintf("Correct: %d", state.RoundsCorrect),
		fmt.Sprintf("Previous game: %d", state.PreviousRoundsCorrect),
		fmt.Sprintf("Best: %d", state.MaxRoundsCorrect),
	}
	return m.styles.stats.Render(strings.Join(lines, "\n"))
}

func imageOf(item *domain.Item) string {
	if item == nil {
		return "?"
	}
	if strings.TrimSpace(item.Image) == "" {
		return string(item.ID)
	}
	return item.Image
}

// Run blocks until the player quits or ctx is cancelled.
func Run(ctx context.Context, engine *application.Engine, opts Options, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(
		New(engine, opts),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
