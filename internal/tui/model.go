// Package tui drives the lead form in a terminal. It shares the wizard
// controller with the bot, so the flow can be tried without telegram.
package tui

import (
	"github.com/KotFed0t/loi_bazaar_bot/internal/catalog"
	"github.com/KotFed0t/loi_bazaar_bot/internal/submission"
	"github.com/KotFed0t/loi_bazaar_bot/internal/wizard"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
)

const maxBarWidth = 48

// screenMsg carries a screen produced by a delayed advance.
type screenMsg wizard.Screen

type Model struct {
	ctrl       *wizard.Controller
	formatter  *submission.Formatter
	screens    chan wizard.Screen
	screen     wizard.Screen
	cursor     int
	bar        progress.Model
	submission *submission.Submission
	err        error
}

func New(cat *catalog.Catalog, pacer *wizard.Pacer, formatter *submission.Formatter) *Model {
	screens := make(chan wizard.Screen, 8)

	m := &Model{
		formatter: formatter,
		screens:   screens,
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(maxBarWidth)),
	}
	m.ctrl = wizard.NewController(cat, pacer, func(s wizard.Screen) { screens <- s })
	m.screen = m.ctrl.Render()

	return m
}

// Submission is set once the form has been submitted.
func (m *Model) Submission() *submission.Submission {
	return m.submission
}

func (m *Model) Init() tea.Cmd {
	return m.waitForScreen()
}

func (m *Model) waitForScreen() tea.Cmd {
	return func() tea.Msg {
		return screenMsg(<-m.screens)
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.bar.Width = min(msg.Width-4, maxBarWidth)
		return m, nil

	case screenMsg:
		m.setScreen(wizard.Screen(msg))
		return m, m.waitForScreen()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}

	case "down", "j":
		if m.cursor < len(m.screen.Options)-1 {
			m.cursor++
		}

	case "enter":
		if m.screen.Step == wizard.StepSummary {
			m.submit()
			break
		}
		if len(m.screen.Options) == 0 {
			break
		}
		if err := m.ctrl.SelectCurrent(m.screen.Options[m.cursor].ID); err != nil {
			m.err = err
			break
		}
		m.screen = m.ctrl.Render()

	case "esc", "backspace":
		m.setScreen(m.ctrl.Retreat())

	case "s":
		m.submit()

	case "r":
		if m.screen.Submitted {
			m.submission = nil
			m.setScreen(m.ctrl.Reset())
		}
	}

	return m, nil
}

func (m *Model) submit() {
	screen, ok := m.ctrl.MarkSubmitted()
	if !ok {
		return
	}

	sub := m.formatter.Format(m.ctrl.Record())
	m.submission = &sub
	m.setScreen(screen)
}

// setScreen shows screen with the cursor on its selected option.
func (m *Model) setScreen(screen wizard.Screen) {
	m.screen = screen
	m.cursor = 0
	for i, opt := range screen.Options {
		if opt.Selected {
			m.cursor = i
			break
		}
	}
}
