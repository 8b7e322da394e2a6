package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/KotFed0t/loi_bazaar_bot/internal/catalog"
	"github.com/KotFed0t/loi_bazaar_bot/internal/submission"
	"github.com/KotFed0t/loi_bazaar_bot/internal/wizard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delay = 200 * time.Millisecond

func newTestModel(t *testing.T) (*Model, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	formatter := submission.NewFormatter("919855071280", []string{"Hello LOI Bazaar,"})
	return New(catalog.Default(), wizard.NewPacer(clock, delay), formatter), clock
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// choose moves the cursor to label, presses enter and feeds the delayed
// screen back into the model.
func choose(t *testing.T, m *Model, clock *clockwork.FakeClock, label string) {
	t.Helper()

	idx := -1
	for i, opt := range m.screen.Options {
		if opt.Label == label {
			idx = i
		}
	}
	require.NotEqual(t, -1, idx, "option %q not offered on %s", label, m.screen.Step)

	for m.cursor < idx {
		m.Update(key(tea.KeyDown))
	}
	for m.cursor > idx {
		m.Update(key(tea.KeyUp))
	}

	from := m.screen.Step
	m.Update(key(tea.KeyEnter))
	require.NoError(t, m.err)

	clock.Advance(delay)

	select {
	case s := <-m.screens:
		m.Update(screenMsg(s))
	case <-time.After(time.Second):
		t.Fatalf("no screen after selecting %q on %s", label, from)
	}
}

func TestModel_SelectionIsHighlightedBeforeAdvance(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(key(tea.KeyDown))
	m.Update(key(tea.KeyEnter))

	assert.Equal(t, wizard.StepIntent, m.screen.Step)
	assert.True(t, m.screen.Options[1].Selected)
	assert.Contains(t, m.View(), selectedMark+" Sell")
}

func TestModel_FullFlowWithoutBlocks(t *testing.T) {
	m, clock := newTestModel(t)

	choose(t, m, clock, "Buy")
	require.Equal(t, wizard.StepLocation, m.screen.Step)
	choose(t, m, clock, "Sector 101 Dhurali")
	require.Equal(t, wizard.StepType, m.screen.Step)
	choose(t, m, clock, "Industrial Plots")
	choose(t, m, clock, "550 Gaj")
	require.Equal(t, wizard.StepSummary, m.screen.Step)

	view := m.View()
	assert.Contains(t, view, "100%")
	assert.Contains(t, view, "Sector 101 Dhurali")

	m.Update(runeKey('s'))

	require.NotNil(t, m.Submission())
	assert.True(t, m.screen.Submitted)
	assert.Contains(t, m.Submission().Message, "*BUY*")
	assert.Contains(t, m.Submission().Link, "Sector%20101%20Dhurali")
	assert.Contains(t, m.View(), "https://wa.me/919855071280?text=")

	m.Update(runeKey('r'))
	assert.Nil(t, m.Submission())
	assert.Equal(t, wizard.StepIntent, m.screen.Step)
}

func TestModel_BackKeepsSelection(t *testing.T) {
	m, clock := newTestModel(t)

	choose(t, m, clock, "Sell")
	choose(t, m, clock, "Aerotropolis")
	require.Equal(t, wizard.StepBlock, m.screen.Step)

	m.Update(key(tea.KeyEsc))
	assert.Equal(t, wizard.StepLocation, m.screen.Step)
	assert.Equal(t, 0, m.cursor)

	m.Update(key(tea.KeyBackspace))
	assert.Equal(t, wizard.StepIntent, m.screen.Step)
	assert.Equal(t, 1, m.cursor)
	assert.NotContains(t, m.View(), "esc back")
}

func TestModel_SubmitOnlyOnSummary(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(runeKey('s'))

	assert.Nil(t, m.Submission())
	assert.False(t, m.screen.Submitted)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModel_CursorBounds(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(key(tea.KeyUp))
	assert.Equal(t, 0, m.cursor)

	for i := 0; i < 5; i++ {
		m.Update(key(tea.KeyDown))
	}
	assert.Equal(t, len(m.screen.Options)-1, m.cursor)
	assert.True(t, strings.Contains(m.View(), cursorMark))
}
