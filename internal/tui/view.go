package tui

import (
	"fmt"
	"strings"

	"github.com/KotFed0t/loi_bazaar_bot/internal/wizard"
)

func (m *Model) View() string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("LOI Bazaar"))
	sb.WriteString("\n")
	sb.WriteString(stepStyle.Render(fmt.Sprintf("Step %d of %d", m.screen.Step, wizard.StepsCount)))
	sb.WriteString("\n")
	sb.WriteString(m.bar.ViewAs(m.screen.Progress.InexactFloat64()))
	sb.WriteString(fmt.Sprintf(" %d%%", m.screen.ProgressPercent()))
	sb.WriteString("\n")

	if m.screen.Submitted {
		sb.WriteString(titleStyle.Render("Request ready"))
		sb.WriteString("\n")
		m.writeSummary(&sb)
		if m.submission != nil {
			sb.WriteString("\n")
			sb.WriteString(linkStyle.Render(m.submission.Link))
			sb.WriteString("\n")
		}
		sb.WriteString(footerStyle.Render("r start over • q quit"))
		return sb.String()
	}

	sb.WriteString(titleStyle.Render(m.screen.Title))
	sb.WriteString("\n")

	if m.screen.Step == wizard.StepSummary {
		m.writeSummary(&sb)
	} else {
		for i, opt := range m.screen.Options {
			sb.WriteString(m.renderOption(i, opt))
			sb.WriteString("\n")
		}
	}

	if m.err != nil {
		sb.WriteString(warningStyle.Render(m.err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString(footerStyle.Render(m.footer()))

	return sb.String()
}

func (m *Model) renderOption(i int, opt wizard.Option) string {
	cursor := " "
	if i == m.cursor {
		cursor = cursorMark
	}

	mark := " "
	if opt.Selected {
		mark = selectedMark
	}

	line := fmt.Sprintf("%s %s %s", cursor, mark, opt.Label)
	switch {
	case opt.Selected:
		return selectedStyle.Render(line)
	case i == m.cursor:
		return cursorStyle.Render(line)
	default:
		return optionStyle.Render(line)
	}
}

func (m *Model) writeSummary(sb *strings.Builder) {
	summary := m.screen.Summary
	if summary == nil {
		return
	}

	rows := [][2]string{
		{"Intent", summary.Intent},
		{"Location", summary.Location},
		{"Type", summary.Type},
		{"Size", summary.Size},
	}
	for _, r := range rows {
		sb.WriteString(summaryLabelStyle.Render(r[0]))
		sb.WriteString(r[1])
		sb.WriteString("\n")
	}
}

func (m *Model) footer() string {
	keys := []string{"↑/↓ choose", "enter select"}
	if m.screen.Step == wizard.StepSummary {
		keys = []string{"enter/s submit"}
	}
	if m.screen.BackVisible {
		keys = append(keys, "esc back")
	}
	keys = append(keys, "q quit")
	return strings.Join(keys, " • ")
}
