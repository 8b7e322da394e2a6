package telebotConverter

import (
	"fmt"
	"strings"

	"github.com/KotFed0t/loi_bazaar_bot/internal/model"
	"github.com/KotFed0t/loi_bazaar_bot/internal/model/tg/tgCallback"
	"github.com/KotFed0t/loi_bazaar_bot/internal/wizard"
	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v4"
)

const (
	progressBarWidth = 12
	optionsPerRow    = 2
	selectedMark     = "✅ "
)

// ProgressBar draws progress as a bar of progressBarWidth cells.
func ProgressBar(progress decimal.Decimal) string {
	filled := int(progress.Mul(decimal.NewFromInt(progressBarWidth)).Round(0).IntPart())
	filled = max(0, min(filled, progressBarWidth))
	return strings.Repeat("▰", filled) + strings.Repeat("▱", progressBarWidth-filled)
}

func ScreenResponse(screen wizard.Screen) (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Step %d of %d\n", screen.Step, wizard.StepsCount))
	sb.WriteString(fmt.Sprintf("%s %d%%\n\n", ProgressBar(screen.Progress), screen.ProgressPercent()))

	if screen.Submitted {
		sb.WriteString("📨 Your request has already been prepared.\n\n")
		writeSummary(&sb, screen.Summary)
		markup.Inline(markup.Row(markup.Data("🔄 Start over", tgCallback.Restart)))
		return sb.String(), markup
	}

	sb.WriteString(screen.Title)

	rows := make([]tele.Row, 0, 4)

	if screen.Step == wizard.StepSummary {
		sb.WriteString("\n\n")
		writeSummary(&sb, screen.Summary)
		rows = append(rows, markup.Row(markup.Data("📨 Submit", tgCallback.Submit, screen.FormID)))
	} else if unique, ok := tgCallback.ForStep(screen.Step); ok {
		btns := make([]tele.Btn, 0, len(screen.Options))
		for _, opt := range screen.Options {
			label := opt.Label
			if opt.Selected {
				label = selectedMark + label
			}
			btns = append(btns, markup.Data(label, unique, tgCallback.Payload(screen.FormID, opt.ID)))
		}
		rows = append(rows, markup.Split(optionsPerRow, btns)...)
	}

	if screen.BackVisible {
		rows = append(rows, markup.Row(markup.Data("⬅️ Back", tgCallback.Back, tgCallback.StepPayload(screen.FormID, screen.Step))))
	}

	markup.Inline(rows...)

	return sb.String(), markup
}

func writeSummary(sb *strings.Builder, summary *wizard.Summary) {
	if summary == nil {
		return
	}
	sb.WriteString(fmt.Sprintf("🎯 Intent: %s\n", summary.Intent))
	sb.WriteString(fmt.Sprintf("📍 Location: %s\n", summary.Location))
	sb.WriteString(fmt.Sprintf("🏠 Type: %s\n", summary.Type))
	sb.WriteString(fmt.Sprintf("📏 Size: %s", summary.Size))
}

// SubmittedResponse answers a successful submit with the WhatsApp link.
func SubmittedResponse(lead model.Lead) (text string, markup *tele.ReplyMarkup) {
	markup = &tele.ReplyMarkup{}
	var sb strings.Builder

	sb.WriteString("✅ Thank you! Your request is ready.\n\n")
	sb.WriteString("Tap the button below to send it to us on WhatsApp.\n\n")
	sb.WriteString(fmt.Sprintf("Reference: %s", lead.Reference))

	markup.Inline(
		markup.Row(markup.URL("📲 Open WhatsApp", lead.Link)),
		markup.Row(markup.Data("🔄 Start over", tgCallback.Restart)),
	)

	return sb.String(), markup
}

// LeadNotification is the text sent to the admin chat for every new lead.
func LeadNotification(lead model.Lead) string {
	location := lead.Location
	if lead.Block != "" {
		location += " - " + lead.Block
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("🆕 Lead #%d\n", lead.LeadID))
	sb.WriteString(fmt.Sprintf("%s | %s | %s | %s\n", lead.Intent, location, lead.PropertyType, lead.Size))
	if lead.Username != "" {
		sb.WriteString(fmt.Sprintf("@%s ", lead.Username))
	}
	sb.WriteString(fmt.Sprintf("chat %d", lead.ChatID))

	return sb.String()
}

func ReportResponse(link string, count int) string {
	return fmt.Sprintf("📊 Leads report: %d new leads\n%s", count, link)
}
