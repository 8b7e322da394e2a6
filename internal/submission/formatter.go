// Package submission turns a completed form into the pre-filled WhatsApp
// message and link.
package submission

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/KotFed0t/loi_bazaar_bot/internal/wizard"
)

const linkTemplate = "https://wa.me/%s?text=%s"

type Submission struct {
	Message string
	Link    string
}

type Formatter struct {
	recipient string
	greeting  []string
}

// NewFormatter builds a formatter for the given WhatsApp recipient. The
// greeting lines open every message.
func NewFormatter(recipient string, greeting []string) *Formatter {
	return &Formatter{recipient: recipient, greeting: greeting}
}

func (f *Formatter) Format(rec wizard.Record) Submission {
	msg := f.Message(rec)
	return Submission{Message: msg, Link: f.Link(msg)}
}

// Message fills the lead template. Fields left unset render empty.
func (f *Formatter) Message(rec wizard.Record) string {
	location := rec.Location
	if rec.HasSubLocation && rec.Block != "" {
		location += fmt.Sprintf(" (%s)", rec.Block)
	}

	var sb strings.Builder
	for _, line := range f.greeting {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	if len(f.greeting) > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString(fmt.Sprintf("I am looking to *%s* an LOI.\n\n", strings.ToUpper(string(rec.Intent))))
	sb.WriteString(fmt.Sprintf("📍 *Location:* %s\n", location))
	sb.WriteString(fmt.Sprintf("🏠 *Type:* %s\n", rec.Type))
	sb.WriteString(fmt.Sprintf("📏 *Size:* %s\n\n", rec.Size))
	sb.WriteString("Please contact me at the earliest.")

	return sb.String()
}

// Link builds the wa.me link carrying message as the text parameter.
// WhatsApp shows a literal "+" for query-encoded spaces, hence %20.
func (f *Formatter) Link(message string) string {
	text := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return fmt.Sprintf(linkTemplate, f.recipient, text)
}
