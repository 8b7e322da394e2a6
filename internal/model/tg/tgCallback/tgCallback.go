package tgCallback

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/KotFed0t/loi_bazaar_bot/internal/wizard"
)

// Callback buttons uniques
const (
	Intent   string = "intent"
	Location string = "location"
	Block    string = "block"
	Type     string = "type"
	Size     string = "size"

	Back    string = "back"    // шаг назад
	Submit  string = "submit"  // отправить заявку
	Restart string = "restart" // начать заново
)

var stepUniques = map[wizard.Step]string{
	wizard.StepIntent:   Intent,
	wizard.StepLocation: Location,
	wizard.StepBlock:    Block,
	wizard.StepType:     Type,
	wizard.StepSize:     Size,
}

// ForStep returns the unique of the option buttons shown on step.
func ForStep(step wizard.Step) (string, bool) {
	unique, ok := stepUniques[step]
	return unique, ok
}

// SelectionUniques maps every option button unique to its step.
func SelectionUniques() map[string]wizard.Step {
	res := make(map[string]wizard.Step, len(stepUniques))
	for step, unique := range stepUniques {
		res[unique] = step
	}
	return res
}

const payloadSeparator = "|"

// Payload joins the form id with an option id or a step, the same way
// markup.Data joins its data parts.
func Payload(formID, value string) string {
	return formID + payloadSeparator + value
}

// ParsePayload splits callback data built by Payload.
func ParsePayload(data string) (formID, value string) {
	formID, value, _ = strings.Cut(data, payloadSeparator)
	return formID, value
}

// StepPayload is the payload of a button bound to the step it was shown on.
func StepPayload(formID string, step wizard.Step) string {
	return Payload(formID, strconv.Itoa(int(step)))
}

// ParseStepPayload is the reverse of StepPayload.
func ParseStepPayload(data string) (formID string, step wizard.Step, err error) {
	formID, value := ParsePayload(data)
	n, err := strconv.Atoi(value)
	if err != nil {
		return "", 0, fmt.Errorf("parse step from %q: %w", data, err)
	}
	return formID, wizard.Step(n), nil
}
