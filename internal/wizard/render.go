package wizard

import (
	"github.com/KotFed0t/loi_bazaar_bot/internal/catalog"
	"github.com/shopspring/decimal"
)

var stepTitles = map[Step]string{
	StepIntent:   "What are you looking to do?",
	StepLocation: "Select a location",
	StepBlock:    "Select a block",
	StepType:     "Select property type",
	StepSize:     "Select size",
	StepSummary:  "Review your request",
}

type Option struct {
	ID       string
	Label    string
	Selected bool
}

// Screen is everything a frontend needs to draw the active step.
type Screen struct {
	FormID      string
	Step        Step
	Title       string
	Progress    decimal.Decimal
	BackVisible bool
	Options     []Option
	Summary     *Summary
	Submitted   bool
}

// ProgressPercent is Progress scaled to a whole percentage.
func (s Screen) ProgressPercent() int64 {
	return s.Progress.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Progress returns step/StepsCount.
func Progress(step Step) decimal.Decimal {
	return decimal.NewFromInt(int64(step)).Div(decimal.NewFromInt(StepsCount))
}

// Render draws the active step of rec. A record sitting on the block step
// for a location without blocks is moved to the type step first.
func Render(rec *Record, cat *catalog.Catalog) Screen {
	rec.normalize()

	screen := Screen{
		FormID:      rec.ID,
		Step:        rec.Step,
		Title:       stepTitles[rec.Step],
		Progress:    Progress(rec.Step),
		BackVisible: rec.Step != StepIntent,
		Submitted:   rec.Submitted,
	}

	if rec.Submitted {
		screen.BackVisible = false
		summary := rec.Summary()
		screen.Summary = &summary
		return screen
	}

	switch rec.Step {
	case StepIntent:
		for _, intent := range Intents {
			screen.Options = append(screen.Options, Option{
				ID:       string(intent),
				Label:    string(intent),
				Selected: rec.Intent == intent,
			})
		}
	case StepLocation:
		for _, loc := range cat.Locations {
			screen.Options = append(screen.Options, Option{
				ID:       loc.ID,
				Label:    loc.Name,
				Selected: rec.LocationID == loc.ID,
			})
		}
	case StepBlock:
		if loc, ok := cat.Location(rec.LocationID); ok {
			screen.Options = labelOptions(loc.Blocks, rec.Block)
		}
	case StepType:
		screen.Options = labelOptions(cat.TypesFor(rec.LocationID), rec.Type)
	case StepSize:
		screen.Options = labelOptions(cat.SizesFor(rec.LocationID, rec.Type), rec.Size)
	case StepSummary:
		summary := rec.Summary()
		screen.Summary = &summary
	}

	return screen
}

func labelOptions(labels []string, selected string) []Option {
	options := make([]Option, 0, len(labels))
	for _, l := range labels {
		options = append(options, Option{ID: l, Label: l, Selected: l == selected})
	}
	return options
}
