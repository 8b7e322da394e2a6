package wizard

import (
	"errors"
	"fmt"
	"slices"

	"github.com/KotFed0t/loi_bazaar_bot/internal/catalog"
)

var (
	ErrUnknownOption = errors.New("option is not offered on this step")
	ErrNotSelectable = errors.New("step has no options to select")
	ErrSubmitted     = errors.New("form is already submitted")
)

// Select writes value as the answer for step, clearing whatever depends on
// it. The value must be one of the options Render offers for that step.
func Select(rec *Record, cat *catalog.Catalog, step Step, value string) error {
	if rec.Submitted {
		return ErrSubmitted
	}

	switch step {
	case StepIntent:
		intent := Intent(value)
		if !slices.Contains(Intents, intent) {
			return fmt.Errorf("%w: intent %q", ErrUnknownOption, value)
		}
		rec.SetIntent(intent)
	case StepLocation:
		loc, ok := cat.Location(value)
		if !ok {
			return fmt.Errorf("%w: location %q", ErrUnknownOption, value)
		}
		rec.SetLocation(loc.ID, loc.Name, loc.HasBlocks())
	case StepBlock:
		if !cat.HasBlock(rec.LocationID, value) {
			return fmt.Errorf("%w: block %q", ErrUnknownOption, value)
		}
		rec.SetBlock(value)
	case StepType:
		if !slices.Contains(cat.TypesFor(rec.LocationID), value) {
			return fmt.Errorf("%w: type %q", ErrUnknownOption, value)
		}
		rec.SetType(value)
	case StepSize:
		if !slices.Contains(cat.SizesFor(rec.LocationID, rec.Type), value) {
			return fmt.Errorf("%w: size %q", ErrUnknownOption, value)
		}
		rec.SetSize(value)
	default:
		return fmt.Errorf("%w: %s", ErrNotSelectable, step)
	}

	return nil
}
