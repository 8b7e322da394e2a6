package wizard

import (
	"sync"

	"github.com/KotFed0t/loi_bazaar_bot/internal/catalog"
)

// Controller owns one in-memory record. Selections are written at once and
// the advance follows after the pacer delay; onRender receives every screen
// produced by a delayed advance.
type Controller struct {
	mu       sync.Mutex
	rec      Record
	catalog  *catalog.Catalog
	pacer    *Pacer
	onRender func(Screen)
}

func NewController(cat *catalog.Catalog, pacer *Pacer, onRender func(Screen)) *Controller {
	if onRender == nil {
		onRender = func(Screen) {}
	}
	return &Controller{
		rec:      NewRecord(),
		catalog:  cat,
		pacer:    pacer,
		onRender: onRender,
	}
}

func (c *Controller) SelectIntent(intent Intent) error {
	return c.selectOn(StepIntent, string(intent))
}

func (c *Controller) SelectLocation(locationID string) error {
	return c.selectOn(StepLocation, locationID)
}

func (c *Controller) SelectBlock(block string) error {
	return c.selectOn(StepBlock, block)
}

func (c *Controller) SelectType(propertyType string) error {
	return c.selectOn(StepType, propertyType)
}

func (c *Controller) SelectSize(size string) error {
	return c.selectOn(StepSize, size)
}

// SelectCurrent answers whatever step is active.
func (c *Controller) SelectCurrent(value string) error {
	c.mu.Lock()
	step := c.rec.Step
	c.mu.Unlock()

	return c.selectOn(step, value)
}

func (c *Controller) selectOn(step Step, value string) error {
	c.mu.Lock()
	if err := Select(&c.rec, c.catalog, step, value); err != nil {
		c.mu.Unlock()
		return err
	}
	from := c.rec.Step
	c.mu.Unlock()

	c.pacer.After(func() {
		if screen, ok := c.advanceFrom(from); ok {
			c.onRender(screen)
		}
	})

	return nil
}

// advanceFrom advances only if the record is still on step from, so a
// second tap during the delay does not skip a step.
func (c *Controller) advanceFrom(from Step) (Screen, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rec.Step != from || !c.rec.Advance() {
		return Screen{}, false
	}
	return Render(&c.rec, c.catalog), true
}

func (c *Controller) Advance() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rec.Advance()
	return Render(&c.rec, c.catalog)
}

func (c *Controller) Retreat() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rec.Retreat()
	return Render(&c.rec, c.catalog)
}

func (c *Controller) Render() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Render(&c.rec, c.catalog)
}

// MarkSubmitted switches to the terminal confirmation state. Only the
// summary step can be submitted.
func (c *Controller) MarkSubmitted() (Screen, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.rec.Step != StepSummary || c.rec.Submitted {
		return Render(&c.rec, c.catalog), false
	}
	c.rec.Submitted = true
	return Render(&c.rec, c.catalog), true
}

// Reset starts over with a fresh record.
func (c *Controller) Reset() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rec = NewRecord()
	return Render(&c.rec, c.catalog)
}

// Record returns a copy of the current record.
func (c *Controller) Record() Record {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.rec
}
