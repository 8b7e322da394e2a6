package wizard

import (
	"time"

	"github.com/jonboulle/clockwork"
)

// Pacer delays the automatic advance after a selection so the user sees
// the choice highlighted before the next step replaces it.
type Pacer struct {
	clock clockwork.Clock
	delay time.Duration
}

func NewPacer(clock clockwork.Clock, delay time.Duration) *Pacer {
	return &Pacer{clock: clock, delay: delay}
}

// After runs fn on its own goroutine once the delay has passed.
func (p *Pacer) After(fn func()) clockwork.Timer {
	return p.clock.AfterFunc(p.delay, fn)
}

func (p *Pacer) Delay() time.Duration {
	return p.delay
}
