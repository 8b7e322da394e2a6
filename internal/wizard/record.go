// Package wizard implements the lead form state machine: a single record
// walked through six steps, with the block step skipped for locations that
// are not divided into blocks.
package wizard

import "fmt"

type Step int

const (
	StepIntent Step = iota + 1
	StepLocation
	StepBlock
	StepType
	StepSize
	StepSummary
)

// StepsCount is the number of logical steps, used for the progress ratio.
const StepsCount = 6

func (s Step) Valid() bool {
	return s >= StepIntent && s <= StepSummary
}

func (s Step) String() string {
	switch s {
	case StepIntent:
		return "intent"
	case StepLocation:
		return "location"
	case StepBlock:
		return "block"
	case StepType:
		return "type"
	case StepSize:
		return "size"
	case StepSummary:
		return "summary"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

type Intent string

const (
	IntentBuy  Intent = "Buy"
	IntentSell Intent = "Sell"
)

// Intents lists the intent options in display order.
var Intents = []Intent{IntentBuy, IntentSell}

// Record is the selection state of one form. ID tells one form of a chat
// from the next and stays empty for in-memory forms.
type Record struct {
	ID             string `json:"id,omitempty"`
	Step           Step   `json:"step"`
	Intent         Intent `json:"intent,omitempty"`
	LocationID     string `json:"location_id,omitempty"`
	Location       string `json:"location,omitempty"`
	HasSubLocation bool   `json:"has_sub_location"`
	Block          string `json:"block,omitempty"`
	Type           string `json:"type,omitempty"`
	Size           string `json:"size,omitempty"`
	Submitted      bool   `json:"submitted"`
}

func NewRecord() Record {
	return Record{Step: StepIntent}
}

func (r *Record) SetIntent(intent Intent) {
	r.Intent = intent
}

// SetLocation stores the location and drops any block chosen for the previous one.
func (r *Record) SetLocation(id, name string, hasSubLocation bool) {
	r.LocationID = id
	r.Location = name
	r.HasSubLocation = hasSubLocation
	r.Block = ""
}

func (r *Record) SetBlock(block string) {
	r.Block = block
}

// SetType stores the property type and drops the size, whose options depend on it.
func (r *Record) SetType(propertyType string) {
	r.Type = propertyType
	r.Size = ""
}

func (r *Record) SetSize(size string) {
	r.Size = size
}

// Advance moves to the next step, skipping the block step for locations
// without blocks. It reports false when nothing moved.
func (r *Record) Advance() bool {
	if r.Submitted {
		return false
	}

	next := r.Step + 1
	if r.Step == StepLocation && !r.HasSubLocation {
		next = StepType
	}

	if next > StepSummary {
		return false
	}

	r.Step = next
	return true
}

// Retreat is the mirror of Advance.
func (r *Record) Retreat() bool {
	if r.Submitted {
		return false
	}

	prev := r.Step - 1
	if r.Step == StepType && !r.HasSubLocation {
		prev = StepLocation
	}

	if prev < StepIntent {
		return false
	}

	r.Step = prev
	return true
}

// normalize materialises the block step as the type step when the location
// has no blocks.
func (r *Record) normalize() {
	if !r.Step.Valid() {
		r.Step = StepIntent
	}
	if r.Step == StepBlock && !r.HasSubLocation {
		r.Step = StepType
	}
}

// FullLocation joins location and block for display: "Aerotropolis - B".
func (r Record) FullLocation() string {
	if r.HasSubLocation && r.Block != "" {
		return r.Location + " - " + r.Block
	}
	return r.Location
}

type Summary struct {
	Intent   string
	Location string
	Type     string
	Size     string
}

// Summary projects the record into display text. Unset fields stay empty.
func (r Record) Summary() Summary {
	return Summary{
		Intent:   string(r.Intent),
		Location: r.FullLocation(),
		Type:     r.Type,
		Size:     r.Size,
	}
}
