// Package session owns the interactive application state: the live
// charge store, the two trace knobs, selection and text entry. All
// mutation goes through discrete intents so input backends (raylib
// GUI, terminal view, tests) stay decoupled from the state rules.
package session

import (
	"github.com/san-kum/fieldtrace/internal/emfield"
	"github.com/san-kum/fieldtrace/internal/trace"
)

// NoSelection marks the selected-charge index when nothing is held.
const NoSelection = -1

type Session struct {
	Charges    *emfield.Store
	MaxSteps   int
	Resolution int
	Selected   int
	Entry      Entry
}

func New() *Session {
	return &Session{
		Charges:    emfield.NewStore(),
		MaxSteps:   trace.DefaultMaxSteps,
		Resolution: 3,
		Selected:   NoSelection,
	}
}

// NewFromScene seeds the store with a built-in layout.
func NewFromScene(charges []emfield.Charge, maxSteps, resolution int) *Session {
	s := New()
	s.MaxSteps = maxSteps
	s.Resolution = resolution
	s.clampKnobs()
	for _, c := range charges {
		s.Charges.Add(c.Position, c.Value)
	}
	return s
}

// Intent is one discrete user action. Backends translate raw events
// into intents; Apply is the only mutation path.
type Intent interface{ isIntent() }

type (
	// PlaceCharge adds a charge at a picked ground point.
	PlaceCharge struct {
		Pos   emfield.Vec3
		Value float64
	}
	// SelectCharge grabs an existing charge for dragging.
	SelectCharge struct{ Index int }
	// DragSelected moves the held charge to a new ground point.
	DragSelected struct{ Pos emfield.Vec3 }
	// ReleaseSelection drops the held charge.
	ReleaseSelection struct{}
	// DeleteCharge removes a charge, shifting later ones left.
	DeleteCharge struct{ Index int }
	// AdjustMaxSteps changes the trace budget in fixed increments.
	AdjustMaxSteps struct{ Delta int }
	// AdjustResolution changes seed density.
	AdjustResolution struct{ Delta int }
	// BeginEntry opens the magnitude text buffer.
	BeginEntry struct{}
	// EntryChar appends one typed character.
	EntryChar struct{ Ch byte }
	// EntryBackspace removes the last typed character.
	EntryBackspace struct{}
	// CancelEntry discards the buffer.
	CancelEntry struct{}
	// ConfirmEntry parses the buffer and places at the picked point.
	ConfirmEntry struct{ Pos emfield.Vec3 }
)

func (PlaceCharge) isIntent()      {}
func (SelectCharge) isIntent()     {}
func (DragSelected) isIntent()     {}
func (ReleaseSelection) isIntent() {}
func (DeleteCharge) isIntent()     {}
func (AdjustMaxSteps) isIntent()   {}
func (AdjustResolution) isIntent() {}
func (BeginEntry) isIntent()       {}
func (EntryChar) isIntent()        {}
func (EntryBackspace) isIntent()   {}
func (CancelEntry) isIntent()      {}
func (ConfirmEntry) isIntent()     {}

// Apply executes one intent. Invalid actions (zero magnitude, full
// store, bad index) are silent no-ops per the interaction contract.
func (s *Session) Apply(intent Intent) {
	switch in := intent.(type) {
	case PlaceCharge:
		s.Charges.Add(in.Pos, in.Value)
	case SelectCharge:
		if _, ok := s.Charges.At(in.Index); ok {
			s.Selected = in.Index
			s.Entry.Cancel()
		}
	case DragSelected:
		if s.Selected != NoSelection {
			s.Charges.MoveTo(s.Selected, in.Pos)
		}
	case ReleaseSelection:
		s.Selected = NoSelection
	case DeleteCharge:
		if s.Charges.Delete(in.Index) {
			if s.Selected == in.Index {
				s.Selected = NoSelection
			} else if s.Selected > in.Index {
				s.Selected--
			}
			s.Entry.Cancel()
		}
	case AdjustMaxSteps:
		s.MaxSteps += in.Delta * trace.MaxStepsIncrement
		s.clampKnobs()
	case AdjustResolution:
		s.Resolution += in.Delta
		s.clampKnobs()
	case BeginEntry:
		s.Selected = NoSelection
		s.Entry.Begin()
	case EntryChar:
		s.Entry.Append(in.Ch)
	case EntryBackspace:
		s.Entry.Backspace()
	case CancelEntry:
		s.Entry.Cancel()
	case ConfirmEntry:
		if s.Entry.Active() && !s.Entry.Empty() {
			if s.Charges.Add(in.Pos, s.Entry.Value()) {
				s.Entry.Cancel()
			}
		}
	}
}

func (s *Session) clampKnobs() {
	if s.MaxSteps < trace.MinMaxSteps {
		s.MaxSteps = trace.MinMaxSteps
	}
	if s.Resolution < 1 {
		s.Resolution = 1
	}
}

// FrameConfig snapshots the knobs for the orchestrator.
func (s *Session) FrameConfig(palette trace.Palette) trace.FrameConfig {
	return trace.FrameConfig{
		MaxSteps:   s.MaxSteps,
		Resolution: s.Resolution,
		Palette:    palette,
	}
}
