package session

import (
	"testing"

	"github.com/san-kum/fieldtrace/internal/emfield"
	"github.com/san-kum/fieldtrace/internal/trace"
)

func typeText(s *Session, text string) {
	s.Apply(BeginEntry{})
	for i := 0; i < len(text); i++ {
		s.Apply(EntryChar{Ch: text[i]})
	}
}

func TestPlaceAndQuery(t *testing.T) {
	s := New()
	s.Apply(PlaceCharge{Pos: emfield.Vec3{X: 1, Y: 0, Z: 1}, Value: 2.0})

	c, ok := s.Charges.At(0)
	if !ok {
		t.Fatal("charge not placed")
	}
	if c.Position != (emfield.Vec3{X: 1, Y: 0, Z: 1}) || c.Value != 2.0 {
		t.Errorf("round-trip mismatch: %+v", c)
	}
}

func TestEntryConfirmPlacesCharge(t *testing.T) {
	s := New()
	typeText(s, "-1.5")
	s.Apply(ConfirmEntry{Pos: emfield.Vec3{X: 3, Y: 0, Z: -2}})

	if s.Charges.Len() != 1 {
		t.Fatalf("expected 1 charge, got %d", s.Charges.Len())
	}
	c, _ := s.Charges.At(0)
	if c.Value != -1.5 {
		t.Errorf("expected value -1.5, got %f", c.Value)
	}
	if s.Entry.Active() {
		t.Error("entry should close after a successful placement")
	}
}

func TestEntryRejectsZero(t *testing.T) {
	s := New()
	typeText(s, "0")
	s.Apply(ConfirmEntry{Pos: emfield.Vec3{}})

	if s.Charges.Len() != 0 {
		t.Error("zero magnitude should place nothing")
	}
}

func TestEntryMalformedTextIsNoOp(t *testing.T) {
	s := New()
	typeText(s, "-.-")
	s.Apply(ConfirmEntry{Pos: emfield.Vec3{}})

	if s.Charges.Len() != 0 {
		t.Error("unparseable text should place nothing")
	}
}

func TestEntryFiltersCharacters(t *testing.T) {
	s := New()
	s.Apply(BeginEntry{})
	for _, ch := range []byte("a1b.c5x") {
		s.Apply(EntryChar{Ch: ch})
	}
	if s.Entry.Text() != "1.5" {
		t.Errorf("expected filtered buffer 1.5, got %q", s.Entry.Text())
	}
}

func TestEntryBackspace(t *testing.T) {
	s := New()
	typeText(s, "12")
	s.Apply(EntryBackspace{})
	if s.Entry.Text() != "1" {
		t.Errorf("expected buffer 1, got %q", s.Entry.Text())
	}
}

func TestEntryLengthCap(t *testing.T) {
	s := New()
	typeText(s, "123456789012345")
	if len(s.Entry.Text()) != maxEntryLen {
		t.Errorf("expected buffer capped at %d, got %d", maxEntryLen, len(s.Entry.Text()))
	}
}

func TestSelectAndDrag(t *testing.T) {
	s := New()
	s.Apply(PlaceCharge{Pos: emfield.Vec3{}, Value: 1.0})

	s.Apply(SelectCharge{Index: 0})
	if s.Selected != 0 {
		t.Fatal("charge not selected")
	}

	s.Apply(DragSelected{Pos: emfield.Vec3{X: 4, Y: 0, Z: 4}})
	c, _ := s.Charges.At(0)
	if c.Position != (emfield.Vec3{X: 4, Y: 0, Z: 4}) {
		t.Errorf("drag did not move charge: %+v", c.Position)
	}

	s.Apply(ReleaseSelection{})
	if s.Selected != NoSelection {
		t.Error("selection not released")
	}
}

func TestSelectInvalidIndex(t *testing.T) {
	s := New()
	s.Apply(SelectCharge{Index: 5})
	if s.Selected != NoSelection {
		t.Error("selecting a missing charge should be a no-op")
	}
}

func TestDeleteAdjustsSelection(t *testing.T) {
	s := New()
	for i := 0; i < 3; i++ {
		s.Apply(PlaceCharge{Pos: emfield.Vec3{X: float64(i)}, Value: 1.0})
	}

	s.Apply(SelectCharge{Index: 2})
	s.Apply(DeleteCharge{Index: 0})

	if s.Charges.Len() != 2 {
		t.Fatalf("expected 2 charges, got %d", s.Charges.Len())
	}
	if s.Selected != 1 {
		t.Errorf("selection should shift with deletion, got %d", s.Selected)
	}

	s.Apply(DeleteCharge{Index: 1})
	if s.Selected != NoSelection {
		t.Error("deleting the selected charge should clear selection")
	}
}

func TestKnobAdjustment(t *testing.T) {
	s := New()

	s.Apply(AdjustMaxSteps{Delta: 2})
	if s.MaxSteps != trace.DefaultMaxSteps+2*trace.MaxStepsIncrement {
		t.Errorf("unexpected max steps %d", s.MaxSteps)
	}

	s.MaxSteps = trace.MinMaxSteps
	s.Apply(AdjustMaxSteps{Delta: -1})
	if s.MaxSteps != trace.MinMaxSteps {
		t.Errorf("max steps should floor at %d, got %d", trace.MinMaxSteps, s.MaxSteps)
	}

	s.Resolution = 1
	s.Apply(AdjustResolution{Delta: -1})
	if s.Resolution != 1 {
		t.Errorf("resolution should floor at 1, got %d", s.Resolution)
	}
	s.Apply(AdjustResolution{Delta: 3})
	if s.Resolution != 4 {
		t.Errorf("expected resolution 4, got %d", s.Resolution)
	}
}

func TestNewFromScene(t *testing.T) {
	charges := []emfield.Charge{
		{Position: emfield.Vec3{X: -8, Y: 0, Z: 0}, Value: 2.0},
		{Position: emfield.Vec3{X: 8, Y: 0, Z: 0}, Value: -2.0},
	}
	s := NewFromScene(charges, 100, 2)

	if s.Charges.Len() != 2 {
		t.Fatalf("expected 2 charges, got %d", s.Charges.Len())
	}
	if s.MaxSteps != 100 || s.Resolution != 2 {
		t.Errorf("knobs not applied: %d / %d", s.MaxSteps, s.Resolution)
	}
}

func TestFrameConfigSnapshot(t *testing.T) {
	s := New()
	s.MaxSteps = 250
	s.Resolution = 2

	fc := s.FrameConfig(trace.DefaultPalette())
	if fc.MaxSteps != 250 || fc.Resolution != 2 {
		t.Errorf("frame config mismatch: %+v", fc)
	}
}
