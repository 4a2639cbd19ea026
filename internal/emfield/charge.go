package emfield

// MaxCharges bounds the store. Placements beyond the ceiling are
// silently ignored, matching the interactive no-op contract.
const MaxCharges = 100

// Charge is a point source. Positive values emit field lines,
// negative values absorb them.
type Charge struct {
	Position Vec3
	Value    float64
}

func (c Charge) Positive() bool { return c.Value > 0 }

// Store is an ordered, capacity-bounded collection of charges.
// Deletion shifts later charges left so relative order is stable.
type Store struct {
	charges  []Charge
	capacity int
}

func NewStore() *Store {
	return &Store{charges: make([]Charge, 0, 8), capacity: MaxCharges}
}

// NewStoreWithCapacity is used by tests and headless runs that want a
// smaller ceiling; cap values below 1 fall back to MaxCharges.
func NewStoreWithCapacity(capacity int) *Store {
	if capacity < 1 {
		capacity = MaxCharges
	}
	return &Store{charges: make([]Charge, 0, 8), capacity: capacity}
}

func (s *Store) Len() int      { return len(s.charges) }
func (s *Store) Capacity() int { return s.capacity }

// Add appends a charge. A zero value or a full store is rejected and
// reported as false; neither is an error.
func (s *Store) Add(pos Vec3, value float64) bool {
	if value == 0 {
		return false
	}
	if len(s.charges) >= s.capacity {
		return false
	}
	s.charges = append(s.charges, Charge{Position: pos, Value: value})
	return true
}

func (s *Store) At(i int) (Charge, bool) {
	if i < 0 || i >= len(s.charges) {
		return Charge{}, false
	}
	return s.charges[i], true
}

// MoveTo mutates position only; value is immutable after placement.
func (s *Store) MoveTo(i int, pos Vec3) bool {
	if i < 0 || i >= len(s.charges) {
		return false
	}
	s.charges[i].Position = pos
	return true
}

func (s *Store) Delete(i int) bool {
	if i < 0 || i >= len(s.charges) {
		return false
	}
	copy(s.charges[i:], s.charges[i+1:])
	s.charges = s.charges[:len(s.charges)-1]
	return true
}

func (s *Store) Clear() { s.charges = s.charges[:0] }

// Snapshot copies the charge list so a frame can trace against a
// stable view while the live store keeps mutating between frames.
func (s *Store) Snapshot() []Charge {
	snap := make([]Charge, len(s.charges))
	copy(snap, s.charges)
	return snap
}

func (s *Store) CountPositive() int {
	n := 0
	for _, c := range s.charges {
		if c.Positive() {
			n++
		}
	}
	return n
}
