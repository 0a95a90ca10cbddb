package snake

// Steering is a single-slot mailbox carrying the direction requested for the
// next move. Offers overwrite the pending value (last write wins) and Take
// consumes it at most once, so each move reads one consistent direction.
//
// It has exactly one writer (input) and one reader (the move step).
type Steering struct {
	slot chan Direction
}

// NewSteering creates an empty mailbox.
func NewSteering() *Steering {
	return &Steering{slot: make(chan Direction, 1)}
}

// Offer replaces any pending direction with d.
func (s *Steering) Offer(d Direction) {
	select {
	case <-s.slot:
	default:
	}
	select {
	case s.slot <- d:
	default:
	}
}

// Take removes and returns the pending direction, if any.
func (s *Steering) Take() (Direction, bool) {
	select {
	case d := <-s.slot:
		return d, true
	default:
		return 0, false
	}
}

// Drain discards any pending direction.
func (s *Steering) Drain() {
	s.Take()
}
