package clockx

// Verdict is what a probe decides about the slot under the clock hand.
type Verdict int

const (
	// Skip leaves the slot alone (e.g. pinned).
	Skip Verdict = iota
	// SecondChance means the probe cleared the slot's reference bit; keep scanning.
	SecondChance
	// Victim stops the sweep on this slot.
	Victim
)

func (v Verdict) String() string {
	switch v {
	case Skip:
		return "skip"
	case SecondChance:
		return "second_chance"
	case Victim:
		return "victim"
	default:
		return "unknown"
	}
}

// Advance moves a clock hand one slot forward over [0..n).
func Advance(hand, n int) int {
	return (hand + 1) % n
}

// Clock implements CLOCK (second-chance) scanning over a fixed number of slots.
// It owns only the hand; per-slot state (ref bits, pins) lives with the caller
// and is inspected through the probe passed to Sweep.
type Clock struct {
	hand int
	n    int
}

// New returns a clock whose first probe lands on slot 0.
func New(capacity int) *Clock {
	if capacity <= 0 {
		capacity = 1
	}
	return &Clock{
		hand: capacity - 1,
		n:    capacity,
	}
}

func (c *Clock) Capacity() int { return c.n }

// Hand returns the slot the last probe looked at.
func (c *Clock) Hand() int { return c.hand }

// Sweep advances the hand and probes slots until one is declared Victim.
// A sweep makes at most 2*capacity probes, so every slot is seen twice:
// once to spend its second chance and once more to be taken. If the budget
// runs out it returns (-1, false). The hand is kept between sweeps.
func (c *Clock) Sweep(probe func(id int) Verdict) (id int, ok bool) {
	for range 2 * c.n {
		c.hand = Advance(c.hand, c.n)
		if probe(c.hand) == Victim {
			return c.hand, true
		}
	}
	return -1, false
}
