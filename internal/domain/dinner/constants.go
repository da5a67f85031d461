package dinner

// Mode is how an inhabitant attends a dinner.
type Mode string

// Dinner modes. ModeNone only appears in preferences, never on an order.
const (
	ModeDineIn     Mode = "DINEIN"
	ModeDineInLate Mode = "DINEINLATE"
	ModeTakeaway   Mode = "TAKEAWAY"
	ModeNone       Mode = "NONE"
)

// Attending reports whether m means a ticket is wanted.
func (m Mode) Attending() bool {
	return m == ModeDineIn || m == ModeDineInLate || m == ModeTakeaway
}

// Dinner event states
const (
	StateScheduled = "SCHEDULED"
	StateAnnounced = "ANNOUNCED"
	StateCancelled = "CANCELLED"
	StateConsumed  = "CONSUMED"
)
