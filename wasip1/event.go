package wasip1

// Eventtype identifies which kind of subscription produced an event.
type Eventtype uint8

const (
	EventtypeClock Eventtype = iota
	EventtypeFdRead
	EventtypeFdWrite
)

func (t Eventtype) String() string {
	switch t {
	case EventtypeClock:
		return "clock"
	case EventtypeFdRead:
		return "fd-read"
	case EventtypeFdWrite:
		return "fd-write"
	default:
		return "unknown"
	}
}

// EventRwFlags report readiness conditions beyond plain readability or
// writability.
type EventRwFlags uint16

const (
	// EventFdReadwriteHangup is set when the peer of the descriptor has
	// closed its end. The event is still delivered as a read or write
	// event; the flag tells the caller no further data will arrive.
	EventFdReadwriteHangup EventRwFlags = 1 << iota
)

// SubclockFlags modify a clock subscription.
type SubclockFlags uint16

const (
	// SubscriptionClockAbstime treats the timeout as an absolute point on
	// the requested clock instead of a relative duration.
	SubscriptionClockAbstime SubclockFlags = 1 << iota
)

// Event is the outcome of one ready subscription: the caller's userdata,
// the portable error code (success, or the reason readiness could not be
// determined), the event type that fired, a byte-count hint for reads, and
// readiness flags.
type Event struct {
	Userdata Userdata
	Errno    Errno
	Type     Eventtype
	NBytes   Filesize
	Flags    EventRwFlags
}
