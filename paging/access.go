package paging

// Operation is the kind of memory access in a trace record
type Operation uint8

const (
	OpInvalid Operation = iota
	OpRead
	OpWrite
)

// ParseOperation maps a trace operation character to an Operation.
// R/r and W/w are accepted; anything else is OpInvalid.
func ParseOperation(c byte) Operation {
	switch c {
	case 'R', 'r':
		return OpRead
	case 'W', 'w':
		return OpWrite
	default:
		return OpInvalid
	}
}

// String returns the canonical trace character
func (op Operation) String() string {
	switch op {
	case OpRead:
		return "R"
	case OpWrite:
		return "W"
	default:
		return "?"
	}
}

// IsWrite reports whether op dirties the page
func (op Operation) IsWrite() bool {
	return op == OpWrite
}

// AccessRecord is one line of a trace
type AccessRecord struct {
	Address uint32
	Op      Operation
	Raw     byte // operation character as it appeared in the trace
}

// NewAccessRecord builds a record from an address and operation character
func NewAccessRecord(address uint32, raw byte) AccessRecord {
	return AccessRecord{
		Address: address,
		Op:      ParseOperation(raw),
		Raw:     raw,
	}
}

// Outcome classifies how an access was served
type Outcome uint8

const (
	OutcomeHit Outcome = iota
	OutcomeMissFree
	OutcomeMissEvict
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeMissFree:
		return "miss-free"
	case OutcomeMissEvict:
		return "miss-evict"
	default:
		return "unknown"
	}
}

// AccessEvent describes one processed access.
// Victim fields are only set when Outcome is OutcomeMissEvict.
type AccessEvent struct {
	Index       uint64 // 1-based position among valid accesses
	Address     uint32
	Op          Operation
	Page        uint32
	Outcome     Outcome
	Frame       uint32 // frame now holding Page
	VictimFrame uint32
	VictimPage  uint32
	VictimDirty bool
	Residency   uint64 // accesses the victim stayed resident
}
