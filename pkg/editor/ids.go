package editor

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// Temporary id prefixes. Anything carrying one of them is local to the client
// and gets replaced by a durable id when the server persists the entity.
const (
	PrefixExercise  = "temp-ex"
	PrefixSection   = "temp-sec"
	PrefixDuplicate = "dup"
)

type idKind uint8

const (
	kindNone idKind = iota
	kindTemporary
	kindDurable
)

// ID identifies an exercise, a section or a session.
// It is either Temporary (issued locally, before the first save) or Durable (assigned by the server).
// The zero ID means "no id".
type ID struct {
	kind  idKind
	value string
}

func DurableID(id string) ID {
	if id == "" {
		return ID{}
	}
	return ID{kind: kindDurable, value: id}
}

func TemporaryID(prefix string, stamp int64, seq uint64) ID {
	return ID{
		kind:  kindTemporary,
		value: prefix + "-" + strconv.FormatInt(stamp, 10) + "-" + strconv.FormatUint(seq, 10),
	}
}

// ParseID reads the text form of an id. Values using a temporary prefix
// are parsed as Temporary, every other non-empty value is Durable.
func ParseID(s string) ID {
	switch {
	case s == "":
		return ID{}
	case strings.HasPrefix(s, "temp-"), strings.HasPrefix(s, PrefixDuplicate+"-"):
		return ID{kind: kindTemporary, value: s}
	default:
		return DurableID(s)
	}
}

func (id ID) IsZero() bool {
	return id.kind == kindNone
}

func (id ID) IsTemporary() bool {
	return id.kind == kindTemporary
}

func (id ID) IsDurable() bool {
	return id.kind == kindDurable
}

// Durable returns the server id, if this is a durable id.
func (id ID) Durable() (string, bool) {
	if id.kind != kindDurable {
		return "", false
	}
	return id.value, true
}

func (id ID) String() string {
	return id.value
}

func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.value), nil
}

func (id *ID) UnmarshalText(text []byte) error {
	*id = ParseID(string(text))
	return nil
}

// IDIssuer hands out temporary ids: <prefix>-<unix millis>-<sequence>.
// Safe for concurrent use.
type IDIssuer struct {
	counter atomic.Uint64
	now     func() time.Time
}

func NewIDIssuer() *IDIssuer {
	return &IDIssuer{now: time.Now}
}

func NewIDIssuerWithClock(now func() time.Time) *IDIssuer {
	return &IDIssuer{now: now}
}

func (i *IDIssuer) Next(prefix string) ID {
	seq := i.counter.Add(1)
	return TemporaryID(prefix, i.now().UnixMilli(), seq)
}
