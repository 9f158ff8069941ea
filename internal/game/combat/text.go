package combat

import (
	"log/slog"

	"github.com/udisondev/emberfall/internal/model"
)

// MessageKind classifies a floating combat text. Cosmetic only.
type MessageKind int

const (
	MessageGiveDmg MessageKind = iota
	MessageTakeDmg
	MessageCrit
	MessageMiss
	MessageBuff
)

// String returns human-readable kind name
func (k MessageKind) String() string {
	switch k {
	case MessageGiveDmg:
		return "give_dmg"
	case MessageTakeDmg:
		return "take_dmg"
	case MessageCrit:
		return "crit"
	case MessageMiss:
		return "miss"
	case MessageBuff:
		return "buff"
	default:
		return "unknown"
	}
}

// TextSink receives floating combat text.
type TextSink interface {
	AddString(text string, pos model.FPoint, kind MessageKind)
	AddInt(value int, pos model.FPoint, kind MessageKind)
}

// TextEvent is one recorded combat text.
type TextEvent struct {
	Text  string // empty for numeric events
	Value int
	Pos   model.FPoint
	Kind  MessageKind
}

// TextLog records combat text in emission order and optionally mirrors it to slog.
// Not thread-safe.
type TextLog struct {
	Events  []TextEvent
	Verbose bool
}

var _ TextSink = (*TextLog)(nil)

// AddString implements TextSink.
func (l *TextLog) AddString(text string, pos model.FPoint, kind MessageKind) {
	l.Events = append(l.Events, TextEvent{Text: text, Pos: pos, Kind: kind})
	if l.Verbose {
		slog.Debug("combat text", "text", text, "kind", kind, "x", pos.X, "y", pos.Y)
	}
}

// AddInt implements TextSink.
func (l *TextLog) AddInt(value int, pos model.FPoint, kind MessageKind) {
	l.Events = append(l.Events, TextEvent{Value: value, Pos: pos, Kind: kind})
	if l.Verbose {
		slog.Debug("combat text", "value", value, "kind", kind, "x", pos.X, "y", pos.Y)
	}
}

// Reset drops recorded events.
func (l *TextLog) Reset() {
	l.Events = l.Events[:0]
}
