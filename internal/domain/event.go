package domain

import "fmt"

type Event struct {
	Section string   `json:"section"`
	Method  string   `json:"method"`
	Data    []string `json:"data"`
}

// SameKind reports whether both events carry the same (method, section).
func (e Event) SameKind(o Event) bool {
	return e.Method == o.Method && e.Section == o.Section
}

type Block struct {
	Number    uint64  `json:"number"`
	Hash      string  `json:"hash,omitempty"`
	Timestamp int64   `json:"timestamp"`
	Events    []Event `json:"events"`
}

// EventHandle is one event together with its originating block. Index is the
// event's position in the block and only feeds EventID.
type EventHandle struct {
	Event Event
	Block *Block
	Index int
}

func NewEventHandle(block *Block, index int) (EventHandle, error) {
	if block == nil {
		return EventHandle{}, fmt.Errorf("event handle: nil block")
	}
	if index < 0 || index >= len(block.Events) {
		return EventHandle{}, fmt.Errorf("event handle: index %d out of range [0,%d)", index, len(block.Events))
	}
	return EventHandle{Event: block.Events[index], Block: block, Index: index}, nil
}

func (h EventHandle) BlockID() BlockID { return h.Block.Number }

func (h EventHandle) EventID() string { return fmt.Sprintf("%d-%d", h.Block.Number, h.Index) }

// Timestamp is the block timestamp in milliseconds.
func (h EventHandle) Timestamp() int64 { return h.Block.Timestamp }

// SameKindEvents returns the events of the block whose (method, section)
// match the handle's event, in block order.
func (h EventHandle) SameKindEvents() []Event {
	if h.Block == nil {
		return nil
	}
	out := make([]Event, 0, len(h.Block.Events))
	for _, e := range h.Block.Events {
		if e.SameKind(h.Event) {
			out = append(out, e)
		}
	}
	return out
}
