// Package projection builds read-only views from session state: the
// message timeline of the active room and the view-mode selection.
// It never mutates state or emits events.
package projection

import "pinchat/domain"

// Timeline is the append-only message log of the active room. Display
// order is arrival order; a locally sent message is appended on send
// (optimistic echo) and never reordered or deduplicated.
type Timeline struct {
	Owner    string
	Messages []domain.Message
}

func NewTimeline(owner string) *Timeline {
	return &Timeline{Owner: owner}
}

func (t *Timeline) Append(msg domain.Message) {
	t.Messages = append(t.Messages, msg)
}

func (t *Timeline) Len() int {
	return len(t.Messages)
}

// Own reports whether a message was authored by the timeline's owner.
// Rendering highlights these differently from received ones.
func (t *Timeline) Own(msg domain.Message) bool {
	return msg.Author == t.Owner
}
