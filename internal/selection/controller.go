// Package selection tracks which dialogue line is active and which set of
// lines is selected in an editing session, and fans change notifications
// out to registered listeners.
//
// Two concepts are managed here: the active line and the selected set. The
// active line is the line whose values the detail editor shows; the
// selected set is the target of bulk operations. There is one controller
// per editing session, but many possible implementations: the subtitle
// grid in the UI, the Null controller when no document is open, and test
// drivers.
//
// Listener callbacks run synchronously on the call stack of the mutating
// operation. Listeners must not call back into the controller's mutators
// from inside a callback.
package selection

import "subgrip/internal/subtitle"

// Controller is the interface for selection controllers.
type Controller interface {
	// SetActiveLine changes the active line. A zero LineID means no line
	// is active. Listeners are notified only if the active line actually
	// changed.
	SetActiveLine(line subtitle.LineID)

	// ActiveLine returns the active line, or a zero LineID if there is
	// none.
	ActiveLine() subtitle.LineID

	// SetSelectedSet replaces the selected set. The replacement is
	// all-or-nothing: implementations either adopt the new set completely
	// or keep the previous one. A refused or content-identical change
	// sends no notification.
	SetSelectedSet(sel Set)

	// SelectedSet returns a copy of the selected set.
	SelectedSet() Set

	// NextLine makes the line after the active one active. Without a
	// logical next line nothing changes and nothing is announced. On
	// success the selected set collapses to exactly the new active line
	// and both changes are announced.
	NextLine()

	// PrevLine is NextLine in the other direction.
	PrevLine()

	// AddSelectionListener subscribes a listener to change notifications.
	// Adding a listener twice has no additional effect.
	AddSelectionListener(l Listener)

	// RemoveSelectionListener unsubscribes a listener. Removing one that
	// was never added is a no-op.
	RemoveSelectionListener(l Listener)
}

// Listener receives selection change notifications. Notification order
// across listeners is unspecified.
type Listener interface {
	// OnActiveLineChanged is called with the new active line, which is a
	// zero LineID when no line is active anymore.
	OnActiveLineChanged(line subtitle.LineID)

	// OnSelectedSetChanged is called with the new selected set. The set
	// is shared across listeners and must not be mutated.
	OnSelectedSetChanged(sel Set)
}

// Set is an identity set of dialogue lines.
type Set map[subtitle.LineID]struct{}

// NewSet builds a set from the given lines. Zero handles are ignored.
func NewSet(lines ...subtitle.LineID) Set {
	s := make(Set, len(lines))
	for _, id := range lines {
		if !id.IsZero() {
			s[id] = struct{}{}
		}
	}
	return s
}

// Contains reports whether the line is in the set.
func (s Set) Contains(id subtitle.LineID) bool {
	_, ok := s[id]
	return ok
}

// Copy returns an independent copy of the set.
func (s Set) Copy() Set {
	c := make(Set, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Equal reports whether both sets contain exactly the same lines.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for id := range s {
		if _, ok := other[id]; !ok {
			return false
		}
	}
	return true
}

// Add inserts a line into the set. Zero handles are ignored.
func (s Set) Add(id subtitle.LineID) {
	if !id.IsZero() {
		s[id] = struct{}{}
	}
}

// Remove deletes a line from the set.
func (s Set) Remove(id subtitle.LineID) {
	delete(s, id)
}

// Slice returns the set's members in unspecified order.
func (s Set) Slice() []subtitle.LineID {
	ids := make([]subtitle.LineID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}
