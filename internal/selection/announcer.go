package selection

import "subgrip/internal/subtitle"

// Announcer implements the listener bookkeeping half of Controller: adding
// and removing listeners plus the announce operations that fan a change out
// to every registered listener. Concrete controllers embed it and supply
// the actual active-line and selected-set storage and the next/previous
// navigation policy.
type Announcer struct {
	listeners map[Listener]struct{}
}

// AddSelectionListener subscribes a listener. Idempotent.
func (a *Announcer) AddSelectionListener(l Listener) {
	if a.listeners == nil {
		a.listeners = make(map[Listener]struct{})
	}
	a.listeners[l] = struct{}{}
}

// RemoveSelectionListener unsubscribes a listener. Idempotent.
func (a *Announcer) RemoveSelectionListener(l Listener) {
	delete(a.listeners, l)
}

// AnnounceActiveLineChanged calls OnActiveLineChanged on all listeners.
func (a *Announcer) AnnounceActiveLineChanged(line subtitle.LineID) {
	for l := range a.listeners {
		l.OnActiveLineChanged(line)
	}
}

// AnnounceSelectedSetChanged calls OnSelectedSetChanged on all listeners.
func (a *Announcer) AnnounceSelectedSetChanged(sel Set) {
	for l := range a.listeners {
		l.OnSelectedSetChanged(sel)
	}
}
