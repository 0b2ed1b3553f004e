package selection

import "subgrip/internal/subtitle"

// Null is a do-nothing controller that behaves as if it operated on a
// permanently empty document. It is the safe default while no real editing
// session exists: every mutator is a no-op, every accessor returns
// none/empty, and listeners are accepted but never called.
type Null struct{}

var _ Controller = Null{}

func (Null) SetActiveLine(subtitle.LineID) {}

func (Null) ActiveLine() subtitle.LineID { return subtitle.LineID{} }

func (Null) SetSelectedSet(Set) {}

func (Null) SelectedSet() Set { return Set{} }

func (Null) NextLine() {}

func (Null) PrevLine() {}

func (Null) AddSelectionListener(Listener) {}

func (Null) RemoveSelectionListener(Listener) {}
