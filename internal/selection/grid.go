package selection

import "subgrip/internal/subtitle"

// Grid is the selection controller for an open document: the controller
// behind the subtitle grid in the UI. It stores the active line and the
// selected set and navigates along the document's display order.
//
// A selected-set replacement is refused, silently, when the proposed set
// contains a handle that is not live in the document. Stale handles show
// up after lines are deleted; refusing them keeps the selection free of
// dangling references without making every caller revalidate first.
type Grid struct {
	Announcer

	doc      *subtitle.Document
	active   subtitle.LineID
	selected Set
}

var _ Controller = (*Grid)(nil)

// NewGrid creates a controller over the given document. The controller
// starts with no active line and an empty selected set.
func NewGrid(doc *subtitle.Document) *Grid {
	return &Grid{
		doc:      doc,
		selected: Set{},
	}
}

// Document returns the document this controller operates on.
func (g *Grid) Document() *subtitle.Document {
	return g.doc
}

// SetActiveLine changes the active line and notifies listeners, unless the
// new value equals the current one, in which case nothing happens.
func (g *Grid) SetActiveLine(line subtitle.LineID) {
	if line == g.active {
		return
	}
	g.active = line
	g.AnnounceActiveLineChanged(line)
}

// ActiveLine returns the active line, or a zero LineID if there is none.
func (g *Grid) ActiveLine() subtitle.LineID {
	return g.active
}

// SetSelectedSet atomically replaces the selected set. Sets containing
// lines that are not live in the document are refused; refused and
// content-identical replacements keep the previous set and notify nobody.
func (g *Grid) SetSelectedSet(sel Set) {
	for id := range sel {
		if !g.doc.Valid(id) {
			return
		}
	}
	if sel.Equal(g.selected) {
		return
	}
	g.selected = sel.Copy()
	g.AnnounceSelectedSetChanged(g.selected)
}

// SelectedSet returns a copy of the selected set.
func (g *Grid) SelectedSet() Set {
	return g.selected.Copy()
}

// NextLine moves the active line to its successor in display order. At the
// last line, or when no line is active, nothing changes.
func (g *Grid) NextLine() {
	g.moveTo(g.doc.After(g.active))
}

// PrevLine moves the active line to its predecessor in display order. At
// the first line, or when no line is active, nothing changes.
func (g *Grid) PrevLine() {
	g.moveTo(g.doc.Before(g.active))
}

// DropLine clears a removed line out of the active/selected state. The
// integration layer calls this when the document drops a line; the active
// line falls back to a surviving neighbor determined before the removal.
func (g *Grid) DropLine(removed, fallback subtitle.LineID) {
	if g.selected.Contains(removed) {
		next := g.selected.Copy()
		next.Remove(removed)
		g.selected = next
		g.AnnounceSelectedSetChanged(g.selected)
	}
	if g.active == removed {
		g.active = fallback
		g.AnnounceActiveLineChanged(g.active)
	}
}

func (g *Grid) moveTo(neighbor subtitle.LineID) {
	if neighbor.IsZero() {
		return
	}
	g.active = neighbor
	g.AnnounceActiveLineChanged(neighbor)

	// Successful navigation always collapses the selected set to the new
	// active line and announces it, even if the set already was exactly
	// that singleton.
	g.selected = NewSet(neighbor)
	g.AnnounceSelectedSetChanged(g.selected)
}
