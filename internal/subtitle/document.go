package subtitle

// LineID is a generation-checked handle to a dialogue line. Holding an ID
// never keeps a line alive: when the line is removed from its document the
// slot's generation is bumped and the ID goes stale. The zero value means
// "no line".
type LineID struct {
	slot int
	gen  uint32
}

// IsZero reports whether the handle refers to no line at all.
func (id LineID) IsZero() bool {
	return id == LineID{}
}

// Line is one dialogue event. Fields mirror what dialogue-based subtitle
// formats store; SRT only uses Start, End and Text.
type Line struct {
	Start   Timecode
	End     Timecode
	Style   string
	Actor   string
	Text    string
	Comment bool // commented-out lines are skipped on export

	MarginL int
	MarginR int
	MarginV int
}

type slot struct {
	line Line
	gen  uint32
	live bool
}

// Document holds an ordered collection of dialogue lines. Lines live in an
// arena of slots; the display order is a separate slice of slot indices so
// handles stay valid across reordering. Documents are not safe for
// concurrent use; all access happens on the UI goroutine.
type Document struct {
	slots []slot
	order []int // slot indices in display order
	path  string
	dirty bool
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// Path returns the file the document was loaded from, if any.
func (d *Document) Path() string { return d.path }

// SetPath records the file the document is bound to.
func (d *Document) SetPath(path string) { d.path = path }

// Dirty reports whether the document has unsaved changes.
func (d *Document) Dirty() bool { return d.dirty }

// MarkSaved clears the dirty flag after a successful save.
func (d *Document) MarkSaved() { d.dirty = false }

// MarkDirty flags the document as having unsaved changes. Callers that
// mutate a line through the pointer returned by Line must call this.
func (d *Document) MarkDirty() { d.dirty = true }

// Len returns the number of live lines.
func (d *Document) Len() int {
	return len(d.order)
}

// Append adds a line at the end of the document and returns its handle.
func (d *Document) Append(line Line) LineID {
	idx := d.alloc(line)
	d.order = append(d.order, idx)
	d.dirty = true
	return LineID{slot: idx, gen: d.slots[idx].gen}
}

// InsertAfter adds a line immediately after the given one. A zero or stale
// handle inserts at the end.
func (d *Document) InsertAfter(after LineID, line Line) LineID {
	pos := d.position(after)
	if pos < 0 {
		return d.Append(line)
	}
	idx := d.alloc(line)
	d.order = append(d.order, 0)
	copy(d.order[pos+2:], d.order[pos+1:])
	d.order[pos+1] = idx
	d.dirty = true
	return LineID{slot: idx, gen: d.slots[idx].gen}
}

// Remove deletes a line. The slot generation is bumped so outstanding
// handles to the line become stale. Removing a stale or zero handle is a
// no-op and returns false.
func (d *Document) Remove(id LineID) bool {
	pos := d.position(id)
	if pos < 0 {
		return false
	}
	d.slots[id.slot].live = false
	d.slots[id.slot].gen++
	d.order = append(d.order[:pos], d.order[pos+1:]...)
	d.dirty = true
	return true
}

// Line resolves a handle to the line it refers to. Stale and zero handles
// resolve to nil. The returned pointer is owned by the document; callers
// that write through it must MarkDirty.
func (d *Document) Line(id LineID) *Line {
	if !d.valid(id) {
		return nil
	}
	return &d.slots[id.slot].line
}

// Valid reports whether the handle refers to a live line.
func (d *Document) Valid(id LineID) bool {
	return d.valid(id)
}

// Lines returns handles for every live line in display order.
func (d *Document) Lines() []LineID {
	ids := make([]LineID, len(d.order))
	for i, idx := range d.order {
		ids[i] = LineID{slot: idx, gen: d.slots[idx].gen}
	}
	return ids
}

// First returns the first line, or a zero handle for an empty document.
func (d *Document) First() LineID {
	if len(d.order) == 0 {
		return LineID{}
	}
	idx := d.order[0]
	return LineID{slot: idx, gen: d.slots[idx].gen}
}

// Last returns the last line, or a zero handle for an empty document.
func (d *Document) Last() LineID {
	if len(d.order) == 0 {
		return LineID{}
	}
	idx := d.order[len(d.order)-1]
	return LineID{slot: idx, gen: d.slots[idx].gen}
}

// After returns the line following id in display order, or a zero handle if
// id is the last line, stale, or zero.
func (d *Document) After(id LineID) LineID {
	pos := d.position(id)
	if pos < 0 || pos+1 >= len(d.order) {
		return LineID{}
	}
	idx := d.order[pos+1]
	return LineID{slot: idx, gen: d.slots[idx].gen}
}

// Before returns the line preceding id in display order, or a zero handle
// if id is the first line, stale, or zero.
func (d *Document) Before(id LineID) LineID {
	pos := d.position(id)
	if pos <= 0 {
		return LineID{}
	}
	idx := d.order[pos-1]
	return LineID{slot: idx, gen: d.slots[idx].gen}
}

// IndexOf returns the display position of a line, or -1 for stale and zero
// handles.
func (d *Document) IndexOf(id LineID) int {
	return d.position(id)
}

func (d *Document) alloc(line Line) int {
	for i := range d.slots {
		if !d.slots[i].live {
			d.slots[i].line = line
			d.slots[i].live = true
			return i
		}
	}
	d.slots = append(d.slots, slot{line: line, gen: 1, live: true})
	return len(d.slots) - 1
}

func (d *Document) valid(id LineID) bool {
	return id.slot >= 0 && id.slot < len(d.slots) &&
		d.slots[id.slot].live && d.slots[id.slot].gen == id.gen
}

func (d *Document) position(id LineID) int {
	if !d.valid(id) {
		return -1
	}
	for i, idx := range d.order {
		if idx == id.slot {
			return i
		}
	}
	return -1
}
