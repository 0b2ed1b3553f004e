package ui

import (
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"subgrip/internal/config"
	"subgrip/internal/eventbus"
	"subgrip/internal/selection"
	"subgrip/internal/subtitle"
)

// mode is the UI input mode
type mode int

const (
	modeNormal mode = iota
	modeEditTiming
	modeEditText
	modeShift
	modeConfirmQuit
)

// Model represents the UI state
type Model struct {
	bus       eventbus.EventBus
	config    *config.Config
	configSvc config.Service

	doc *subtitle.Document
	sel selection.Controller

	// caches maintained through the selection listener callbacks
	active   subtitle.LineID
	selected selection.Set

	width      int
	height     int
	viewOffset int
	viewHeight int

	mode          mode
	editor        *editor
	statusMessage string
	statusIsError bool
	pendingReload bool

	styles *Styles

	// Program reference for terminal management around the pager
	program *tea.Program
}

// NewModel creates a new UI model over an open document
func NewModel(bus eventbus.EventBus, cfg *config.Config, configSvc config.Service, doc *subtitle.Document) *Model {
	m := &Model{
		bus:        bus,
		config:     cfg,
		configSvc:  configSvc,
		doc:        doc,
		selected:   selection.Set{},
		viewHeight: 20, // Will be updated on first WindowSizeMsg
		styles:     NewStyles(),
	}
	m.editor = newEditor()

	grid := selection.NewGrid(doc)
	grid.AddSelectionListener(m)
	m.sel = grid

	// Activate the first line so navigation has a starting point
	first := doc.First()
	if !first.IsZero() {
		grid.SetActiveLine(first)
		grid.SetSelectedSet(selection.NewSet(first))
	}

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// OnActiveLineChanged keeps the cached active line and the viewport in
// sync; part of the selection.Listener interface
func (m *Model) OnActiveLineChanged(line subtitle.LineID) {
	m.active = line
	if idx := m.doc.IndexOf(line); idx >= 0 {
		m.ensureVisible(idx)
	}
}

// OnSelectedSetChanged caches the selected set for rendering; part of the
// selection.Listener interface
func (m *Model) OnSelectedSetChanged(sel selection.Set) {
	m.selected = sel.Copy()
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateViewportHeight()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case EventMsg:
		m.handleEvent(msg.Event)
		return m, nil

	case pagerDoneMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("Pager failed: %v", msg.err))
		}
		return m, nil
	}

	return m, nil
}

// handleKey routes key input by mode
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeEditTiming, modeEditText, modeShift:
		return m.handleEditorKey(msg)
	case modeConfirmQuit:
		return m.handleConfirmQuitKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.requestQuit()

	case "j", "down":
		m.sel.NextLine()

	case "k", "up":
		m.sel.PrevLine()

	case "g", "home":
		m.sel.SetActiveLine(m.doc.First())

	case "G", "end":
		m.sel.SetActiveLine(m.doc.Last())

	case " ":
		m.toggleActiveInSelection()

	case "a":
		m.sel.SetSelectedSet(selection.NewSet(m.doc.Lines()...))
		m.setStatus(fmt.Sprintf("Selected all %d lines", m.doc.Len()))

	case "A", "esc":
		m.sel.SetSelectedSet(selection.NewSet(m.active))

	case "c":
		m.toggleComment()

	case "d":
		m.deleteSelected()

	case "o":
		m.insertLineAfterActive()

	case "e":
		if line := m.doc.Line(m.active); line != nil {
			m.mode = modeEditTiming
			return m, m.editor.startTiming(line)
		}

	case "t":
		if line := m.doc.Line(m.active); line != nil {
			m.mode = modeEditText
			return m, m.editor.startText(line)
		}

	case "T":
		if !m.active.IsZero() {
			m.mode = modeShift
			return m, m.editor.startShift()
		}

	case "s":
		m.save()

	case "R":
		if m.pendingReload {
			m.reload()
		}

	case "v":
		return m, m.showFileInPager()

	case "?":
		return m, m.showHelpInPager()
	}

	return m, nil
}

func (m *Model) handleConfirmQuitKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.persistConfig()
		return m, tea.Quit
	case "s":
		if m.save() {
			m.persistConfig()
			return m, tea.Quit
		}
		m.mode = modeNormal
	default:
		m.mode = modeNormal
		m.setStatus("")
	}
	return m, nil
}

// requestQuit quits immediately on a clean document, otherwise asks or
// autosaves depending on configuration
func (m *Model) requestQuit() (tea.Model, tea.Cmd) {
	if !m.doc.Dirty() {
		m.persistConfig()
		return m, tea.Quit
	}
	if m.config.UISettings.AutosaveOnExit {
		if m.save() {
			m.persistConfig()
			return m, tea.Quit
		}
		return m, nil
	}
	m.mode = modeConfirmQuit
	m.setStatus("Unsaved changes. Quit without saving? (y/n, s saves first)")
	return m, nil
}

// persistConfig writes the config on the way out so UI settings and the
// recent file list survive the session
func (m *Model) persistConfig() {
	if err := m.configSvc.Save(m.config); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
}

// toggleActiveInSelection adds or removes the active line from the
// selected set
func (m *Model) toggleActiveInSelection() {
	if m.active.IsZero() {
		return
	}
	next := m.sel.SelectedSet()
	if next.Contains(m.active) {
		next.Remove(m.active)
	} else {
		next.Add(m.active)
	}
	m.sel.SetSelectedSet(next)
}

// toggleComment flips the comment flag on every line in the selected set
func (m *Model) toggleComment() {
	targets := m.bulkTargets()
	if len(targets) == 0 {
		return
	}
	for _, id := range targets {
		if line := m.doc.Line(id); line != nil {
			line.Comment = !line.Comment
		}
	}
	m.doc.MarkDirty()
	m.setStatus(fmt.Sprintf("Toggled comment on %d line(s)", len(targets)))
}

// deleteSelected removes the selected lines (or the active line when
// nothing is selected) and moves the active line to a surviving neighbor
func (m *Model) deleteSelected() {
	targets := m.bulkTargets()
	if len(targets) == 0 {
		return
	}

	doomed := selection.NewSet(targets...)
	fallback := m.survivorAfter(doomed)

	grid, _ := m.sel.(*selection.Grid)
	for _, id := range targets {
		if m.doc.Remove(id) && grid != nil {
			grid.DropLine(id, fallback)
		}
	}

	m.bus.Publish(eventbus.LinesRemovedEvent{Lines: targets})
	m.setStatus(fmt.Sprintf("Deleted %d line(s)", len(targets)))
	m.clampViewport()
}

// insertLineAfterActive appends an empty line after the active one and
// makes it active
func (m *Model) insertLineAfterActive() {
	var start, end subtitle.Timecode
	if line := m.doc.Line(m.active); line != nil {
		start = line.End
		end = subtitle.NewTimecode(line.End.Milliseconds() + 2000)
	} else {
		end = subtitle.NewTimecode(2000)
	}

	id := m.doc.InsertAfter(m.active, subtitle.Line{
		Start: start,
		End:   end,
		Style: "Default",
	})
	m.sel.SetActiveLine(id)
	m.sel.SetSelectedSet(selection.NewSet(id))
	m.setStatus("Inserted line")
}

// bulkTargets returns the lines a bulk operation applies to: the selected
// set, or the active line when the set is empty, in display order
func (m *Model) bulkTargets() []subtitle.LineID {
	sel := m.sel.SelectedSet()
	if len(sel) == 0 {
		if m.active.IsZero() {
			return nil
		}
		return []subtitle.LineID{m.active}
	}
	ordered := make([]subtitle.LineID, 0, len(sel))
	for _, id := range m.doc.Lines() {
		if sel.Contains(id) {
			ordered = append(ordered, id)
		}
	}
	return ordered
}

// survivorAfter picks the line that should become active once every line
// in doomed is removed: the first survivor after the doomed block, else
// the last one before it
func (m *Model) survivorAfter(doomed selection.Set) subtitle.LineID {
	ids := m.doc.Lines()
	last := -1
	for i, id := range ids {
		if doomed.Contains(id) {
			last = i
		}
	}
	for i := last + 1; i < len(ids); i++ {
		if !doomed.Contains(ids[i]) {
			return ids[i]
		}
	}
	for i := last - 1; i >= 0; i-- {
		if !doomed.Contains(ids[i]) {
			return ids[i]
		}
	}
	return subtitle.LineID{}
}

// save writes the document and reports the outcome in the status bar
func (m *Model) save() bool {
	if err := subtitle.SaveSRT(m.doc); err != nil {
		log.Printf("Save failed: %v", err)
		m.setError(fmt.Sprintf("Save failed: %v", err))
		m.bus.Publish(eventbus.ErrorEvent{Message: "save failed", Err: err})
		return false
	}
	m.bus.Publish(eventbus.DocumentSavedEvent{Path: m.doc.Path()})
	m.setStatus(fmt.Sprintf("Saved %s", m.doc.Path()))
	return true
}

// reload re-reads the document from disk, replacing the current session
func (m *Model) reload() {
	doc, err := subtitle.LoadSRT(m.doc.Path())
	if err != nil {
		m.setError(fmt.Sprintf("Reload failed: %v", err))
		m.bus.Publish(eventbus.ErrorEvent{Message: "reload failed", Err: err})
		return
	}

	m.doc = doc
	m.active = subtitle.LineID{}
	m.selected = selection.Set{}
	m.pendingReload = false

	grid := selection.NewGrid(doc)
	grid.AddSelectionListener(m)
	m.sel = grid
	if first := doc.First(); !first.IsZero() {
		grid.SetActiveLine(first)
		grid.SetSelectedSet(selection.NewSet(first))
	}

	m.viewOffset = 0
	m.bus.Publish(eventbus.DocumentLoadedEvent{Path: doc.Path(), Lines: doc.Len()})
	m.setStatus(fmt.Sprintf("Reloaded %s (%d lines)", doc.Path(), doc.Len()))
}

// handleEvent processes domain events forwarded from the bus
func (m *Model) handleEvent(event eventbus.DomainEvent) {
	switch e := event.(type) {
	case eventbus.FileChangedOnDiskEvent:
		m.pendingReload = true
		m.setStatus(fmt.Sprintf("%s changed on disk. Press R to reload.", e.Path))
	case eventbus.ErrorEvent:
		m.setError(e.Message)
	}
}

func (m *Model) setStatus(s string) {
	m.statusMessage = s
	m.statusIsError = false
}

func (m *Model) setError(s string) {
	m.statusMessage = s
	m.statusIsError = true
}

func (m *Model) updateViewportHeight() {
	// Reserve space for title, column header, status bar and help line
	effectiveHeight := m.height - 7
	if effectiveHeight < 1 {
		effectiveHeight = 1
	}
	m.viewHeight = effectiveHeight
	m.clampViewport()
	if idx := m.doc.IndexOf(m.active); idx >= 0 {
		m.ensureVisible(idx)
	}
}

// ensureVisible scrolls the viewport so the given row index is on screen
func (m *Model) ensureVisible(idx int) {
	if idx < m.viewOffset {
		m.viewOffset = idx
	} else if idx >= m.viewOffset+m.viewHeight {
		m.viewOffset = idx - m.viewHeight + 1
	}
}

func (m *Model) clampViewport() {
	max := m.doc.Len() - m.viewHeight
	if max < 0 {
		max = 0
	}
	if m.viewOffset > max {
		m.viewOffset = max
	}
	if m.viewOffset < 0 {
		m.viewOffset = 0
	}
}
