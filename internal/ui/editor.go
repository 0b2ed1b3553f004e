package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"subgrip/internal/eventbus"
	"subgrip/internal/subtitle"
	"subgrip/internal/ui/input/numeric"
)

// editor holds the widgets for the line edit modes. The timing and shift
// widgets are numeric-masked fields bound to the variables below; the
// transfer step moves values between widget and variable on commit.
type editor struct {
	startSec   float64
	endSec     float64
	startField *numeric.Field
	endField   *numeric.Field
	focusEnd   bool

	text textinput.Model

	shiftMs    int
	shiftField *numeric.Field
}

func newEditor() *editor {
	e := &editor{}
	e.startField = numeric.NewFloatField(&e.startSec, false)
	e.startField.Input.Placeholder = "start"
	e.startField.Input.Width = 10
	e.endField = numeric.NewFloatField(&e.endSec, false)
	e.endField.Input.Placeholder = "end"
	e.endField.Input.Width = 10
	e.shiftField = numeric.NewIntField(&e.shiftMs, true)
	e.shiftField.Input.Placeholder = "milliseconds"
	e.shiftField.Input.Width = 12
	e.text = textinput.New()
	e.text.Placeholder = "dialogue text"
	return e
}

// startTiming loads a line's timing into the edit fields, in seconds
func (e *editor) startTiming(line *subtitle.Line) tea.Cmd {
	e.startSec = float64(line.Start.Milliseconds()) / 1000
	e.endSec = float64(line.End.Milliseconds()) / 1000
	e.startField.TransferToWidget()
	e.endField.TransferToWidget()
	e.focusEnd = false
	e.endField.Input.Blur()
	return e.startField.Input.Focus()
}

// startText loads a line's text into the text widget
func (e *editor) startText(line *subtitle.Line) tea.Cmd {
	e.text.SetValue(line.Text)
	e.text.CursorEnd()
	return e.text.Focus()
}

// startShift resets the shift amount widget
func (e *editor) startShift() tea.Cmd {
	e.shiftMs = 0
	e.shiftField.Input.Reset()
	return e.shiftField.Input.Focus()
}

func (e *editor) blurAll() {
	e.startField.Input.Blur()
	e.endField.Input.Blur()
	e.text.Blur()
	e.shiftField.Input.Blur()
}

// handleEditorKey processes key input while one of the edit modes is open
func (m *Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.editor.blurAll()
		m.mode = modeNormal
		m.setStatus("")
		return m, nil

	case "tab", "shift+tab":
		if m.mode == modeEditTiming {
			m.editor.focusEnd = !m.editor.focusEnd
			if m.editor.focusEnd {
				m.editor.startField.Input.Blur()
				return m, m.editor.endField.Input.Focus()
			}
			m.editor.endField.Input.Blur()
			return m, m.editor.startField.Input.Focus()
		}

	case "enter":
		return m.commitEditor()
	}

	var cmd tea.Cmd
	switch m.mode {
	case modeEditTiming:
		if m.editor.focusEnd {
			m.editor.endField.Input, cmd = m.editor.endField.Input.Update(msg)
		} else {
			m.editor.startField.Input, cmd = m.editor.startField.Input.Update(msg)
		}
	case modeEditText:
		m.editor.text, cmd = m.editor.text.Update(msg)
	case modeShift:
		m.editor.shiftField.Input, cmd = m.editor.shiftField.Input.Update(msg)
	}
	return m, cmd
}

// commitEditor applies the open edit to the document
func (m *Model) commitEditor() (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeEditTiming:
		if err := m.editor.startField.TransferFromWidget(); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		if err := m.editor.endField.TransferFromWidget(); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		if m.editor.endSec <= m.editor.startSec {
			m.setError("End time must be after start time")
			return m, nil
		}
		line := m.doc.Line(m.active)
		if line == nil {
			m.editor.blurAll()
			m.mode = modeNormal
			return m, nil
		}
		line.Start = subtitle.NewTimecode(int(m.editor.startSec*1000 + 0.5))
		line.End = subtitle.NewTimecode(int(m.editor.endSec*1000 + 0.5))
		m.doc.MarkDirty()
		m.bus.Publish(eventbus.LineEditedEvent{Line: m.active})
		m.setStatus(fmt.Sprintf("Timing set to %s - %s", line.Start, line.End))

	case modeEditText:
		line := m.doc.Line(m.active)
		if line != nil {
			line.Text = m.editor.text.Value()
			m.doc.MarkDirty()
			m.bus.Publish(eventbus.LineEditedEvent{Line: m.active})
			m.setStatus("Text updated")
		}

	case modeShift:
		if err := m.editor.shiftField.TransferFromWidget(); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		targets := m.bulkTargets()
		for _, id := range targets {
			line := m.doc.Line(id)
			if line == nil {
				continue
			}
			line.Start = subtitle.NewTimecode(line.Start.Milliseconds() + m.editor.shiftMs)
			line.End = subtitle.NewTimecode(line.End.Milliseconds() + m.editor.shiftMs)
			m.bus.Publish(eventbus.LineEditedEvent{Line: id})
		}
		if len(targets) > 0 {
			m.doc.MarkDirty()
		}
		m.setStatus(fmt.Sprintf("Shifted %d line(s) by %d ms", len(targets), m.editor.shiftMs))
	}

	m.editor.blurAll()
	m.mode = modeNormal
	return m, nil
}
