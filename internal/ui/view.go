package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"subgrip/internal/subtitle"
)

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	// Title with file name and dirty marker
	name := filepath.Base(m.doc.Path())
	if name == "." || name == "" {
		name = "(untitled)"
	}
	title := m.styles.Title.Render("subgrip") + " " + m.styles.Dim.Render(name)
	if m.doc.Dirty() {
		title += " " + m.styles.DirtyMark.Render("*")
	}
	b.WriteString(title)
	b.WriteString("\n")

	b.WriteString(m.styles.Dim.Render(fmt.Sprintf("  %4s  %-11s  %-11s  %s", "#", "start", "end", "text")))
	b.WriteString("\n")

	m.renderGrid(&b)

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("j/k move · space select · e timing · t text · T shift · d delete · s save · ? help · q quit"))

	return b.String()
}

// renderGrid writes the visible window of dialogue lines
func (m *Model) renderGrid(b *strings.Builder) {
	ids := m.doc.Lines()
	if len(ids) == 0 {
		b.WriteString(m.styles.Dim.Render("  (empty document — press o to insert a line)"))
		b.WriteString("\n")
		return
	}

	if m.viewOffset > 0 {
		b.WriteString(m.styles.Scroll.Render("  ↑ (more above)"))
		b.WriteString("\n")
	}

	end := m.viewOffset + m.viewHeight
	if end > len(ids) {
		end = len(ids)
	}

	for i := m.viewOffset; i < end; i++ {
		b.WriteString(m.renderRow(i, ids[i]))
		b.WriteString("\n")
	}

	if end < len(ids) {
		b.WriteString(m.styles.Scroll.Render("  ↓ (more below)"))
		b.WriteString("\n")
	}
}

func (m *Model) renderRow(idx int, id subtitle.LineID) string {
	line := m.doc.Line(id)
	if line == nil {
		return ""
	}

	marker := " "
	if id == m.active {
		marker = "▶"
	}
	selMark := " "
	if m.selected.Contains(id) {
		selMark = m.styles.SelectedRow.Render("●")
	}

	text := strings.ReplaceAll(line.Text, "\\N", " | ")
	if m.config.UISettings.ShowActorColumn && line.Actor != "" {
		text = line.Actor + ": " + text
	}
	maxText := m.width - 38
	if maxText < 8 {
		maxText = 8
	}
	if runes := []rune(text); len(runes) > maxText {
		text = string(runes[:maxText-1]) + "…"
	}

	number := fmt.Sprintf("%4d", idx+1)
	if !m.config.UISettings.ShowLineNumbers {
		number = "    "
	}
	row := fmt.Sprintf("%s%s %s  %-11s  %-11s  %s",
		marker, selMark, number,
		m.styles.Timing.Render(line.Start.String()),
		m.styles.Timing.Render(line.End.String()),
		text)

	switch {
	case id == m.active:
		return m.styles.ActiveRow.Render(row)
	case line.Comment:
		return m.styles.CommentRow.Render(row)
	default:
		return row
	}
}

// renderStatus renders the status bar, including the edit prompt while an
// edit mode is open
func (m *Model) renderStatus() string {
	switch m.mode {
	case modeEditTiming:
		return m.styles.Prompt.Render("Start (s): ") + m.editor.startField.Input.View() +
			m.styles.Prompt.Render("  End (s): ") + m.editor.endField.Input.View() +
			m.styles.Dim.Render("  tab switches · enter applies · esc cancels")
	case modeEditText:
		return m.styles.Prompt.Render("Text: ") + m.editor.text.View()
	case modeShift:
		return m.styles.Prompt.Render("Shift by (ms): ") + m.editor.shiftField.Input.View() +
			m.styles.Dim.Render("  negative shifts earlier")
	}

	status := m.statusMessage
	if status == "" {
		status = fmt.Sprintf("%d lines · %d selected", m.doc.Len(), len(m.selected))
	}
	if m.statusIsError {
		return m.styles.StatusError.Render(status)
	}
	return m.styles.Status.Render(status)
}
