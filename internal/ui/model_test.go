package ui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"subgrip/internal/config"
	"subgrip/internal/eventbus"
	"subgrip/internal/selection"
	"subgrip/internal/subtitle"
)

const testSRT = `1
00:00:01,000 --> 00:00:02,000
first

2
00:00:03,000 --> 00:00:04,000
second

3
00:00:05,000 --> 00:00:06,000
third
`

func newTestModel(t *testing.T) (*Model, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "movie.srt")
	require.NoError(t, os.WriteFile(path, []byte(testSRT), 0644))

	doc, err := subtitle.LoadSRT(path)
	require.NoError(t, err)

	bus := eventbus.New()
	t.Cleanup(bus.Close)

	cfg := config.Default()
	cfg.UISettings.AutosaveOnExit = false
	svc := config.NewServiceAtPath(filepath.Join(dir, "config.toml"))

	m := NewModel(bus, cfg, svc, doc)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return m, path
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelStartsOnFirstLine(t *testing.T) {
	m, _ := newTestModel(t)

	require.Equal(t, m.doc.First(), m.sel.ActiveLine())
	require.True(t, m.sel.SelectedSet().Contains(m.doc.First()))
}

func TestModelNavigationKeys(t *testing.T) {
	m, _ := newTestModel(t)
	ids := m.doc.Lines()

	m.Update(keyRunes("j"))
	require.Equal(t, ids[1], m.sel.ActiveLine())
	require.True(t, m.sel.SelectedSet().Equal(selection.NewSet(ids[1])), "navigation collapses the selection")

	m.Update(keyRunes("k"))
	require.Equal(t, ids[0], m.sel.ActiveLine())

	m.Update(keyRunes("G"))
	require.Equal(t, ids[2], m.sel.ActiveLine())

	m.Update(keyRunes("g"))
	require.Equal(t, ids[0], m.sel.ActiveLine())
}

func TestModelToggleSelection(t *testing.T) {
	m, _ := newTestModel(t)
	ids := m.doc.Lines()

	// Active line starts selected; space removes it, space adds it back
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	require.False(t, m.sel.SelectedSet().Contains(ids[0]))
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	require.True(t, m.sel.SelectedSet().Contains(ids[0]))

	m.Update(keyRunes("a"))
	require.Len(t, m.sel.SelectedSet(), 3)

	m.Update(keyRunes("A"))
	require.True(t, m.sel.SelectedSet().Equal(selection.NewSet(ids[0])))
}

func TestModelDeleteCollapsesToNeighbor(t *testing.T) {
	m, _ := newTestModel(t)
	ids := m.doc.Lines()

	m.Update(keyRunes("d"))
	require.Equal(t, 2, m.doc.Len())
	require.False(t, m.doc.Valid(ids[0]))
	require.Equal(t, ids[1], m.sel.ActiveLine(), "active line falls to the next survivor")
}

func TestModelTimingEditCommit(t *testing.T) {
	m, _ := newTestModel(t)
	ids := m.doc.Lines()

	m.Update(keyRunes("e"))
	require.Equal(t, modeEditTiming, m.mode)

	m.editor.startField.Input.SetValue("2.5")
	m.editor.endField.Input.SetValue("4")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, modeNormal, m.mode)
	line := m.doc.Line(ids[0])
	require.Equal(t, 2500, line.Start.Milliseconds())
	require.Equal(t, 4000, line.End.Milliseconds())
	require.True(t, m.doc.Dirty())
}

func TestModelTimingEditRejectsBackwardsRange(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(keyRunes("e"))
	m.editor.startField.Input.SetValue("5")
	m.editor.endField.Input.SetValue("2")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, modeEditTiming, m.mode, "invalid range keeps the editor open")
	require.True(t, m.statusIsError)
}

func TestModelTextEditCommit(t *testing.T) {
	m, _ := newTestModel(t)
	ids := m.doc.Lines()

	m.Update(keyRunes("t"))
	require.Equal(t, modeEditText, m.mode)

	m.editor.text.SetValue("rewritten")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, "rewritten", m.doc.Line(ids[0]).Text)
}

func TestModelShiftAppliesToSelection(t *testing.T) {
	m, _ := newTestModel(t)
	ids := m.doc.Lines()

	m.Update(keyRunes("a"))
	m.Update(keyRunes("T"))
	require.Equal(t, modeShift, m.mode)

	m.editor.shiftField.Input.SetValue("-500")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	require.Equal(t, 500, m.doc.Line(ids[0]).Start.Milliseconds())
	require.Equal(t, 2500, m.doc.Line(ids[1]).Start.Milliseconds())
	require.Equal(t, 4500, m.doc.Line(ids[2]).Start.Milliseconds())
}

func TestModelEscCancelsEdit(t *testing.T) {
	m, _ := newTestModel(t)
	ids := m.doc.Lines()

	m.Update(keyRunes("t"))
	m.editor.text.SetValue("discarded")
	m.Update(tea.KeyMsg{Type: tea.KeyEscape})

	require.Equal(t, modeNormal, m.mode)
	require.Equal(t, "first", m.doc.Line(ids[0]).Text)
}

func TestModelFileChangedOnDiskFlow(t *testing.T) {
	m, path := newTestModel(t)

	m.Update(EventMsg{Event: eventbus.FileChangedOnDiskEvent{Path: path}})
	require.True(t, m.pendingReload)

	replacement := "1\n00:00:09,000 --> 00:00:10,000\nreplaced\n"
	require.NoError(t, os.WriteFile(path, []byte(replacement), 0644))

	m.Update(keyRunes("R"))
	require.False(t, m.pendingReload)
	require.Equal(t, 1, m.doc.Len())
	require.Equal(t, "replaced", m.doc.Line(m.doc.First()).Text)
	require.Equal(t, m.doc.First(), m.sel.ActiveLine(), "reload re-activates the first line")
}

func TestModelQuitConfirmWhenDirty(t *testing.T) {
	m, _ := newTestModel(t)

	m.Update(keyRunes("t"))
	m.editor.text.SetValue("dirty now")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.doc.Dirty())

	m.Update(keyRunes("q"))
	require.Equal(t, modeConfirmQuit, m.mode)

	m.Update(keyRunes("n"))
	require.Equal(t, modeNormal, m.mode)
}

func TestModelViewRendersGrid(t *testing.T) {
	m, _ := newTestModel(t)

	out := m.View()
	require.Contains(t, out, "movie.srt")
	require.Contains(t, out, "first")
	require.Contains(t, out, "third")
}
