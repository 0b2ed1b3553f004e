package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"subgrip/internal/subtitle"
)

// showHelpInPager opens the key reference in the ov pager
func (m *Model) showHelpInPager() tea.Cmd {
	return m.runPager(renderHelpContent())
}

// showFileInPager shows the document as it would be saved
func (m *Model) showFileInPager() tea.Cmd {
	var sb strings.Builder
	if err := subtitle.WriteSRT(&sb, m.doc); err != nil {
		m.setError(fmt.Sprintf("Preview failed: %v", err))
		return nil
	}
	return m.runPager(sb.String())
}

// runPager releases the terminal, runs ov over the content, and restores
// the terminal when the pager exits
func (m *Model) runPager(content string) tea.Cmd {
	program := m.program
	return func() tea.Msg {
		if program == nil {
			return pagerDoneMsg{err: fmt.Errorf("program not set")}
		}

		if err := program.ReleaseTerminal(); err != nil {
			return pagerDoneMsg{err: err}
		}

		// Ensure the terminal is restored even if ov fails
		defer func() {
			// Small delay so ov has fully exited before restoring
			time.Sleep(100 * time.Millisecond)
			_ = program.RestoreTerminal()
		}()

		root, err := oviewer.NewRoot(strings.NewReader(content))
		if err != nil {
			return pagerDoneMsg{err: err}
		}

		// Do not let ov write the buffer to the screen on exit
		config := oviewer.NewConfig()
		config.IsWriteOnExit = false
		config.IsWriteOriginal = false
		root.SetConfig(config)

		return pagerDoneMsg{err: root.Run()}
	}
}
