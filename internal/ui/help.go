package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelpContent builds the key reference shown in the pager
func renderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder

	help.WriteString(titleStyle.Render("subgrip Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render("↑/↓, j/k"), descStyle.Render("Previous/next line")))
	help.WriteString(fmt.Sprintf("  %s       %s\n", keyStyle.Render("g/G"), descStyle.Render("Go to first/last line")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Selection"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s        %s\n", keyStyle.Render("Space"), descStyle.Render("Toggle line in selection")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("a"), descStyle.Render("Select all lines")))
	help.WriteString(fmt.Sprintf("  %s      %s\n", keyStyle.Render("A, Esc"), descStyle.Render("Collapse selection to the active line")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Editing"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("e"), descStyle.Render("Edit timing of the active line")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("t"), descStyle.Render("Edit text of the active line")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("T"), descStyle.Render("Shift selected lines by milliseconds")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("c"), descStyle.Render("Toggle comment on selected lines")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("o"), descStyle.Render("Insert a line after the active one")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("d"), descStyle.Render("Delete selected lines")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("File"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("s"), descStyle.Render("Save")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("R"), descStyle.Render("Reload after the file changed on disk")))
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("v"), descStyle.Render("Preview the file as it would be saved")))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(fmt.Sprintf("  %s            %s\n", keyStyle.Render("?"), descStyle.Render("This help")))
	help.WriteString(fmt.Sprintf("  %s            %s", keyStyle.Render("q"), descStyle.Render("Quit")))

	return help.String()
}
