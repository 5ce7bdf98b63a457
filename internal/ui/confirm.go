package ui

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ConfirmSubmission displays a review box of what is about to be sent and
// prompts for a yes/no answer. Returns true only on an explicit "y"/"yes";
// anything else, including EOF, cancels.
func ConfirmSubmission(out io.Writer, in io.Reader, title string, details []Detail) bool {
	width := GetTerminalWidth()
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	var lines []string

	titleLine := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true).
		Render(fmt.Sprintf("   ⚠  CONFIRM  ─  %s", title))
	lines = append(lines, "", titleLine, "")

	for _, detail := range details {
		keyStyled := ResultKeyStyle.Render(fmt.Sprintf("   %s:", detail.Key))
		valueStyled := ResultValueStyle.Render(detail.Value)
		lines = append(lines, keyStyled+" "+valueStyled)
	}
	lines = append(lines, "")

	box := WarningBoxStyle(width).Render(strings.Join(lines, "\n"))
	fmt.Fprintln(out, box)
	fmt.Fprintln(out)

	promptStyle := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true)
	fmt.Fprint(out, promptStyle.Render("Submit? [y/N]: "))

	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Fprintln(out)
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(input))
	if answer == "y" || answer == "yes" {
		fmt.Fprintln(out)
		return true
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, HintStyle.Render("  Submission cancelled."))
	fmt.Fprintln(out)
	return false
}
