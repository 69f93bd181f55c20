package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/cobolgraph/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for failures.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleHeader = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconSkipped = "–"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints a detail line (indented).
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Batch Summary
// =============================================================================

// summaryHeaders are the columns of the batch summary table.
var summaryHeaders = []string{"", "Unit", "Program", "Paragraphs", "Edges", "Unresolved", "Exits", "Unused vars", "Result"}

// summaryRows converts s into table rows, one per unit, in input order.
func summaryRows(s *pipeline.Summary) [][]string {
	rows := make([][]string, 0, len(s.Units))
	for _, u := range s.Units {
		var icon, result string
		switch u.Status {
		case pipeline.StatusOK:
			icon, result = iconSuccess, "ok"
			if u.Cached {
				result = "cached"
			}
		case pipeline.StatusFailed:
			icon, result = iconError, string(u.Code)
		default:
			icon, result = iconSkipped, "skipped"
		}
		row := []string{icon, u.Unit, u.ProgramID, "", "", "", "", "", result}
		if u.Status == pipeline.StatusOK {
			row[3] = strconv.Itoa(u.Paragraphs)
			row[4] = strconv.Itoa(u.Edges)
			row[5] = strconv.Itoa(u.Unresolved)
			row[6] = strconv.Itoa(u.Exits)
			row[7] = strconv.Itoa(u.Unused)
		}
		rows = append(rows, row)
	}
	return rows
}

// summaryTable renders s as a bordered table.
func summaryTable(s *pipeline.Summary) string {
	rows := summaryRows(s)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(summaryHeaders...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(s.Units) {
				return base
			}
			switch s.Units[row].Status {
			case pipeline.StatusFailed:
				if col == 0 || col == len(summaryHeaders)-1 {
					return base.Foreground(colorRed)
				}
				return base.Foreground(colorDim)
			case pipeline.StatusSkipped:
				return base.Foreground(colorDim)
			}
			if col == 0 {
				return base.Foreground(colorGreen)
			}
			if col >= 3 && col <= 7 {
				return base.Foreground(colorCyan)
			}
			return base
		})
	return t.Render()
}

// printSummary prints the batch table followed by a one-line tally.
func printSummary(s *pipeline.Summary) {
	fmt.Println(summaryTable(s))

	tally := StyleSuccess.Render(fmt.Sprintf("%d ok", s.OK))
	if s.Failed > 0 {
		tally += StyleDim.Render(" · ") + StyleError.Render(fmt.Sprintf("%d failed", s.Failed))
	}
	if s.Skipped > 0 {
		tally += StyleDim.Render(" · ") + StyleWarning.Render(fmt.Sprintf("%d skipped", s.Skipped))
	}
	fmt.Println("  " + tally + StyleDim.Render(fmt.Sprintf(" · run %s", s.RunID)))
}
