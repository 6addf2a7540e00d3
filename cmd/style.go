package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ginjaninja78/coverage-report/internal/report"
)

// Terminal colors of the run output. lipgloss drops them when stdout is not
// a terminal.
var (
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A")).Bold(true)
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")).Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	mutedStyle = lipgloss.NewStyle().Faint(true)
)

// resultLine formats one processed file for the terminal.
func resultLine(r report.Result) string {
	name := filepath.Base(r.FilePath)
	if !r.Success {
		return fmt.Sprintf("  %s %s: %v", failStyle.Render("✗"), name, r.Error)
	}

	outputs := make([]string, len(r.OutputFiles))
	for i, out := range r.OutputFiles {
		outputs[i] = filepath.Base(out)
	}

	line := fmt.Sprintf("  %s %s -> %s", okStyle.Render("✓"), name, strings.Join(outputs, ", "))
	if r.Stats.Warnings > 0 {
		return line + " " + warnStyle.Render(fmt.Sprintf("(%d warnings)", r.Stats.Warnings))
	}
	return line + " " + mutedStyle.Render(fmt.Sprintf("(%d records)", r.Stats.RecordsProcessed))
}
