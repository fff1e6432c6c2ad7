// Package report renders training results for the terminal using lipgloss.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/souqrisk/souqrisk/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#95E1D3"))

	goodStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// aucFloor is where the AUC readout switches from warning to good.
const aucFloor = 0.7

// Render formats a training report as styled terminal text.
func Render(r model.TrainingReport) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Training Report"))
	b.WriteString("\n")
	b.WriteString(subtleStyle.Render(fmt.Sprintf(
		"train=%d test=%d positives=%d negatives=%d",
		r.TrainSize, r.TestSize, r.Positives, r.Negatives)))
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-12s %10s %10s %10s %9s",
		"class", "precision", "recall", "f1", "support")))
	b.WriteString("\n")
	b.WriteString(classRow("normal", r.Normal))
	b.WriteString("\n")
	b.WriteString(classRow("suspicious", r.Suspicious))
	b.WriteString("\n\n")

	auc := fmt.Sprintf("ROC AUC: %.4f", r.ROCAUC)
	if r.ROCAUC >= aucFloor {
		b.WriteString(goodStyle.Render(auc))
	} else {
		b.WriteString(warnStyle.Render(auc))
	}
	b.WriteString("\n")

	return b.String()
}

func classRow(name string, m model.ClassMetrics) string {
	return fmt.Sprintf("%-12s %10.3f %10.3f %10.3f %9d",
		name, m.Precision, m.Recall, m.F1, m.Support)
}
