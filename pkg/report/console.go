package report

import (
	"fmt"
	"io"
	"strings"

	"rfm-segment/pkg/calculator"
	"rfm-segment/pkg/models"

	"github.com/charmbracelet/lipgloss"
)

const barWidth = 40

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("7")) // gray
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
)

// couleur des barres : vert pour "Focus", bleu pour "General", magenta pour High-Value
func barStyle(s models.Segment) lipgloss.Style {
	switch {
	case s == models.HighValue:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	case strings.HasPrefix(string(s), "Focus"):
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	}
}

// ConsoleFormatter affiche le graphique de fréquence des segments et
// l'analyse descriptive.
type ConsoleFormatter struct {
	Lang     string
	Describe bool
}

// Format écrit le rapport console.
func (c ConsoleFormatter) Format(w io.Writer, res *calculator.Result) error {
	var b strings.Builder

	b.WriteString(titleStyle.Render(c.title()) + "\n\n")

	labelWidth := 0
	maxCount := 0
	for _, e := range res.Summary {
		labelWidth = max(labelWidth, lipgloss.Width(e.Segment.Label(c.Lang)))
		maxCount = max(maxCount, e.Count)
	}
	for _, e := range res.Summary {
		n := 0
		if maxCount > 0 {
			n = max(1, e.Count*barWidth/maxCount)
		}
		label := labelStyle.Width(labelWidth).Render(e.Segment.Label(c.Lang))
		bar := barStyle(e.Segment).Render(strings.Repeat("█", n))
		fmt.Fprintf(&b, "%s  %s %d (%.2f%%)\n", label, bar, e.Count, e.Percentage)
	}

	th := res.Thresholds
	b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("references R=%.2f F=%.2f M=%.2f | rows=%d",
		th.Recency, th.Frequency, th.Monetary, len(res.Segmented))) + "\n")

	if c.Describe && len(res.Profiles) > 0 {
		b.WriteString("\n" + titleStyle.Render(c.describeTitle()) + "\n\n")
		header := fmt.Sprintf("%s  %6s  %6s  %6s  %6s  %6s", lipgloss.NewStyle().Width(labelWidth).Render(""), "count", "R", "F", "M", "RFM")
		b.WriteString(dimStyle.Render(header) + "\n")
		for _, p := range res.Profiles {
			fmt.Fprintf(&b, "%s  %6d  %6.2f  %6.2f  %6.2f  %6.2f\n",
				labelStyle.Width(labelWidth).Render(p.Segment.Label(c.Lang)),
				p.Count, p.RMean, p.FMean, p.MMean, p.RFMMean)
		}
	}

	if len(res.Warnings) > 0 {
		b.WriteString("\n" + warnStyle.Render(fmt.Sprintf("%d non-numeric value(s) scored 0", len(res.Warnings))) + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (c ConsoleFormatter) title() string {
	if c.Lang == "zh" {
		return "RFM 用户组别频次图"
	}
	return "RFM segment frequency"
}

func (c ConsoleFormatter) describeTitle() string {
	if c.Lang == "zh" {
		return "RFM描述分析"
	}
	return "RFM descriptive analysis"
}
