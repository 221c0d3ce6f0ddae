// Package report renders the human-readable audit report.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/okanv/sitelint/internal/model"
)

// topIssueCount is the size of the ranked issue slice shown in full.
const topIssueCount = 10

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	goodStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	badStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
)

// Render writes the ranked report for res to w: counts, the top issues with
// ERROR before WARN (stable otherwise), a remainder count, and the final
// floored score.
func Render(w io.Writer, res *model.AuditResult) error {
	rule := strings.Repeat("=", 50)

	var b strings.Builder
	b.WriteString(rule + "\n")
	b.WriteString(headerStyle.Render("LINK AUDIT REPORT") + "\n")
	b.WriteString(rule + "\n")

	base := res.BaseURL
	if base == "" {
		base = "(none)"
	}
	fmt.Fprintf(&b, "Base URL: %s\n", base)
	if len(res.Keywords) > 0 {
		fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(res.Keywords, ", "))
	}
	fmt.Fprintf(&b, "Files Scanned: %d\n", res.DocumentCount)
	fmt.Fprintf(&b, "External Links: %d\n", res.ExternalLinkCount)

	if len(res.Issues) > 0 {
		b.WriteString("\nTop Issues:\n")
		ranked := make([]model.Issue, len(res.Issues))
		copy(ranked, res.Issues)
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].Level == model.LevelError && ranked[j].Level != model.LevelError
		})

		shown := min(len(ranked), topIssueCount)
		for i, issue := range ranked[:shown] {
			style := warnStyle
			if issue.Level == model.LevelError {
				style = errorStyle
			}
			line := fmt.Sprintf("[%s] %s: %s", issue.Level, issue.Context, issue.Message)
			fmt.Fprintf(&b, "%d. %s\n", i+1, style.Render(line))
		}
		if rest := len(ranked) - shown; rest > 0 {
			fmt.Fprintf(&b, "%s\n", faintStyle.Render(fmt.Sprintf("... and %d more issues.", rest)))
		}
	}

	b.WriteString("\n" + strings.Repeat("-", 50) + "\n")
	fmt.Fprintf(&b, "FINAL SCORE: %s\n", scoreStyle(res.Score).Render(fmt.Sprintf("%d/100", res.Score)))
	b.WriteString(strings.Repeat("-", 50) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= 90:
		return goodStyle
	case score >= 70:
		return okStyle
	default:
		return badStyle
	}
}
