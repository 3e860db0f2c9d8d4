package bench

import (
	"strings"

	"github.com/bastiangx/wordbench/internal/utils"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	wordStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"})
)

// BuildTable renders build reports one row per index.
func BuildTable(reports []BuildReport) string {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			string(r.Kind),
			utils.FormatWithCommas(r.Words),
			utils.FormatWithCommas(r.Stats["nodes"]),
			r.Duration.String(),
			utils.FormatBytes(r.HeapBytes),
		})
	}
	return render([]string{"index", "words", "nodes", "build", "heap"}, rows)
}

// QueryTable renders query reports one row per index.
func QueryTable(reports []QueryReport) string {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		words := make([]string, len(r.Suggestions))
		for i, s := range r.Suggestions {
			words[i] = wordStyle.Render(s.Word)
		}
		rows = append(rows, []string{
			string(r.Kind),
			r.Duration.String(),
			utils.FormatWithCommas(len(r.Suggestions)),
			strings.Join(words, ", "),
		})
	}
	return render([]string{"index", "time", "count", "suggestions"}, rows)
}

func render(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		String()
}
