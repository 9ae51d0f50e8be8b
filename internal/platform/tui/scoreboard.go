package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			MarginBottom(1)
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(1, 2)
)

// scoreColumns lists the leaderboard columns.
func scoreColumns() []table.Column {
	return []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 6},
		{Title: "NG", Width: 6},
		{Title: "Rounds", Width: 7},
		{Title: "End", Width: 10},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 13},
	}
}

// ScoreRows converts runs into leaderboard rows.
func ScoreRows(runs []storage.RunEntry) []table.Row {
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			fmt.Sprintf("%d/%d", r.NGCount, r.MaxNG),
			fmt.Sprintf("%d", r.Rounds),
			strings.ReplaceAll(r.EndReason, "_", " "),
			r.Duration.Round(time.Second).String(),
			r.CreatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	return rows
}

// newScoreTable creates the leaderboard table sized to fit every row.
func newScoreTable(runs []storage.RunEntry) table.Model {
	t := table.New(
		table.WithColumns(scoreColumns()),
		table.WithRows(ScoreRows(runs)),
		table.WithHeight(len(runs)+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	// Printed once, so no row is highlighted.
	s.Selected = lipgloss.NewStyle()
	t.SetStyles(s)

	return t
}

// RenderScores renders the leaderboard and aggregate stats for one-shot
// output.
func RenderScores(runs []storage.RunEntry, stats *storage.Stats) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("SNAKE HIGH SCORES"))
	b.WriteString("\n")

	if len(runs) == 0 {
		b.WriteString(boxStyle.Render(emptyStyle.Render("No runs recorded yet.\nPlay a game to set a high score!")))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(boxStyle.Render(newScoreTable(runs).View()))
	b.WriteString("\n")

	if stats != nil {
		b.WriteString(renderStats(stats))
		b.WriteString("\n")
	}
	return b.String()
}

func renderStats(s *storage.Stats) string {
	lines := []string{
		fmt.Sprintf("Runs:        %d (%d won)", s.Runs, s.Wins),
		fmt.Sprintf("High score:  %d", s.HighScore),
		fmt.Sprintf("Avg score:   %.1f", s.AvgScore),
		fmt.Sprintf("Rounds:      %d", s.TotalRounds),
		fmt.Sprintf("Time played: %s", s.TotalTime.Round(time.Second)),
	}
	if !s.LastPlayed.IsZero() {
		lines = append(lines, fmt.Sprintf("Last played: %s", s.LastPlayed.Local().Format("Jan 02 15:04")))
	}
	return statusStyle.Render(strings.Join(lines, "\n"))
}
