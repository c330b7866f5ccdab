package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	rcore "github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
)

var rankColors = map[string]lipgloss.Color{
	"S": lipgloss.Color("226"),
	"A": lipgloss.Color("46"),
	"B": lipgloss.Color("39"),
	"C": lipgloss.Color("208"),
	"D": lipgloss.Color("196"),
	"F": lipgloss.Color("245"),
}

// Accuracy returns the share of judged notes that were hit, in percent.
func Accuracy(g rcore.GameScore) float64 {
	if g.Judged() == 0 {
		return 0
	}
	return float64(g.Perfect+g.Great) / float64(g.Judged()) * 100
}

// resultsView renders the end-of-song panel.
func resultsView(song rcore.Song, score rcore.GameScore, replayID int64, saveErr error, width int) string {
	rank := score.Rank()
	rankStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(rankColors[rank]).
		Padding(0, 2)

	var body strings.Builder
	body.WriteString(titleStyle.Render(song.Title))
	body.WriteString("\n")
	body.WriteString(dimStyle.Render(fmt.Sprintf("%s  %s", song.Genre, song.Difficulty)))
	body.WriteString("\n\n")
	body.WriteString(rankStyle.Render("RANK " + rank))
	body.WriteString("\n\n")

	rows := [][2]string{
		{"Score", fmt.Sprintf("%d", score.Score)},
		{"Max combo", fmt.Sprintf("%d", score.MaxCombo)},
		{"Perfect", fmt.Sprintf("%d", score.Perfect)},
		{"Great", fmt.Sprintf("%d", score.Great)},
		{"Miss", fmt.Sprintf("%d", score.Miss)},
		{"Accuracy", fmt.Sprintf("%.1f%%", Accuracy(score))},
	}
	for _, r := range rows {
		body.WriteString(fmt.Sprintf("%-10s %8s\n", r[0], r[1]))
	}

	switch {
	case saveErr != nil:
		body.WriteString("\n" + errorStyle.Render("replay not saved: "+saveErr.Error()))
	case replayID > 0:
		body.WriteString("\n" + dimStyle.Render(fmt.Sprintf("saved as replay #%d", replayID)))
	}

	body.WriteString("\n\n" + dimStyle.Render("r: retry  enter: back  ctrl+c: quit"))

	panel := panelStyle.Render(body.String())
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, panel)
}
