package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AdrianoCalmon/Bit-Hero/internal/games/rhythm/core"
	"github.com/AdrianoCalmon/Bit-Hero/internal/platform/tui"
	"github.com/AdrianoCalmon/Bit-Hero/internal/registry"
)

var flagListDifficulty string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available songs",
	Long: `Shows the built-in songs, the charts imported into the library and
the charts found in the --charts directory.

Examples:
  bithero list
  bithero list --difficulty easy
  bithero list --charts ./charts`,
	Run: run(runList),
}

func init() {
	listCmd.Flags().StringVar(&flagListDifficulty, "difficulty", "", "Only show songs of this difficulty: easy, medium, hard")
}

func runList(_ *cobra.Command, _ []string) error {
	var (
		want   core.Difficulty
		filter bool
	)
	if flagListDifficulty != "" {
		d, ok := core.ParseDifficulty(flagListDifficulty)
		if !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, medium or hard)", flagListDifficulty)
		}
		want, filter = d, true
	}

	a, err := setup(logStderr)
	if err != nil {
		return err
	}
	defer a.Close()

	type row struct {
		pos  int // 1-based position, so "play <n>" matches what is shown
		info registry.SongInfo
	}
	var rows []row
	for i, s := range registry.List() {
		if filter && s.Difficulty != want {
			continue
		}
		rows = append(rows, row{pos: i + 1, info: s})
	}

	if len(rows) == 0 {
		fmt.Println("No songs available.")
		return nil
	}

	fmt.Println("Available songs:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, r := range rows {
		maxIDLen = max(maxIDLen, len(r.info.ID))
		maxTitleLen = max(maxTitleLen, len(r.info.Title))
	}

	fmt.Printf("  %3s  %-*s  %-*s  %-6s  %5s  %6s  %s\n", "#", maxIDLen, "ID", maxTitleLen, "Title", "Level", "Notes", "Length", "Source")
	fmt.Printf("  %3s  %-*s  %-*s  %-6s  %5s  %6s  %s\n", "-", maxIDLen, "--", maxTitleLen, "-----", "-----", "-----", "------", "------")

	for _, r := range rows {
		s := r.info
		fmt.Printf("  %3d  %-*s  %-*s  %-6s  %5d  %6s  %s\n",
			r.pos, maxIDLen, s.ID, maxTitleLen, s.Title, s.Difficulty, s.Notes, tui.FormatLength(s.LengthMs), s.Source)
	}

	fmt.Println()
	fmt.Println("Run 'bithero play <id or #>' to play a song.")
	return nil
}
