package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AdrianoCalmon/Bit-Hero/internal/platform/tui"
	"github.com/AdrianoCalmon/Bit-Hero/internal/registry"
)

var (
	flagReplaysLimit  int
	flagReplaysVerify bool
)

var replaysCmd = &cobra.Command{
	Use:   "replays [song]",
	Short: "List recorded replays",
	Long: `Lists the most recent finished runs, newest first. With --verify each
replay is re-simulated from its recorded inputs and checked against the
stored result.

Verification outcomes:
  ok             - the inputs reproduce the stored result
  chart changed  - the song's notes differ from when it was played
  rules changed  - the hit windows or scoring in the config differ from
                   when it was played (older replays skip this check)
  MISMATCH       - the inputs do not reproduce the stored result
  song missing   - the song is no longer available

Examples:
  bithero replays
  bithero replays neon-overdrive --verify
  bithero replays 3 --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  run(runReplays),
}

func init() {
	replaysCmd.Flags().IntVar(&flagReplaysLimit, "limit", 20, "Maximum number of replays to show")
	replaysCmd.Flags().BoolVar(&flagReplaysVerify, "verify", false, "Re-simulate each replay and check its result")
}

func runReplays(_ *cobra.Command, args []string) error {
	a, err := setup(logStderr)
	if err != nil {
		return err
	}
	defer a.Close()

	songID, heading := "", "Recent replays"
	if len(args) == 1 {
		song, err := registry.Resolve(args[0])
		if err != nil {
			return err
		}
		songID = song.ID
		heading = fmt.Sprintf("Replays - %s", song.Title)
	}

	replays, err := a.store.Replays(songID, flagReplaysLimit)
	if err != nil {
		return err
	}

	fmt.Println(heading)
	fmt.Println()
	if len(replays) == 0 {
		fmt.Println("No replays recorded yet.")
		return nil
	}

	rules := a.cfg.Rules()
	fmt.Printf("  %-5s  %-20s  %-4s  %8s  %5s  %-16s  %s\n", "ID", "Song", "Rank", "Score", "Acc", "Date", "Check")
	fmt.Printf("  %-5s  %-20s  %-4s  %8s  %5s  %-16s  %s\n", "--", "----", "----", "-----", "---", "----", "-----")
	mismatches := 0
	for _, r := range replays {
		check := ""
		if flagReplaysVerify {
			check = tui.VerifyStatus(registry.Default(), r, rules)
			if check == tui.StatusMismatch {
				mismatches++
			}
		}
		fmt.Printf("  %-5d  %-20s  %-4s  %8d  %4.0f%%  %-16s  %s\n",
			r.ID, truncate(r.SongID, 20), r.Result.Rank(), r.Result.Score, tui.Accuracy(r.Result),
			r.CreatedAt.Format("2006-01-02 15:04"), check)
	}

	if mismatches > 0 {
		return fmt.Errorf("%d replay(s) failed verification", mismatches)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}
