package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var journalLimit int

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show extraction history",
	Long: `List past extractions, newest first.

History comes from the server and is mirrored into the local cache, so
previously fetched entries remain visible offline.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		boot, err := bootstrap()
		if err != nil {
			return err
		}
		defer boot.Close()

		ctx, cancel := boot.actionCtx()
		defer cancel()

		entries, err := boot.Client.ListJournal(ctx, journalLimit)
		if err != nil {
			// Offline fallback: serve whatever the cache holds.
			if boot.Journal == nil {
				return err
			}
			cached, cacheErr := boot.Journal.List(journalLimit)
			if cacheErr != nil || len(cached) == 0 {
				return err
			}
			fmt.Println(color.YellowString("(offline: showing cached journal)"))
			entries = cached
		} else if boot.Journal != nil {
			if err := boot.Journal.Sync(entries); err != nil {
				fmt.Println(color.YellowString("(journal cache update failed: %v)", err))
			}
		}

		if len(entries) == 0 {
			fmt.Println("No extractions yet. Finish a day and run 'rogueday run extract'.")
			return nil
		}

		for _, entry := range entries {
			e := entry.Extraction
			line := fmt.Sprintf("%s  %4d xp", entry.RunDate, e.FinalXP)
			if e.PenaltyXP > 0 {
				line += color.RedString(" (-%d)", e.PenaltyXP)
			}
			line += fmt.Sprintf("  %d✓ %d✗  %dm focus", e.TasksCompleted, e.TasksFailed, e.TotalFocusMinutes)
			fmt.Println(line)
		}
		return nil
	},
}

func init() {
	journalCmd.Flags().IntVar(&journalLimit, "limit", 30, "Maximum entries to show")
}
