package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ShayCichocki/rogueday/internal/config"
	"github.com/ShayCichocki/rogueday/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "rogueday",
	Short: "Gamified daily task tracker",
	Long: `Rogue-Day turns a day of work into a run: add tasks in three tiers,
spend focus energy to start them, earn XP for finishing, and extract at the
end of the day to bank the result into your journal.

With no arguments, launches the interactive dashboard.

Core loop:
- One run per day with 50 focus energy
- Tier 1 habits are free; tier 2 and 3 cost energy and can fail
- Tier 3 tasks run against a server-anchored countdown
- Failing a tier 3 task burns 10% of the day's XP
- Extract to close the run and record the day`,
	RunE: func(cmd *cobra.Command, args []string) error {
		boot, err := bootstrap()
		if err != nil {
			return err
		}
		defer boot.Close()

		var journal tui.JournalReader
		if boot.Journal != nil {
			journal = boot.Journal
		}
		p, _ := tui.NewProgram(boot.Store, journal, tui.Options{
			Timeout: boot.Config.API.Timeout,
			Sounds:  boot.Config.Feedback.Sounds,
		})

		// Config edits take effect in the running dashboard.
		watcher, err := config.Watch(boot.Config, func(cfg *config.Config) {
			p.Send(tui.ConfigReloadedMsg{Options: tui.Options{
				Timeout: cfg.API.Timeout,
				Sounds:  cfg.Feedback.Sounds,
			}})
		})
		if err == nil && watcher != nil {
			defer watcher.Close()
		}

		_, err = p.Run()
		return err
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(taskCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(templateCmd)
	rootCmd.AddCommand(presetCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
