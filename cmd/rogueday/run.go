package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Manage the current run",
	Long: `Inspect and control the day's run.

A run is one day of tracked work: it holds the task list, the focus
energy pool, and the XP earned so far. Only one run can be active at a
time; extracting closes it and records the result in the journal.`,
}

var runStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new run for today",
	RunE: func(cmd *cobra.Command, args []string) error {
		boot, err := bootstrap()
		if err != nil {
			return err
		}
		defer boot.Close()

		if boot.Store.HasRun() {
			return fmt.Errorf("a run is already active; extract it first")
		}

		ctx, cancel := boot.actionCtx()
		defer cancel()
		run, err := boot.Store.StartNewRun(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%s Run started for %s\n", color.GreenString("✓"), run.RunDate)
		fmt.Printf("  Energy: %d/%d\n", run.FocusEnergy, run.MaxEnergy)
		return nil
	},
}

var runStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current run",
	RunE: func(cmd *cobra.Command, args []string) error {
		boot, err := bootstrap()
		if err != nil {
			return err
		}
		defer boot.Close()

		run := boot.Store.Run()
		if run == nil {
			fmt.Println("No active run. Run 'rogueday run start' to begin the day.")
			return nil
		}

		fmt.Printf("Run %s\n", run.RunDate)
		fmt.Printf("  XP:     %d\n", run.DailyXP)
		fmt.Printf("  Energy: %d/%d\n", run.FocusEnergy, run.MaxEnergy)
		fmt.Printf("  Focus:  %dm\n", run.TotalFocusMinutes)

		if stats := boot.Store.Stats(); stats != nil {
			fmt.Printf("  Streak: %d (best %d)\n", stats.CurrentStreak, stats.BestStreak)
		}

		tasks := boot.Store.Tasks()
		if len(tasks) == 0 {
			fmt.Println("\nNo tasks yet. Add one with 'rogueday task add'.")
			return nil
		}

		fmt.Println("\nTasks:")
		for _, task := range tasks {
			printTaskLine(task)
		}
		return nil
	},
}

var runExtractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Close the run and bank the day",
	Long: `Extract the current run. The server finalizes the day's XP, applies
any outstanding penalties, and writes the immutable extraction record.
The run is over afterwards; a new one can be started tomorrow (or
immediately, for testing).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		boot, err := bootstrap()
		if err != nil {
			return err
		}
		defer boot.Close()

		ctx, cancel := boot.actionCtx()
		defer cancel()
		extraction, err := boot.Store.ExtractRun(ctx)
		if err != nil {
			return err
		}

		fmt.Printf("%s Run extracted\n", color.GreenString("✓"))
		fmt.Printf("  Final XP:  %d", extraction.FinalXP)
		if extraction.PenaltyXP > 0 {
			fmt.Printf(" %s", color.RedString("(-%d penalties)", extraction.PenaltyXP))
		}
		fmt.Println()
		fmt.Printf("  Tasks:     %d completed, %d failed\n",
			extraction.TasksCompleted, extraction.TasksFailed)
		fmt.Printf("  Focus:     %dm\n", extraction.TotalFocusMinutes)
		return nil
	},
}

// printTaskLine renders one task for the CLI listings.
func printTaskLine(task models.Task) {
	glyph := "○"
	switch task.Status {
	case models.TaskStatusActive:
		glyph = color.CyanString("▶")
	case models.TaskStatusCompleted:
		glyph = color.GreenString("✓")
	case models.TaskStatusFailed:
		glyph = color.RedString("✗")
	}

	line := fmt.Sprintf("  %s #%d [T%d] %s (%dm", glyph, task.ID, task.Tier, task.Title, task.Duration)
	if task.Status == models.TaskStatusCompleted {
		line += fmt.Sprintf(", +%d xp", task.XPEarned)
	} else if task.EnergyCost > 0 && task.Status == models.TaskStatusPending {
		line += fmt.Sprintf(", -%d energy", task.EnergyCost)
	}
	line += ")"
	if task.UseTimer && task.Status != models.TaskStatusCompleted {
		line += " ⏱"
	}
	fmt.Println(line)
}

func init() {
	runCmd.AddCommand(runStartCmd)
	runCmd.AddCommand(runStatusCmd)
	runCmd.AddCommand(runExtractCmd)
}
