package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/rogueday/internal/economy"
	"github.com/ShayCichocki/rogueday/pkg/models"
)

var (
	taskAddTier     int
	taskAddDuration int
	taskAddNoTimer  bool
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks in the current run",
}

var taskAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a task to the current run",
	Long: `Add a task to the current run.

Tier 1 (habits) are free and cannot fail. Tier 2 (focus) cost 5 energy
with an optional timer; skipping the timer reduces XP by 20%. Tier 3
(boss fights) cost 15 energy, always run against the countdown, and
burn 10% of the day's XP if they fail.

Examples:
  rogueday task add "inbox zero"
  rogueday task add "write report" --tier 2 --duration 15
  rogueday task add "write report" --tier 2 --duration 15 --no-timer
  rogueday task add "ship the feature" --tier 3 --duration 45`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		boot, err := bootstrap()
		if err != nil {
			return err
		}
		defer boot.Close()

		tier := models.Tier(taskAddTier)
		rules, ok := economy.Rules(tier)
		if !ok {
			return fmt.Errorf("invalid tier: %d", taskAddTier)
		}

		duration := taskAddDuration
		if duration == 0 {
			duration = rules.MinDuration
		}

		useTimer := rules.TimerMode == models.TimerModeRequired ||
			(rules.TimerMode == models.TimerModeOptional && !taskAddNoTimer)

		ctx, cancel := boot.actionCtx()
		defer cancel()
		task, err := boot.Store.AddTask(ctx, models.TaskSpec{
			Title:    args[0],
			Tier:     tier,
			Duration: duration,
			UseTimer: useTimer,
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s Added #%d [T%d] %s (%dm, %d xp",
			color.GreenString("✓"), task.ID, task.Tier, task.Title, task.Duration,
			economy.ComputeXP(task.Tier, task.Duration, task.UseTimer))
		if cost := economy.EnergyCost(task.Tier); cost > 0 {
			fmt.Printf(", %d energy to start", cost)
		}
		fmt.Println(")")
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the run's tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		boot, err := bootstrap()
		if err != nil {
			return err
		}
		defer boot.Close()

		tasks := boot.Store.Tasks()
		if len(tasks) == 0 {
			fmt.Println("No tasks in the current run.")
			return nil
		}
		for _, task := range tasks {
			printTaskLine(task)
		}
		return nil
	},
}

// taskTransition builds start/complete/fail/delete commands, which differ
// only in the store method and the result line.
func taskTransition(use, short string, fn func(*Bootstrap, int) error, done string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid task id %q", args[0])
			}

			boot, err := bootstrap()
			if err != nil {
				return err
			}
			defer boot.Close()

			if err := fn(boot, taskID); err != nil {
				return err
			}

			fmt.Printf("%s Task #%d %s\n", color.GreenString("✓"), taskID, done)
			if run := boot.Store.Run(); run != nil {
				fmt.Printf("  XP %d, energy %d/%d\n", run.DailyXP, run.FocusEnergy, run.MaxEnergy)
			}
			return nil
		},
	}
}

func init() {
	taskAddCmd.Flags().IntVar(&taskAddTier, "tier", 1, "Task tier (1-3)")
	taskAddCmd.Flags().IntVar(&taskAddDuration, "duration", 0, "Duration in minutes (default: tier minimum)")
	taskAddCmd.Flags().BoolVar(&taskAddNoTimer, "no-timer", false, "Skip the optional timer (tier 2 only, -20% xp)")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskTransition("start", "Start a pending task", func(b *Bootstrap, id int) error {
		ctx, cancel := b.actionCtx()
		defer cancel()
		return b.Store.StartTask(ctx, id)
	}, "started"))
	taskCmd.AddCommand(taskTransition("complete", "Complete a task", func(b *Bootstrap, id int) error {
		ctx, cancel := b.actionCtx()
		defer cancel()
		return b.Store.CompleteTask(ctx, id)
	}, "completed"))
	taskCmd.AddCommand(taskTransition("fail", "Fail an active task", func(b *Bootstrap, id int) error {
		ctx, cancel := b.actionCtx()
		defer cancel()
		return b.Store.FailTask(ctx, id)
	}, "failed"))
	taskCmd.AddCommand(taskTransition("delete", "Delete a pending task", func(b *Bootstrap, id int) error {
		ctx, cancel := b.actionCtx()
		defer cancel()
		return b.Store.DeleteTask(ctx, id)
	}, "deleted"))
}
