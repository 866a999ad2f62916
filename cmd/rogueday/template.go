package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

var (
	templateAddTier     int
	templateAddDuration int
	templateAddNoTimer  bool
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Manage saved task templates",
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved templates",
	RunE: func(cmd *cobra.Command, args []string) error {
		boot, err := bootstrap()
		if err != nil {
			return err
		}
		defer boot.Close()

		ctx, cancel := boot.actionCtx()
		defer cancel()
		templates, err := boot.Client.ListTemplates(ctx)
		if err != nil {
			return err
		}

		if len(templates) == 0 {
			fmt.Println("No templates saved.")
			return nil
		}
		for _, t := range templates {
			line := fmt.Sprintf("#%d [T%d] %s (%dm", t.ID, t.Tier, t.Title, t.Duration)
			if t.UseTimer {
				line += ", timer"
			}
			line += ")"
			if t.TimesUsed > 0 {
				line += fmt.Sprintf("  used %d times", t.TimesUsed)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var templateAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Save a new template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		boot, err := bootstrap()
		if err != nil {
			return err
		}
		defer boot.Close()

		ctx, cancel := boot.actionCtx()
		defer cancel()
		template, err := boot.Client.CreateTemplate(ctx, models.TaskSpec{
			Title:    args[0],
			Tier:     models.Tier(templateAddTier),
			Duration: templateAddDuration,
			UseTimer: !templateAddNoTimer,
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s Saved template #%d %s\n", color.GreenString("✓"), template.ID, template.Title)
		return nil
	},
}

var templateDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		templateID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid template id %q", args[0])
		}

		boot, err := bootstrap()
		if err != nil {
			return err
		}
		defer boot.Close()

		ctx, cancel := boot.actionCtx()
		defer cancel()
		if err := boot.Client.DeleteTemplate(ctx, templateID); err != nil {
			return err
		}

		fmt.Printf("%s Deleted template #%d\n", color.GreenString("✓"), templateID)
		return nil
	},
}

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage task presets",
	Long: `Presets bundle several templates into one named loadout. Applying a
preset creates a task from each template; templates the run cannot
afford are skipped and reported, not rejected.`,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets",
	RunE: func(cmd *cobra.Command, args []string) error {
		boot, err := bootstrap()
		if err != nil {
			return err
		}
		defer boot.Close()

		ctx, cancel := boot.actionCtx()
		defer cancel()
		presets, err := boot.Client.ListPresets(ctx)
		if err != nil {
			return err
		}

		if len(presets) == 0 {
			fmt.Println("No presets saved.")
			return nil
		}
		for _, p := range presets {
			name := p.Name
			if p.Emoji != "" {
				name = p.Emoji + " " + name
			}
			if p.IsFavorite {
				name += " ★"
			}
			fmt.Printf("#%d %s (%d templates)\n", p.ID, name, len(p.Templates))
			for _, t := range p.Templates {
				fmt.Printf("    [T%d] %s (%dm)\n", t.Tier, t.Title, t.Duration)
			}
		}
		return nil
	},
}

var presetApplyCmd = &cobra.Command{
	Use:   "apply <id>",
	Short: "Apply a preset to the current run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		presetID, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid preset id %q", args[0])
		}

		boot, err := bootstrap()
		if err != nil {
			return err
		}
		defer boot.Close()

		ctx, cancel := boot.actionCtx()
		defer cancel()
		result, err := boot.Store.ApplyPreset(ctx, presetID)
		if err != nil {
			return err
		}

		fmt.Printf("%s %d tasks created", color.GreenString("✓"), result.TasksCreated)
		if result.TasksSkipped > 0 {
			fmt.Printf(", %s", color.YellowString("%d skipped (not enough energy)", result.TasksSkipped))
		}
		fmt.Println()
		return nil
	},
}

func init() {
	templateAddCmd.Flags().IntVar(&templateAddTier, "tier", 1, "Task tier (1-3)")
	templateAddCmd.Flags().IntVar(&templateAddDuration, "duration", 5, "Duration in minutes")
	templateAddCmd.Flags().BoolVar(&templateAddNoTimer, "no-timer", false, "Create tasks without the timer")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateAddCmd)
	templateCmd.AddCommand(templateDeleteCmd)

	presetCmd.AddCommand(presetListCmd)
	presetCmd.AddCommand(presetApplyCmd)
}
