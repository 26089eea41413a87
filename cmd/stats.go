package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberguard/internal/progress"
	"github.com/abhisek/cyberguard/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		u, err := svc.requireUser()
		if err != nil {
			return err
		}
		p := svc.tracker.Progress()
		out := cmd.OutOrStdout()

		fmt.Fprintf(out, "%s\n\n", u.Name())
		fmt.Fprintf(out, "  Simulations completed: %d\n", p.TotalSimulationsCompleted)
		fmt.Fprintf(out, "  Average score:         %d%%\n", p.AverageScore)
		fmt.Fprintf(out, "  Time spent:            %s\n", report.FormatMinutes(p.TimeSpent))
		fmt.Fprintf(out, "  Current streak:        %d days (longest %d)\n", p.CurrentStreak, p.LongestStreak)
		fmt.Fprintf(out, "  Skill level:           %s - %s\n", p.SkillLevel.DisplayName(), p.SkillLevel.Blurb())
		fmt.Fprintf(out, "  Sections completed:    %d/%d\n", len(p.CompletedSections), len(progress.Sections()))

		fmt.Fprintf(out, "\nAchievements (%d/%d)\n", len(p.Achievements), len(progress.Catalog()))
		for _, def := range progress.Catalog() {
			mark := "  "
			if p.HasAchievement(def.ID) {
				mark = "✓ "
			}
			fmt.Fprintf(out, "  %s%-20s %s\n", mark, def.Title, def.Description)
		}

		if recs := svc.tracker.Recommendations(); len(recs) > 0 {
			fmt.Fprintln(out, "\nRecommended next")
			for _, r := range recs {
				fmt.Fprintf(out, "  • %s\n", r)
			}
		}
		return nil
	},
}
