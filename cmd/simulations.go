package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/cyberguard/internal/tracker"
)

var simulationsCmd = &cobra.Command{
	Use:     "simulations",
	Aliases: []string{"sims"},
	Short:   "Browse the simulation catalog",
}

var simulationsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List simulations with your best score and attempts",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		signedIn := svc.tracker.User() != nil
		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("ID", "TITLE", "DIFFICULTY", "DURATION", "STEPS", "BEST", "ATTEMPTS")

		var standings map[string]tracker.Standing
		if signedIn {
			if standings, err = svc.tracker.Standings(cmdContext(cmd)); err != nil {
				return err
			}
		}
		for _, def := range svc.catalog.All() {
			best, attempts := "-", "-"
			if st, ok := standings[def.ID]; ok {
				best = fmt.Sprintf("%d%%", st.BestPercent)
				attempts = fmt.Sprintf("%d", st.Attempts)
			} else if signedIn {
				attempts = "0"
			}
			t.Row(def.ID, def.Title, string(def.Difficulty), def.Duration,
				fmt.Sprintf("%d", len(def.Steps)), best, attempts)
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.String())
		if !signedIn {
			fmt.Fprintln(cmd.OutOrStdout(), "Sign in to see your scores.")
		}
		return nil
	},
}

func init() {
	simulationsCmd.AddCommand(simulationsListCmd)
}
