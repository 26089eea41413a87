package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/cyberguard/internal/report"
	"github.com/abhisek/cyberguard/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show completed simulation attempts, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		if _, err := svc.requireUser(); err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		simID, _ := cmd.Flags().GetString("simulation")
		if simID != "" {
			if _, ok := svc.catalog.Get(simID); !ok {
				return fmt.Errorf("unknown simulation %q", simID)
			}
		}

		attempts, err := svc.tracker.History(cmdContext(cmd), store.QueryOpts{Limit: limit, SimulationID: simID})
		if err != nil {
			return err
		}
		if len(attempts) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No simulations completed yet.")
			return nil
		}

		t := table.New().
			Border(lipgloss.NormalBorder()).
			Headers("DATE", "SIMULATION", "SCORE", "TIME", "ATTEMPT")
		for _, a := range attempts {
			title := a.SimulationID
			if def, ok := svc.catalog.Get(a.SimulationID); ok {
				title = def.Title
			}
			t.Row(a.CompletedAt.Local().Format("2006-01-02 15:04"), title,
				fmt.Sprintf("%d/%d", a.Score, a.TotalQuestions),
				report.FormatMinutes(a.TimeSpent), fmt.Sprintf("#%d", a.Attempts))
		}
		fmt.Fprintln(cmd.OutOrStdout(), t.String())
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of attempts to show (0 = all)")
	historyCmd.Flags().String("simulation", "", "Only show attempts of this simulation ID")
}
