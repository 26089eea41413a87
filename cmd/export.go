package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberguard/internal/report"
	"github.com/abhisek/cyberguard/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export progress and attempt history to an Excel workbook",
	Args:  cobra.ExactArgs(1),
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
		history, err := svc.tracker.History(cmdContext(cmd), store.QueryOpts{})
		if err != nil {
			return err
		}

		err = report.Save(args[0], report.Input{
			Name:     u.Name(),
			Email:    u.Email,
			Progress: svc.tracker.Progress(),
			History:  history,
			Catalog:  svc.catalog,
			Exported: svc.clock.Now(),
		})
		if err != nil {
			return err
		}
		svc.log.Info("progress exported", "path", args[0], "attempts", len(history))
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d attempts to %s\n", len(history), args[0])
		return nil
	},
}
