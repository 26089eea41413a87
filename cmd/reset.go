package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all progress and history for the signed-in account",
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
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this deletes all progress for %s; re-run with --yes to confirm", u.Email)
		}
		if err := svc.tracker.Reset(cmdContext(cmd)); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Progress for %s has been reset.\n", u.Email)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
