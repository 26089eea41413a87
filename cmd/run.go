package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberguard/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	svc, err := openServices(cmd)
	if err != nil {
		return err
	}
	defer svc.Close()

	loc, err := svc.cfg.Location()
	if err != nil {
		return fmt.Errorf("resolve timezone: %w", err)
	}
	skipSplash, _ := cmd.Flags().GetBool("no-splash")

	return app.Run(app.Deps{
		Catalog:  svc.catalog,
		Identity: svc.identity,
		Tracker:  svc.tracker,
		Clock:    svc.clock,
		Location: loc,
		Logger:   svc.log,
	}, skipSplash)
}
