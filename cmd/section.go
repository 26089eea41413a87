package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cyberguard/internal/progress"
)

var sectionCmd = &cobra.Command{
	Use:   "section",
	Short: "Track learning sections",
}

var sectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List learning sections and their completion state",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		if _, err := svc.requireUser(); err != nil {
			return err
		}
		p := svc.tracker.Progress()
		for _, id := range progress.Sections() {
			mark := "[ ]"
			if p.SectionCompleted(id) {
				mark = "[✓]"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", mark, id)
		}
		return nil
	},
}

var sectionCompleteCmd = &cobra.Command{
	Use:   "complete <section-id>",
	Short: "Mark a learning section as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.Close()

		if _, err := svc.requireUser(); err != nil {
			return err
		}
		p, err := svc.tracker.MarkSectionCompleted(cmdContext(cmd), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Section %q completed (%d/%d).\n",
			args[0], len(p.CompletedSections), len(progress.Sections()))
		return nil
	},
}

func init() {
	sectionCmd.AddCommand(sectionListCmd)
	sectionCmd.AddCommand(sectionCompleteCmd)
}
