package cli

import (
	"github.com/spf13/cobra"

	"github.com/AndreyAkinshin/westcheck/internal/suite"
)

// NewChecksCommand creates the checks command.
func NewChecksCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "checks",
		Short: "List the available checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := newWriter(cmd, rootOpts)
			var rows [][]string
			for _, c := range suite.Checks() {
				rows = append(rows, []string{c.Name, c.Tolerance, c.Candidate, c.Reference, c.Description})
			}
			out.Table([]string{"CHECK", "TOLERANCE", "CANDIDATE", "REFERENCE", "DESCRIPTION"}, rows)
			return nil
		},
	}
}

// NewVersionCommand creates the version command.
func NewVersionCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the westcheck version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			newWriter(cmd, rootOpts).Println("westcheck %s", Version)
			return nil
		},
	}
}
