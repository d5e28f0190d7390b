package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/journal/pkg/journal"
)

func (a *app) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the journal version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), map[string]string{"version": journal.Version, "module": journal.ModulePath})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "journal v%s\nmodule: %s\n", journal.Version, journal.ModulePath)
			return nil
		},
	}
}
