package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/journal/pkg/types"
)

func (a *app) newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove an entry by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			removed, err := store.DeleteByID(ctx, id)
			if err != nil {
				return classify(fmt.Errorf("delete entry: %w", err))
			}
			if !removed {
				return userError(fmt.Errorf("entry %d: %w", id, types.ErrNotFound))
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, map[string]int64{"deleted": id})
			}
			a.palette.successf(out, "Deleted entry %d\n", id)
			return nil
		},
	}
	return locked(cmd)
}

func (a *app) newPurgeCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every entry",
		Long:  "Delete every entry in the journal. The database itself is kept.\nConsider running backup first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return userError(errConfirm)
			}
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.DeleteAll(ctx)
			if err != nil {
				return classify(fmt.Errorf("purge: %w", err))
			}
			a.logger.Info("journal purged", "removed", n)

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, map[string]int64{"deleted": n})
			}
			a.palette.successf(out, "Deleted %d entries\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deleting every entry")
	return locked(cmd)
}
