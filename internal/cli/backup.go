package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup <file>",
		Short: "Write every entry to a JSONL backup file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.ExportJSONL(ctx, args[0])
			if err != nil {
				return classify(fmt.Errorf("backup: %w", err))
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, map[string]any{"path": args[0], "entries": n})
			}
			a.palette.successf(out, "Backed up %d entries to %s\n", n, args[0])
			return nil
		},
	}
	return locked(cmd)
}

func (a *app) newRestoreCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Add entries from a JSONL backup file",
		Long: "Add entries from a backup made with 'journal backup'. Existing entries are\n" +
			"kept; records for dates that already have an entry are skipped when\n" +
			"unique_dates is on.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			res, err := store.ImportJSONL(ctx, args[0])
			if err != nil {
				return classify(fmt.Errorf("restore: %w", err))
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, map[string]int{
					"imported":   res.Imported,
					"duplicates": res.Duplicates,
					"malformed":  res.Malformed,
				})
			}
			a.palette.successf(out, "Restored %d entries\n", res.Imported)
			if res.Duplicates > 0 {
				a.palette.warnf(out, "Skipped %d entries whose date already had an entry\n", res.Duplicates)
			}
			if res.Malformed > 0 {
				a.palette.warnf(out, "Skipped %d malformed records\n", res.Malformed)
			}
			return nil
		},
	}
	return locked(cmd)
}
