package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/journal/pkg/types"
)

func (a *app) newWriteCmd() *cobra.Command {
	var (
		date string
		ef   entryFlags
	)
	cmd := &cobra.Command{
		Use:   "write",
		Short: "Write today's entry, or the entry for --date",
		Long: "Create the entry for a date, or update it when one already exists.\n" +
			"Without --date the entry is for today.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			day := types.Today()
			if date != "" {
				d, err := parseDateFlag("date", date)
				if err != nil {
					return err
				}
				day = d
			}

			html, hasContent, err := ef.readContent(cmd.InOrStdin())
			if err != nil {
				return err
			}

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entry, err := store.GetByDate(ctx, day)
			switch {
			case errors.Is(err, types.ErrNotFound):
				if !hasContent {
					return userError(errNoContent)
				}
				entry = types.NewEntry(day)
				entry.Content = html
				if _, err := ef.apply(cmd, entry); err != nil {
					return err
				}
				if _, err := store.Save(ctx, entry); err != nil {
					return classify(fmt.Errorf("save entry: %w", err))
				}
				a.logger.Debug("entry created", "id", entry.ID, "date", entry.DateString())
				return a.reportEntry(cmd, "Created", entry)
			case err != nil:
				return classify(fmt.Errorf("look up %s: %w", types.FormatDate(day), err))
			}

			changed, err := ef.apply(cmd, entry)
			if err != nil {
				return err
			}
			if hasContent {
				entry.Content = html
				changed = true
			}
			if !changed {
				return userError(errNoChanges)
			}
			if _, err := store.Update(ctx, entry); err != nil {
				return classify(fmt.Errorf("update entry: %w", err))
			}
			a.logger.Debug("entry updated", "id", entry.ID, "date", entry.DateString())
			return a.reportEntry(cmd, "Updated", entry)
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "entry date as YYYY-MM-DD (default: today)")
	ef.register(cmd)
	return locked(cmd)
}

func (a *app) newEditCmd() *cobra.Command {
	var ef entryFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change the content, moods or tags of an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			html, hasContent, err := ef.readContent(cmd.InOrStdin())
			if err != nil {
				return err
			}

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entry, err := store.GetByID(ctx, id)
			if err != nil {
				return classify(fmt.Errorf("entry %d: %w", id, err))
			}
			changed, err := ef.apply(cmd, entry)
			if err != nil {
				return err
			}
			if hasContent {
				entry.Content = html
				changed = true
			}
			if !changed {
				return userError(errNoChanges)
			}

			ok, err := store.Update(ctx, entry)
			if err != nil {
				return classify(fmt.Errorf("update entry: %w", err))
			}
			if !ok {
				return userError(fmt.Errorf("entry %d: %w", id, types.ErrNotFound))
			}
			return a.reportEntry(cmd, "Updated", entry)
		},
	}
	ef.register(cmd)
	return locked(cmd)
}

// reportEntry prints the outcome of a write in the selected output mode.
func (a *app) reportEntry(cmd *cobra.Command, verb string, e *types.Entry) error {
	out := cmd.OutOrStdout()
	if a.flags.jsonMode {
		return printJSON(out, viewOf(e))
	}
	a.palette.successf(out, "%s entry %d for %s\n", verb, e.ID, e.DateString())
	return nil
}
