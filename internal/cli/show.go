package cli

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/journal/internal/export"
	"github.com/mesh-intelligence/journal/pkg/types"
)

func (a *app) newShowCmd() *cobra.Command {
	var (
		date     string
		copyText bool
	)
	cmd := &cobra.Command{
		Use:   "show [<id>]",
		Short: "Display one entry by id or by --date",
		Long:  "Display one entry. Without an id or --date, shows today's entry.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 1 && date != "" {
				return userError(errDateSelector)
			}

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			var entry *types.Entry
			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				entry, err = store.GetByID(ctx, id)
				if err != nil {
					return classify(fmt.Errorf("entry %d: %w", id, err))
				}
			} else {
				day := types.Today()
				if date != "" {
					if day, err = parseDateFlag("date", date); err != nil {
						return err
					}
				}
				entry, err = store.GetByDate(ctx, day)
				if err != nil {
					return classify(fmt.Errorf("entry for %s: %w", types.FormatDate(day), err))
				}
			}

			out := cmd.OutOrStdout()
			if copyText {
				if err := clipboard.WriteAll(export.StripHTML(entry.Content)); err != nil {
					a.palette.warnf(cmd.ErrOrStderr(), "Warning: could not copy to clipboard: %v\n", err)
				} else {
					a.logger.Debug("entry copied to clipboard", "id", entry.ID)
				}
			}
			if a.flags.jsonMode {
				return printJSON(out, viewOf(entry))
			}
			a.palette.printEntry(out, entry)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "entry date as YYYY-MM-DD")
	cmd.Flags().BoolVar(&copyText, "copy", false, "also copy the entry text to the clipboard")
	return locked(cmd)
}
