package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/journal/internal/export"
	"github.com/mesh-intelligence/journal/pkg/types"
)

func (a *app) newListCmd() *cobra.Command {
	var (
		from, to string
		tag      string
		mood     string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List entries, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			f, err := parseRange(from, to)
			if err != nil {
				return err
			}

			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.GetRange(ctx, f.From, f.To)
			if err != nil {
				return classify(fmt.Errorf("list entries: %w", err))
			}
			entries = filterEntries(entries, tag, mood)

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				views := make([]entryView, 0, len(entries))
				for _, e := range entries {
					views = append(views, viewOf(e))
				}
				return printJSON(out, views)
			}
			if len(entries) == 0 {
				a.palette.warnf(out, "No entries found.\n")
				return nil
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tDATE\tMOOD\tTAGS\tPREVIEW")
			for _, e := range entries {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", e.ID, e.DateString(), e.PrimaryMood, strings.Join(e.Tags, ","), preview(e))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "earliest date, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "latest date, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&tag, "tag", "", "only entries with this tag")
	cmd.Flags().StringVar(&mood, "mood", "", "only entries with this primary or secondary mood")
	return locked(cmd)
}

// parseRange builds a validated date filter from optional flag values.
func parseRange(from, to string) (export.Filter, error) {
	var f export.Filter
	var err error
	if f.From, err = parseDateFlag("from", from); err != nil {
		return f, err
	}
	if f.To, err = parseDateFlag("to", to); err != nil {
		return f, err
	}
	if err := f.Validate(); err != nil {
		return f, userError(err)
	}
	return f, nil
}

// filterEntries keeps entries carrying tag and mood. Empty values match all.
func filterEntries(entries []*types.Entry, tag, mood string) []*types.Entry {
	if tag == "" && mood == "" {
		return entries
	}
	out := entries[:0:0]
	for _, e := range entries {
		if tag != "" && !e.HasTag(tag) {
			continue
		}
		if mood != "" && !strings.EqualFold(e.PrimaryMood, mood) && !containsFold(e.SecondaryMoods, mood) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
