package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/journal/internal/export"
)

func (a *app) newExportCmd() *cobra.Command {
	var from, to, outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries to a PDF file",
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

			n, err := writePDF(outPath, func(file *os.File) (int, error) {
				return export.Export(ctx, store, f, export.NewPDFRenderer(), file)
			})
			if err != nil {
				return classify(err)
			}
			a.logger.Debug("pdf exported", "path", outPath, "entries", n)

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printJSON(out, map[string]any{"path": outPath, "entries": n})
			}
			a.palette.successf(out, "Exported %d entries to %s\n", n, outPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "journal.pdf", "output PDF path")
	cmd.Flags().StringVar(&from, "from", "", "earliest date, YYYY-MM-DD (inclusive)")
	cmd.Flags().StringVar(&to, "to", "", "latest date, YYYY-MM-DD (inclusive)")
	return locked(cmd)
}

// writePDF runs render against a temp file next to path and renames it into
// place only when rendering succeeds.
func writePDF(path string, render func(*os.File) (int, error)) (int, error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("create output file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	n, err := render(tmp)
	if cerr := tmp.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("close output file: %w", cerr)
	}
	if err != nil {
		return 0, err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return n, nil
}
