package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/mesh-intelligence/journal/internal/export"
	"github.com/mesh-intelligence/journal/internal/theme"
	"github.com/mesh-intelligence/journal/pkg/types"
)

// newLogger builds a text logger on w. verbose forces debug level.
func newLogger(w io.Writer, level string, verbose bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// palette colors terminal output for the active theme.
type palette struct {
	success *color.Color
	warn    *color.Color
	err     *color.Color
	accent  *color.Color
	muted   *color.Color
}

// newPalette returns colors tuned for mode. Color is disabled when w is not
// a terminal.
func newPalette(mode theme.Mode, w io.Writer) palette {
	p := palette{
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		err:     color.New(color.FgRed, color.Bold),
		accent:  color.New(color.FgBlue, color.Bold),
		muted:   color.New(color.FgHiBlack),
	}
	if mode == theme.Dark {
		p.success = color.New(color.FgHiGreen)
		p.warn = color.New(color.FgHiYellow)
		p.err = color.New(color.FgHiRed, color.Bold)
		p.accent = color.New(color.FgHiCyan, color.Bold)
		p.muted = color.New(color.FgWhite)
	}
	if !isTerminal(w) {
		for _, c := range []*color.Color{p.success, p.warn, p.err, p.accent, p.muted} {
			c.DisableColor()
		}
	}
	return p
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (p palette) successf(w io.Writer, format string, args ...any) {
	p.success.Fprintf(w, format, args...)
}

func (p palette) warnf(w io.Writer, format string, args ...any) {
	p.warn.Fprintf(w, format, args...)
}

func (p palette) errorf(w io.Writer, format string, args ...any) {
	p.err.Fprintf(w, format, args...)
}

// entryView is the JSON shape of an entry in CLI output.
type entryView struct {
	ID             int64    `json:"id"`
	Date           string   `json:"date"`
	PrimaryMood    string   `json:"primary_mood"`
	SecondaryMoods []string `json:"secondary_moods"`
	Tags           []string `json:"tags"`
	Content        string   `json:"content"`
	CreatedAt      string   `json:"created_at"`
}

func viewOf(e *types.Entry) entryView {
	e.Normalize()
	return entryView{
		ID:             e.ID,
		Date:           e.DateString(),
		PrimaryMood:    e.PrimaryMood,
		SecondaryMoods: e.SecondaryMoods,
		Tags:           e.Tags,
		Content:        e.Content,
		CreatedAt:      types.FormatTimestamp(e.CreatedAt),
	}
}

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// printEntry writes the full human-readable form of e.
func (p palette) printEntry(w io.Writer, e *types.Entry) {
	p.accent.Fprintf(w, "%s", e.EntryDate.Format(export.HeadingLayout))
	if e.PrimaryMood != "" {
		fmt.Fprintf(w, "  (%s)", e.PrimaryMood)
	}
	fmt.Fprintln(w)
	p.muted.Fprintf(w, "ID: %d  Created: %s\n", e.ID, types.FormatTimestamp(e.CreatedAt))
	if len(e.SecondaryMoods) > 0 {
		fmt.Fprintf(w, "Also felt: %s\n", strings.Join(e.SecondaryMoods, ", "))
	}
	if len(e.Tags) > 0 {
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(e.Tags, ", "))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, export.StripHTML(e.Content))
}

// previewWidth is the number of runes shown from each entry in list output.
const previewWidth = 60

// preview returns the first line of the entry's plain text, shortened.
func preview(e *types.Entry) string {
	text := export.StripHTML(e.Content)
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	r := []rune(text)
	if len(r) > previewWidth {
		return string(r[:previewWidth-3]) + "..."
	}
	return text
}
