package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/journal/internal/content"
	"github.com/mesh-intelligence/journal/pkg/types"
)

// entryFlags are the field flags shared by write and edit.
type entryFlags struct {
	content   string
	file      string
	format    string
	markdown  bool
	mood      string
	secondary []string
	tags      []string
	clearTags bool
}

func (f *entryFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.content, "content", "c", "", "entry content")
	fl.StringVarP(&f.file, "file", "f", "", "read content from a file (- for stdin)")
	fl.StringVar(&f.format, "format", string(content.FormatHTML), "content format: html, markdown or text")
	fl.BoolVar(&f.markdown, "markdown", false, "content is markdown (same as --format markdown)")
	fl.StringVarP(&f.mood, "mood", "m", "", "primary mood")
	fl.StringSliceVar(&f.secondary, "secondary", nil, fmt.Sprintf("secondary moods (at most %d)", types.MaxSecondaryMoods))
	fl.StringSliceVarP(&f.tags, "tag", "t", nil, "tags (repeat or comma-separate)")
	fl.BoolVar(&f.clearTags, "clear-tags", false, "remove existing tags before adding --tag values")
}

// readContent returns rendered HTML from --content or --file, and whether
// any content was supplied.
func (f *entryFlags) readContent(stdin io.Reader) (string, bool, error) {
	if f.content != "" && f.file != "" {
		return "", false, userError(errBothContent)
	}
	raw := f.content
	switch {
	case f.file == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", false, sysError(fmt.Errorf("read stdin: %w", err))
		}
		raw = string(data)
	case f.file != "":
		data, err := os.ReadFile(f.file)
		if err != nil {
			return "", false, userError(fmt.Errorf("read content file: %w", err))
		}
		raw = string(data)
	case f.content == "":
		return "", false, nil
	}

	format := content.Format(strings.ToLower(f.format))
	if f.markdown {
		format = content.FormatMarkdown
	}
	html, err := content.Render(raw, format)
	if err != nil {
		return "", true, userError(err)
	}
	return html, true, nil
}

// apply copies the field flags that were set on cmd onto e. Reports
// whether anything other than content changed.
func (f *entryFlags) apply(cmd *cobra.Command, e *types.Entry) (bool, error) {
	changed := false
	fl := cmd.Flags()
	if fl.Changed("mood") {
		e.PrimaryMood = strings.TrimSpace(f.mood)
		changed = true
	}
	if fl.Changed("secondary") {
		if err := e.SetSecondaryMoods(f.secondary...); err != nil {
			return false, userError(err)
		}
		changed = true
	}
	if f.clearTags {
		e.Tags = []string{}
		changed = true
	}
	for _, tag := range f.tags {
		if err := e.AddTag(tag); err != nil {
			return false, userError(err)
		}
		changed = true
	}
	return changed, nil
}

// parseID parses a positive entry id argument.
func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id <= 0 {
		return 0, userError(fmt.Errorf("%w: %q", types.ErrInvalidID, s))
	}
	return id, nil
}

// parseDateFlag parses an optional YYYY-MM-DD flag value. Empty yields the
// zero time.
func parseDateFlag(name, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	d, err := types.ParseDate(value)
	if err != nil {
		return time.Time{}, userError(fmt.Errorf("--%s: %w", name, err))
	}
	return d, nil
}
