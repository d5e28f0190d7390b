// Package content converts user input into the HTML markup stored in
// entries.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrEmpty is returned when input has no visible text.
var ErrEmpty = errors.New("entry content is empty")

// Format names how input text is written.
type Format string

// Input formats.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

// Render converts input in the given format to HTML. HTML input is passed
// through after trimming. Raw HTML embedded in markdown is omitted.
func Render(input string, format Format) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", ErrEmpty
	}
	switch format {
	case FormatHTML, "":
		return strings.TrimSpace(input), nil
	case FormatMarkdown:
		return FromMarkdown(input)
	case FormatText:
		return FromText(input), nil
	}
	return "", fmt.Errorf("unknown content format %q", format)
}

// FromMarkdown renders GitHub-flavoured markdown to HTML.
func FromMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// FromText escapes plain text and wraps it in paragraphs. Blank lines
// separate paragraphs; single newlines become <br>.
func FromText(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	var b strings.Builder
	for _, para := range strings.Split(src, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lines := strings.Split(para, "\n")
		for i, l := range lines {
			lines[i] = html.EscapeString(strings.TrimSpace(l))
		}
		b.WriteString("<p>")
		b.WriteString(strings.Join(lines, "<br>"))
		b.WriteString("</p>")
	}
	return b.String()
}
