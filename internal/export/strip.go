package export

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// StripHTML converts entry markup to plain text. Line breaks become "\n",
// closing paragraphs become a blank line, entities are decoded, and the
// contents of script and style elements are dropped.
func StripHTML(input string) string {
	if input == "" {
		return ""
	}

	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(input))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.Br:
				b.WriteByte('\n')
			case atom.Script, atom.Style:
				skip++
			case atom.Li:
				b.WriteString("\n- ")
			}
		case html.EndTagToken:
			name, _ := z.TagName()
			switch atom.Lookup(name) {
			case atom.P:
				b.WriteString("\n\n")
			case atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6, atom.Ul, atom.Ol, atom.Blockquote, atom.Pre:
				b.WriteByte('\n')
			case atom.Script, atom.Style:
				if skip > 0 {
					skip--
				}
			}
		}
	}
}
