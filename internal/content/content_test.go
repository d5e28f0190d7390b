package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
		excludes []string
	}{
		{name: "emphasis", input: "I felt **great** today", contains: []string{"<p>I felt <strong>great</strong> today</p>"}},
		{name: "heading", input: "# Morning", contains: []string{"<h1>Morning</h1>"}},
		{name: "hard wraps", input: "line one\nline two", contains: []string{"line one<br>"}},
		{name: "gfm strikethrough", input: "~~old plan~~", contains: []string{"<del>old plan</del>"}},
		{name: "gfm list", input: "- eggs\n- milk", contains: []string{"<li>eggs</li>", "<li>milk</li>"}},
		{name: "raw html omitted", input: "<script>alert(1)</script>", excludes: []string{"<script>"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromMarkdown(tt.input)
			require.NoError(t, err)
			for _, c := range tt.contains {
				assert.Contains(t, got, c)
			}
			for _, e := range tt.excludes {
				assert.NotContains(t, got, e)
			}
		})
	}
}

func TestFromText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "single line", input: "hello", want: "<p>hello</p>"},
		{name: "escapes markup", input: "a < b & c", want: "<p>a &lt; b &amp; c</p>"},
		{name: "paragraphs", input: "one\n\ntwo", want: "<p>one</p><p>two</p>"},
		{name: "line breaks", input: "one\ntwo", want: "<p>one<br>two</p>"},
		{name: "windows newlines", input: "one\r\n\r\ntwo", want: "<p>one</p><p>two</p>"},
		{name: "extra blank lines", input: "\n\none\n\n\n\ntwo\n\n", want: "<p>one</p><p>two</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromText(tt.input))
		})
	}
}

func TestRender(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		for _, f := range []Format{FormatHTML, FormatMarkdown, FormatText} {
			_, err := Render("  \n ", f)
			assert.ErrorIs(t, err, ErrEmpty, string(f))
		}
	})

	t.Run("html passes through", func(t *testing.T) {
		got, err := Render("  <p>kept</p>\n", FormatHTML)
		require.NoError(t, err)
		assert.Equal(t, "<p>kept</p>", got)
	})

	t.Run("default format is html", func(t *testing.T) {
		got, err := Render("<b>x</b>", "")
		require.NoError(t, err)
		assert.Equal(t, "<b>x</b>", got)
	})

	t.Run("markdown", func(t *testing.T) {
		got, err := Render("*hi*", FormatMarkdown)
		require.NoError(t, err)
		assert.Equal(t, "<p><em>hi</em></p>", got)
	})

	t.Run("text", func(t *testing.T) {
		got, err := Render("hi", FormatText)
		require.NoError(t, err)
		assert.Equal(t, "<p>hi</p>", got)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := Render("hi", Format("rtf"))
		assert.Error(t, err)
	})
}
