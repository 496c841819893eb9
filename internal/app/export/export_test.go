package export

import (
	"strings"
	"testing"

	"contentgenius/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatMarkdown, f)

	f, err = ParseFormat("html")
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, f)

	_, err = ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestRenderMarkdownPassthrough(t *testing.T) {
	content := &ds.Content{GeneratedContent: "# Title\n\nBody.", ContentFormat: ds.FormatMarkdown}

	doc, err := Render(content, "Title", FormatMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "md", doc.Extension)
	assert.Equal(t, "# Title\n\nBody.", string(doc.Body))
}

func TestRenderHTMLFromMarkdown(t *testing.T) {
	content := &ds.Content{GeneratedContent: "# Go & REST\n\nSome **bold** text.", ContentFormat: ds.FormatMarkdown}

	doc, err := Render(content, "Go & REST", FormatHTML)
	require.NoError(t, err)
	body := string(doc.Body)
	assert.Equal(t, "html", doc.Extension)
	assert.Contains(t, body, "<title>Go &amp; REST</title>")
	assert.Contains(t, body, "<h1>Go &amp; REST</h1>")
	assert.Contains(t, body, "<strong>bold</strong>")
}

func TestRenderHTMLFromPlainText(t *testing.T) {
	content := &ds.Content{GeneratedContent: "a < b", ContentFormat: ds.FormatPlainText}

	doc, err := Render(content, "t", FormatHTML)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(doc.Body), "<pre>a &lt; b</pre>"))
}
