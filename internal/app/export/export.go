// Package export renders generated content into downloadable documents.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"html"

	"contentgenius/internal/app/ds"
	"contentgenius/internal/app/storage"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case "", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, value)
}

// Render converts stored content to the requested format. Plain text content is
// escaped and wrapped instead of being parsed as markdown.
func Render(content *ds.Content, title string, format Format) (storage.Document, error) {
	switch format {
	case FormatMarkdown:
		return storage.Document{
			Body:        []byte(content.GeneratedContent),
			Extension:   "md",
			ContentType: "text/markdown; charset=utf-8",
		}, nil
	case FormatHTML:
		var body bytes.Buffer
		switch content.ContentFormat {
		case ds.FormatHTML:
			body.WriteString(content.GeneratedContent)
		case ds.FormatPlainText:
			body.WriteString("<pre>" + html.EscapeString(content.GeneratedContent) + "</pre>\n")
		default:
			if err := markdown.Convert([]byte(content.GeneratedContent), &body); err != nil {
				return storage.Document{}, fmt.Errorf("render markdown: %w", err)
			}
		}
		page := fmt.Sprintf("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n%s</body>\n</html>\n",
			html.EscapeString(title), body.String())
		return storage.Document{
			Body:        []byte(page),
			Extension:   "html",
			ContentType: "text/html; charset=utf-8",
		}, nil
	}
	return storage.Document{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}
