package render

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))
	policy   = bluemonday.UGCPolicy()
)

// Markdown converts a markdown content string to sanitized HTML. Content
// authors write article bodies and long-form blocks as markdown.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}

// SafeHTML sanitizes an HTML-bearing content string before template
// injection.
func SafeHTML(src string) template.HTML {
	return template.HTML(policy.Sanitize(src))
}
