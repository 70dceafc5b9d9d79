package util

import (
	"html/template"
	"strings"

	"gitlab.com/golang-commonmark/markdown"
)

var commonMarkParser *markdown.Markdown = markdown.New(markdown.HTML(true), markdown.Linkify(true), markdown.Typographer(true), markdown.MaxNesting(10))

// Markdown renders CommonMark markdown to sanitized HTML.
func Markdown(content string) template.HTML {
	var rendered = commonMarkParser.RenderToString([]byte(content))
	return template.HTML(Sanitize(rendered))
}

// Excerpt renders markdown and returns its text content, truncated to maxRunes.
// If the content contains CutMoreStr, only the text before it is used.
func Excerpt(content string, maxRunes int) string {
	content, _ = CutMore(content)
	return Trunc(Text(strings.NewReader(commonMarkParser.RenderToString([]byte(content)))), maxRunes)
}
