package util

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// blockElements separate words in the text content.
var blockElements = map[string]struct{}{
	"blockquote": {},
	"br":         {},
	"div":        {},
	"h1":         {},
	"h2":         {},
	"h3":         {},
	"h4":         {},
	"h5":         {},
	"h6":         {},
	"hr":         {},
	"li":         {},
	"p":          {},
	"pre":        {},
	"td":         {},
	"th":         {},
}

// Text returns the text content of an HTML fragment with collapsed whitespace.
// The content of script and style elements is skipped.
func Text(input io.Reader) string {

	tokenizer := html.NewTokenizerFragment(input, "body")

	var text = &strings.Builder{}
	var skip = 0

	for {

		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			break // assuming tokenizer.Err() == io.EOF
		}

		tagNameBytes, _ := tokenizer.TagName()
		tagName := string(tagNameBytes)

		if _, isBlock := blockElements[tagName]; isBlock {
			text.WriteString(" ")
		}

		switch tt {
		case html.StartTagToken:
			if tagName == "script" || tagName == "style" {
				skip++
			}
		case html.EndTagToken:
			if (tagName == "script" || tagName == "style") && skip > 0 {
				skip--
			}
		case html.TextToken:
			if skip == 0 {
				text.Write(tokenizer.Text())
			}
		}
	}

	return strings.Join(strings.Fields(text.String()), " ")
}
