package render

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)

	descriptionPolicy = bluemonday.UGCPolicy()
	commentPolicy     = bluemonday.StrictPolicy()
)

// Description converts a markdown content description into sanitized HTML.
// Anything the UGC policy does not allow (scripts, event handlers, embeds)
// is stripped before the result ever reaches a browser.
func Description(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("error rendering description with error: %s", err.Error())
	}

	return descriptionPolicy.Sanitize(buf.String()), nil
}

// CommentText strips all markup from a visitor comment. Comments are plain
// text only.
func CommentText(text string) string {
	return commentPolicy.Sanitize(text)
}
