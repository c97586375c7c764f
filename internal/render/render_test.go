package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescriptionRendersMarkdown(t *testing.T) {
	html, err := Description("# Faithful\n\nA **high resolution** pack.")
	require.NoError(t, err)

	assert.Contains(t, html, "<h1")
	assert.Contains(t, html, "<strong>high resolution</strong>")
}

func TestDescriptionStripsScripts(t *testing.T) {
	html, err := Description("hello <script>alert('x')</script> world")
	require.NoError(t, err)

	assert.NotContains(t, html, "<script")
	assert.NotContains(t, html, "alert")
}

func TestDescriptionStripsEventHandlers(t *testing.T) {
	html, err := Description(`<img src="x.png" onerror="alert(1)">`)
	require.NoError(t, err)

	assert.NotContains(t, html, "onerror")
}

func TestCommentTextIsPlainText(t *testing.T) {
	assert.Equal(t, "nice pack", CommentText("<b>nice</b> pack"))
	assert.Equal(t, "hi", CommentText(`<a href="http://evil">hi</a>`))
	assert.NotContains(t, CommentText("<script>alert(1)</script>ok"), "script")
}
