package parser_test

import (
	"testing"

	"idea-feed/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextPassesPlainTextThrough(t *testing.T) {
	got, err := parser.ExtractText("  Somebody make a habit tracker  ")
	require.NoError(t, err)
	assert.Equal(t, "Somebody make a habit tracker", got)

	got, err = parser.ExtractText("")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExtractTextFromFragment(t *testing.T) {
	got, err := parser.ExtractText(`<p>I wish there was an <b>app</b> for tracking plants.</p>`)
	require.NoError(t, err)
	assert.Contains(t, got, "I wish there was an")
	assert.Contains(t, got, "tracking plants")
	assert.NotContains(t, got, "<b>")
}

func TestParseHtmlTextSkipsScripts(t *testing.T) {
	got, err := parser.ParseHtmlText(`<html><head><style>p{}</style><script>alert(1)</script></head><body><h1>Title</h1><p>Body text</p></body></html>`)
	require.NoError(t, err)
	assert.Equal(t, "Title\nBody text", got)
}
