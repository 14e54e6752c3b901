package wxmlgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaskang/miniprogram-template-parser/internal/parser"
)

func TestFromHTMLProducesParseableFixture(t *testing.T) {
	html := `<html><body><div class="card"><span>hello</span></div></body></html>`

	out, err := FromHTML(strings.NewReader(html), 2)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	// The generated fixture must itself be valid input to the parser it
	// is meant to seed fuzzing for.
	doc := parser.New(out).Parse()
	require.NotEmpty(t, doc.Children)
}

func TestFromHTMLZeroDensitySeedsNoExpressions(t *testing.T) {
	html := `<html><body><p>plain text</p></body></html>`

	out, err := FromHTML(strings.NewReader(html), 0)
	require.NoError(t, err)
	assert.NotContains(t, out, "{{")
}

func TestFromHTMLMapsTagNames(t *testing.T) {
	html := `<html><body><img src="x.png"><button>tap</button></body></html>`

	out, err := FromHTML(strings.NewReader(html), 0)
	require.NoError(t, err)
	assert.Contains(t, out, "<image")
	assert.Contains(t, out, "<button")
	assert.Contains(t, out, "<view")
}
