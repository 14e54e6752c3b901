package astdump

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jaskang/miniprogram-template-parser/internal/parser"
)

func TestDumpIsDeterministic(t *testing.T) {
	doc := parser.New(`<view class="a {{b}}"><text>{{c}}</text></view>`).Parse()
	first := Dump(doc)
	second := Dump(doc)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestDumpIncludesAttributesAndExpressions(t *testing.T) {
	doc := parser.New(`<view class="a {{b}}"></view>`).Parse()
	out := Dump(doc)
	assert.Contains(t, out, "Element view")
	assert.Contains(t, out, `class="a {{b}}"`)
}

func TestDumpMarksSelfClosingAndWxsContent(t *testing.T) {
	doc := parser.New(`<a/><wxs>body</wxs>`).Parse()
	out := Dump(doc)
	assert.Contains(t, out, "Element a /")
	assert.Contains(t, out, `Content "body"`)
}

func TestDumpEmptyDocument(t *testing.T) {
	doc := parser.New(``).Parse()
	assert.Equal(t, "", Dump(doc))
}
