// Package wxml parses WXML — the XML-like template language used by
// WeChat Mini Programs — into an abstract syntax tree with precise
// source-position information.
//
// Parsing is a pure, synchronous function of a UTF-8 input string: no
// I/O, no shared state, and no error return, because the parser is
// tolerant by construction (see the internal/parser package and the
// diag package) and always produces a best-effort tree.
//
// # Example
//
//	doc := wxml.Parse(`<view class="a {{b}}"><text>{{c}}</text></view>`)
//	view := doc.Children[0].(*ast.Element)
//
// Serializing the tree to JSON, bridging it to a host runtime, and
// interpreting WXML directives (wx:if, wx:for, data-binding scope) are
// all outside this package's job; directives are preserved as ordinary
// attributes and expression bodies are captured verbatim, unvalidated.
package wxml

import (
	"github.com/jaskang/miniprogram-template-parser/internal/diag"
	"github.com/jaskang/miniprogram-template-parser/internal/parser"
	"github.com/jaskang/miniprogram-template-parser/pkg/wxml/ast"
)

// Re-export the AST types at the package's own import path, so callers
// that only need the data model don't also need to import the ast
// subpackage directly.
type (
	Position        = ast.Position
	Location        = ast.Location
	Node            = ast.Node
	Document        = ast.Document
	Element         = ast.Element
	Text            = ast.Text
	Expression      = ast.Expression
	Comment         = ast.Comment
	Attribute       = ast.Attribute
	AttributeValue  = ast.AttributeValue
	Static          = ast.Static
	ExpressionValue = ast.ExpressionValue
)

// Diagnostic is one optional, out-of-band parse recovery note. See
// ParseWithDiagnostics.
type Diagnostic = diag.Diagnostic

// Parse parses input and returns the root Document node. It never
// returns an error and never panics, regardless of how malformed input
// is; recovery is always best-effort, per the tolerant parsing policy.
func Parse(input string) *Document {
	return parser.New(input).Parse()
}

// ParseWithDiagnostics parses input exactly as Parse does, additionally
// returning the diagnostics recorded along the way (mismatched end
// tags, unterminated comments/expressions/strings, elements left open
// at EOF). Not every recovery is recorded: a stray end tag with no open
// element is discarded, and an unclosed "{{" inside an attribute value
// is cut short, without a diagnostic. The returned Document is identical in shape to what Parse
// would produce for the same input; diagnostics never change the AST.
func ParseWithDiagnostics(input string) (*Document, []Diagnostic) {
	p, collector := parser.NewWithDiagnostics(input)
	doc := p.Parse()
	return doc, collector.Diagnostics()
}
