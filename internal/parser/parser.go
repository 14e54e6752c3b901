// Package parser implements the WXML document parser: the driver state
// machine that recognizes tags, attributes, text, comments, and
// expressions, and builds the Document node tree.
//
// Per-tag, the implicit grammar is:
//
//	BeforeTagName -> TagName -> BeforeAttributeName -> AttributeName ->
//	AfterAttributeName -> BeforeValue -> ValueQuoted|ValueUnquoted ->
//	AfterValue -> SelfClose? -> End
//
// Element nesting is tracked with an explicit, heap-allocated stack
// rather than recursive descent, so that source depth cannot exhaust
// the goroutine stack: a malicious or merely very deeply nested
// template only grows a slice, never the call stack.
package parser

import (
	"fmt"

	"github.com/jaskang/miniprogram-template-parser/internal/attrvalue"
	"github.com/jaskang/miniprogram-template-parser/internal/diag"
	"github.com/jaskang/miniprogram-template-parser/internal/location"
	"github.com/jaskang/miniprogram-template-parser/internal/stream"
	"github.com/jaskang/miniprogram-template-parser/pkg/wxml/ast"
)

// Parser drives a single parse of a WXML input. It is not safe for
// concurrent use, and not meant to be reused across inputs; construct
// a fresh one per call to Parse.
type Parser struct {
	stream  *stream.Stream
	tracker *location.Tracker
	diags   *diag.Collector
}

// New creates a parser over input that silently discards diagnostics.
func New(input string) *Parser {
	s := stream.New(input)
	return &Parser{stream: s, tracker: location.New(s)}
}

// NewWithDiagnostics creates a parser over input and returns a
// Collector that will accumulate the out-of-band recovery notes
// produced during Parse. The parse itself never fails: Parse's return
// value does not depend on whether any diagnostic was recorded.
func NewWithDiagnostics(input string) (*Parser, *diag.Collector) {
	p := New(input)
	p.diags = &diag.Collector{}
	return p, p.diags
}

// frame is one open element on the explicit element stack. frame{name:
// ""} at the bottom of the stack represents the Document itself.
type frame struct {
	name     string
	tok      location.Token
	attrs    []ast.Attribute
	children []ast.Node
}

// Parse consumes the entire input and returns the root Document node.
// It never returns an error and never panics on malformed input; see
// the diag package for how recovery is instead surfaced out of band.
func (p *Parser) Parse() *ast.Document {
	root := &frame{tok: p.tracker.Mark()}
	stack := []*frame{root}

	for {
		cur := stack[len(stack)-1]

		if p.stream.IsEOF() {
			break
		}

		switch {
		case p.stream.StartsWith("<!--"):
			cur.children = append(cur.children, p.parseComment())

		case p.stream.StartsWith("</"):
			name := p.parseEndTagName()
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
				elem, mismatched := p.finishElement(cur, name)
				if mismatched {
					p.diags.Add(diag.KindMismatchedEndTag,
						fmt.Sprintf("end tag %q does not match open element %q", name, cur.name),
						elem.Location)
				}
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, elem)
			}
			// A stray end tag with nothing open (len(stack) == 1, the
			// Document frame) is discarded: it was already consumed
			// by parseEndTagName above.

		case p.stream.StartsWith("{{"):
			cur.children = append(cur.children, p.parseExpression())

		case p.atStartTag():
			elem := p.parseStartTag(&stack)
			if elem != nil {
				stack[len(stack)-1].children = append(stack[len(stack)-1].children, elem)
			}

		default:
			cur.children = append(cur.children, p.parseText())
		}
	}

	// EOF: close every still-open element in place, innermost first.
	for len(stack) > 1 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		loc := p.tracker.Finish(cur.tok)
		p.diags.Add(diag.KindUnclosedElement,
			fmt.Sprintf("element %q not closed before end of input", cur.name), loc)
		elem := &ast.Element{
			Start:      cur.tok.StartPosition().Offset,
			End:        loc.End.Offset,
			Location:   loc,
			Name:       cur.name,
			Attributes: cur.attrs,
			Children:   cur.children,
		}
		parent := stack[len(stack)-1]
		parent.children = append(parent.children, elem)
	}

	docLoc := p.tracker.Finish(root.tok)
	return &ast.Document{
		Start:    root.tok.StartPosition().Offset,
		End:      docLoc.End.Offset,
		Location: docLoc,
		Children: root.children,
	}
}

// finishElement builds the Element for a frame being popped by an end
// tag named endName, reporting whether endName mismatched the frame's
// own name (the frame is closed either way).
func (p *Parser) finishElement(f *frame, endName string) (*ast.Element, bool) {
	loc := p.tracker.Finish(f.tok)
	elem := &ast.Element{
		Start:      f.tok.StartPosition().Offset,
		End:        loc.End.Offset,
		Location:   loc,
		Name:       f.name,
		Attributes: f.attrs,
		Children:   f.children,
	}
	return elem, endName != f.name
}

// parseStartTag parses one start tag at the current position. For a
// self-closing tag or a <wxs> opaque element it returns the finished
// Element directly. Otherwise it pushes a new open frame onto *stack
// and returns nil; the frame is finished later, either by a matching
// end tag or by EOF cleanup.
func (p *Parser) parseStartTag(stack *[]*frame) *ast.Element {
	tok := p.tracker.Mark()
	p.stream.Advance() // consume '<'
	name := p.readName()

	var attrs []ast.Attribute
	for {
		p.skipWhitespace()

		if p.stream.IsEOF() {
			loc := p.tracker.Finish(tok)
			p.diags.Add(diag.KindUnclosedTag,
				fmt.Sprintf("start tag %q not closed before end of input", name), loc)
			return &ast.Element{
				Start: tok.StartPosition().Offset, End: loc.End.Offset,
				Location: loc, Name: name, Attributes: attrs,
			}
		}

		if p.stream.StartsWith("/>") {
			p.stream.Advance()
			p.stream.Advance()
			loc := p.tracker.Finish(tok)
			return &ast.Element{
				Start: tok.StartPosition().Offset, End: loc.End.Offset,
				Location: loc, Name: name, Attributes: attrs, IsSelfClosing: true,
			}
		}

		if r, ok := p.stream.Peek(); ok && r == '>' {
			p.stream.Advance()
			break
		}

		attrs = append(attrs, p.parseAttribute())
	}

	if name == "wxs" {
		content, closed := p.parseWxsBody()
		loc := p.tracker.Finish(tok)
		if !closed {
			p.diags.Add(diag.KindUnclosedElement,
				fmt.Sprintf("element %q not closed before end of input", name), loc)
		}
		return &ast.Element{
			Start: tok.StartPosition().Offset, End: loc.End.Offset,
			Location: loc, Name: name, Attributes: attrs, Content: content,
		}
	}

	*stack = append(*stack, &frame{name: name, tok: tok, attrs: attrs})
	return nil
}

// parseAttribute parses one "name", "name=value", or "name='value'"
// pair starting at the current position.
func (p *Parser) parseAttribute() ast.Attribute {
	tok := p.tracker.Mark()
	name := p.readAttrName()

	if name == "" {
		// readAttrName stopped immediately (e.g. a stray '/' or '>' not
		// already handled by the caller's own checks). Consuming one
		// scalar here guarantees the attribute loop in parseStartTag
		// always makes forward progress instead of spinning forever.
		if r, ok := p.stream.Peek(); ok && r != '=' {
			p.stream.Advance()
		}
	}

	var values []ast.AttributeValue
	if r, ok := p.stream.Peek(); ok && r == '=' {
		p.stream.Advance() // consume '='
		if q, ok := p.stream.Peek(); ok && (q == '"' || q == '\'') {
			p.stream.Advance() // consume opening quote
			values = attrvalue.SplitQuoted(p.stream, p.tracker, q, p.diags)
		} else {
			values = attrvalue.SplitUnquoted(p.stream, p.tracker)
		}
	}

	loc := p.tracker.Finish(tok)
	return ast.Attribute{Name: name, Value: values, Location: loc}
}

// parseComment parses a "<!-- ... -->" region. Content excludes the
// delimiters. An unterminated comment consumes to EOF.
func (p *Parser) parseComment() *ast.Comment {
	tok := p.tracker.Mark()
	for i := 0; i < 4; i++ {
		p.stream.Advance() // <!--
	}
	contentStartByte := p.stream.BytePosition()

	for !p.stream.IsEOF() && !p.stream.StartsWith("-->") {
		p.stream.Advance()
	}
	content := p.stream.SliceFrom(contentStartByte)

	if p.stream.IsEOF() {
		loc := p.tracker.Finish(tok)
		p.diags.Add(diag.KindUnterminatedComment, "comment not closed by '-->'", loc)
	} else {
		for i := 0; i < 3; i++ {
			p.stream.Advance() // -->
		}
	}

	loc := p.tracker.Finish(tok)
	return &ast.Comment{Start: tok.StartPosition().Offset, End: loc.End.Offset, Location: loc, Content: content}
}

// parseExpression parses a standalone "{{ ... }}" node. Content
// includes the surrounding braces. An unterminated expression consumes
// to EOF.
func (p *Parser) parseExpression() *ast.Expression {
	tok := p.tracker.Mark()
	p.stream.Advance() // {
	p.stream.Advance() // {

	for {
		if p.stream.IsEOF() {
			loc := p.tracker.Finish(tok)
			p.diags.Add(diag.KindUnterminatedExpression, "expression not closed by '}}'", loc)
			break
		}
		if p.stream.StartsWith("}}") {
			p.stream.Advance()
			p.stream.Advance()
			break
		}
		p.stream.Advance()
	}

	content := p.stream.SliceFrom(tok.StartByte())
	loc := p.tracker.Finish(tok)
	return &ast.Expression{Start: tok.StartPosition().Offset, End: loc.End.Offset, Location: loc, Content: content}
}

// parseText accumulates a literal run up to the next structural
// boundary: a tag, an expression, or EOF. A lone '<' that does not
// begin a comment, end tag, or start tag is literal text, per the
// tolerant parsing policy.
func (p *Parser) parseText() *ast.Text {
	tok := p.tracker.Mark()
	startByte := p.stream.BytePosition()

	for !p.atStructuralBoundary() {
		p.stream.Advance()
	}

	content := p.stream.SliceFrom(startByte)
	loc := p.tracker.Finish(tok)
	return &ast.Text{Start: tok.StartPosition().Offset, End: loc.End.Offset, Location: loc, Content: content}
}

// parseEndTagName consumes "</", a name, optional whitespace, and a
// closing '>' if present, and returns the name. It is consumed
// unconditionally: whether the name matches any open element is the
// caller's concern.
func (p *Parser) parseEndTagName() string {
	p.stream.Advance() // <
	p.stream.Advance() // /
	name := p.readName()
	p.skipWhitespace()
	if r, ok := p.stream.Peek(); ok && r == '>' {
		p.stream.Advance()
	}
	return name
}

// parseWxsBody scans raw characters, without tokenizing them as
// markup, until the literal end tag "</wxs>" (any whitespace tolerated
// between its parts) or EOF. It returns the scanned body and whether a
// closing tag was found.
func (p *Parser) parseWxsBody() (string, bool) {
	startByte := p.stream.BytePosition()
	for {
		if p.stream.IsEOF() {
			return p.stream.SliceFrom(startByte), false
		}
		if p.stream.StartsWith("</") {
			if length, ok := p.matchWxsEndTag(); ok {
				body := p.stream.SliceFrom(startByte)
				for i := 0; i < length; i++ {
					p.stream.Advance()
				}
				return body, true
			}
		}
		p.stream.Advance()
	}
}

// matchWxsEndTag reports whether "</ wxs >"-shaped text (any amount of
// whitespace around the case-sensitive literal "wxs") starts at the
// current position, without consuming anything. It returns the number
// of scalars the match spans so the caller can consume exactly that
// many.
func (p *Parser) matchWxsEndTag() (length int, ok bool) {
	i := 0
	expect := func(want rune) bool {
		r, got := p.stream.PeekAt(i)
		if !got || r != want {
			return false
		}
		i++
		return true
	}
	skipWS := func() {
		for {
			r, got := p.stream.PeekAt(i)
			if !got || !isWhitespace(r) {
				return
			}
			i++
		}
	}

	if !expect('<') || !expect('/') {
		return 0, false
	}
	skipWS()
	for _, want := range "wxs" {
		if !expect(want) {
			return 0, false
		}
	}
	skipWS()
	if !expect('>') {
		return 0, false
	}
	return i, true
}

// readName reads a tag name: a run of ASCII letters, digits, '-', '_',
// ':'. It does not check the first character and may return an empty
// name; atStartTag checks for a name-start character before a start
// tag is parsed.
func (p *Parser) readName() string {
	startByte := p.stream.BytePosition()
	for {
		r, ok := p.stream.Peek()
		if !ok || !isNameChar(r) {
			break
		}
		p.stream.Advance()
	}
	return p.stream.SliceFrom(startByte)
}

// readAttrName reads an attribute name: any run of scalars that is not
// whitespace, '=', '/', or '>'.
func (p *Parser) readAttrName() string {
	startByte := p.stream.BytePosition()
	for {
		r, ok := p.stream.Peek()
		if !ok || isWhitespace(r) || r == '=' || r == '/' || r == '>' {
			break
		}
		p.stream.Advance()
	}
	return p.stream.SliceFrom(startByte)
}

func (p *Parser) skipWhitespace() {
	for {
		r, ok := p.stream.Peek()
		if !ok || !isWhitespace(r) {
			return
		}
		p.stream.Advance()
	}
}

// atStartTag reports whether the current position begins a start tag:
// '<' followed by a name-start character.
func (p *Parser) atStartTag() bool {
	r, ok := p.stream.Peek()
	if !ok || r != '<' {
		return false
	}
	next, ok := p.stream.PeekAt(1)
	return ok && isNameStart(next)
}

// atStructuralBoundary reports whether the current position is where a
// text run must stop: EOF, an expression, a comment, an end tag, or a
// start tag. A '<' that begins none of these is not a boundary and is
// folded into the surrounding text as a literal character.
func (p *Parser) atStructuralBoundary() bool {
	if p.stream.IsEOF() {
		return true
	}
	if p.stream.StartsWith("{{") {
		return true
	}
	if p.stream.StartsWith("<!--") {
		return true
	}
	if p.stream.StartsWith("</") {
		return true
	}
	return p.atStartTag()
}

func isNameStart(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || r == '_' || r == ':'
}

func isNameChar(r rune) bool {
	return isNameStart(r) || (r >= '0' && r <= '9') || r == '-'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
