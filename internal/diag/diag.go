// Package diag carries optional, out-of-band parse diagnostics. The
// parser is tolerant by design (see the document parser's error
// handling policy): it never fails, but it may want to tell a caller
// what it had to paper over. Diagnostic is that note; nothing in this
// module ever turns one into an error.
package diag

import "github.com/jaskang/miniprogram-template-parser/pkg/wxml/ast"

// Kind classifies a Diagnostic by the recovery policy that produced
// it.
type Kind string

const (
	// KindUnterminatedComment: "<!--" was never closed by "-->".
	KindUnterminatedComment Kind = "unterminated_comment"
	// KindUnterminatedExpression: "{{" was never closed by "}}".
	KindUnterminatedExpression Kind = "unterminated_expression"
	// KindUnterminatedString: an attribute's quote was never closed.
	KindUnterminatedString Kind = "unterminated_string"
	// KindMismatchedEndTag: a "</name>" didn't match the innermost
	// open element.
	KindMismatchedEndTag Kind = "mismatched_end_tag"
	// KindUnclosedTag: input ended before a start tag's closing '>'.
	KindUnclosedTag Kind = "unclosed_tag"
	// KindUnclosedElement: input ended before an element's end tag.
	KindUnclosedElement Kind = "unclosed_element"
)

// Diagnostic is a single best-effort recovery note: what happened and
// where, never a reason to abort the parse.
type Diagnostic struct {
	Kind     Kind
	Message  string
	Location ast.Location
}

// Collector accumulates Diagnostics during a single parse. The zero
// value is ready to use; a nil *Collector accepts and silently
// discards every Add call, so parser code can hold a possibly-nil
// collector without a nil check at every call site.
type Collector struct {
	diagnostics []Diagnostic
}

// Add records a diagnostic. Safe to call on a nil *Collector.
func (c *Collector) Add(kind Kind, message string, loc ast.Location) {
	if c == nil {
		return
	}
	c.diagnostics = append(c.diagnostics, Diagnostic{Kind: kind, Message: message, Location: loc})
}

// Diagnostics returns the diagnostics recorded so far, in emission
// order. It returns nil (not an empty slice) for a nil Collector or
// one that recorded nothing.
func (c *Collector) Diagnostics() []Diagnostic {
	if c == nil {
		return nil
	}
	return c.diagnostics
}
