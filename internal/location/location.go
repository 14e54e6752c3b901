// Package location composes Positions from the stream into the
// Location ranges attached to every AST node. It is a thin wrapper so
// that node-boundary bookkeeping reads the same way at every call site
// in the parser.
package location

import "github.com/jaskang/miniprogram-template-parser/pkg/wxml/ast"

// positioner is the subset of *stream.Stream the tracker needs. Kept
// as an interface so tests can drive it with a fake cursor.
type positioner interface {
	Position() ast.Position
	BytePosition() int
}

// Token is an opaque marker returned by Mark and consumed by Finish.
// It captures both the scalar Position (for the Location) and the raw
// byte offset (for slicing the source text of the spanned region).
type Token struct {
	start     ast.Position
	startByte int
}

// Tracker snapshots a stream's position at marked boundaries and
// composes start/end snapshots into Locations.
type Tracker struct {
	stream positioner
}

// New creates a Tracker reading positions from stream.
func New(stream positioner) *Tracker {
	return &Tracker{stream: stream}
}

// Mark records the stream's current position as the start of a
// soon-to-be-produced node.
func (t *Tracker) Mark() Token {
	return Token{start: t.stream.Position(), startByte: t.stream.BytePosition()}
}

// Finish closes the range started by tok at the stream's current
// position, producing the node's Location.
func (t *Tracker) Finish(tok Token) ast.Location {
	return ast.Location{Start: tok.start, End: t.stream.Position()}
}

// StartByte returns the byte offset a Token was marked at, for slicing
// the raw source text of the spanned region via Stream.SliceFrom.
func (tok Token) StartByte() int {
	return tok.startByte
}

// StartPosition returns the scalar Position a Token was marked at.
func (tok Token) StartPosition() ast.Position {
	return tok.start
}
