// Package stream implements the position-aware character cursor the
// parser reads from. It operates on Unicode scalars, not bytes, so
// that offsets reported to callers stay correct for WXML's common
// mix of ASCII markup and non-ASCII (frequently Chinese) text.
package stream

import (
	"strings"
	"unicode/utf8"

	"github.com/jaskang/miniprogram-template-parser/pkg/wxml/ast"
)

// Stream wraps an input string and exposes position-aware peek/advance
// over its Unicode scalars. The zero value is not usable; construct
// with New.
type Stream struct {
	input      string
	byteOffset int
	scalar     uint32
	line       uint32
	column     uint32
}

// New creates a Stream positioned at the start of input.
func New(input string) *Stream {
	return &Stream{
		input:  input,
		line:   1,
		column: 1,
	}
}

// IsEOF reports whether the stream has no more scalars to read.
func (s *Stream) IsEOF() bool {
	return s.byteOffset >= len(s.input)
}

// Peek returns the scalar at the current position without advancing.
func (s *Stream) Peek() (rune, bool) {
	if s.IsEOF() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.byteOffset:])
	return r, true
}

// PeekAt returns the scalar k positions ahead of the current one
// (PeekAt(0) is equivalent to Peek) without advancing. It is O(k).
func (s *Stream) PeekAt(k int) (rune, bool) {
	off := s.byteOffset
	for i := 0; i < k; i++ {
		if off >= len(s.input) {
			return 0, false
		}
		_, size := utf8.DecodeRuneInString(s.input[off:])
		off += size
	}
	if off >= len(s.input) {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(s.input[off:])
	return r, true
}

// Advance consumes and returns the current scalar, updating the
// line/column/offset cursors. A "\r\n" pair is consumed as a single
// line break: advancing past the "\r" of such a pair returns '\r' but
// folds the paired "\n" into the same advance so line/column accounting
// treats the two bytes as one break.
func (s *Stream) Advance() (rune, bool) {
	r, ok := s.Peek()
	if !ok {
		return 0, false
	}
	_, size := utf8.DecodeRuneInString(s.input[s.byteOffset:])
	s.byteOffset += size
	s.scalar++

	if r == '\r' {
		if next, ok := s.Peek(); ok && next == '\n' {
			_, nsize := utf8.DecodeRuneInString(s.input[s.byteOffset:])
			s.byteOffset += nsize
			s.scalar++
		}
		s.line++
		s.column = 1
		return r, true
	}
	if r == '\n' {
		s.line++
		s.column = 1
		return r, true
	}
	s.column++
	return r, true
}

// StartsWith reports whether literal matches the stream starting at
// the current position, without advancing.
func (s *Stream) StartsWith(literal string) bool {
	return strings.HasPrefix(s.input[s.byteOffset:], literal)
}

// Position returns the current position. It is O(1) and safe to copy.
func (s *Stream) Position() ast.Position {
	return ast.Position{Offset: s.scalar, Line: s.line, Column: s.column}
}

// BytePosition returns the current byte offset into the original
// input, for use with SliceFrom when extracting raw content spans.
func (s *Stream) BytePosition() int {
	return s.byteOffset
}

// SliceFrom returns the substring of the input from the given byte
// offset (as returned by a prior BytePosition call) up to the current
// position.
func (s *Stream) SliceFrom(startByte int) string {
	return s.input[startByte:s.byteOffset]
}

// SliceBetween returns the substring of the input between two byte
// offsets, both as returned by BytePosition.
func (s *Stream) SliceBetween(startByte, endByte int) string {
	return s.input[startByte:endByte]
}

// Len returns the total number of Unicode scalars in the input.
func (s *Stream) Len() uint32 {
	return uint32(utf8.RuneCountInString(s.input))
}
