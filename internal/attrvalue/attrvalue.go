// Package attrvalue splits a raw attribute-value region into an
// ordered sequence of Static and Expression fragments, each carrying
// its own sub-span. It is consulted by the document parser once it has
// located the boundaries (quoted or unquoted) of an attribute's value.
package attrvalue

import (
	"github.com/jaskang/miniprogram-template-parser/internal/diag"
	"github.com/jaskang/miniprogram-template-parser/internal/location"
	"github.com/jaskang/miniprogram-template-parser/internal/stream"
	"github.com/jaskang/miniprogram-template-parser/pkg/wxml/ast"
)

// SplitQuoted splits the value of a quoted attribute. The opening
// quote must already have been consumed from s by the caller; SplitQuoted
// consumes scalars through and including the matching closing quote, or
// through EOF or the enclosing tag's unescaped '>' if the string is
// never closed, whichever comes first (the tolerant error policy: an
// unterminated quote must not swallow the rest of the document). The
// quote itself is structural and never appears in a returned fragment,
// and a terminating '>' reached this way is left unconsumed so the
// caller's own tag-closing logic still sees it. diags may be nil; if
// the quote is never matched, a KindUnterminatedString diagnostic is
// recorded on it.
func SplitQuoted(s *stream.Stream, tr *location.Tracker, quote rune, diags *diag.Collector) []ast.AttributeValue {
	tok := tr.Mark()
	fragments, consumed := split(s, tr, func() bool {
		if s.IsEOF() {
			return true
		}
		r, _ := s.Peek()
		return r == quote || r == '>'
	}, func() bool {
		// Consume only the matching closing quote; a terminating '>' or
		// EOF belongs to the enclosing tag, not this value, and must be
		// left for the caller to see.
		r, ok := s.Peek()
		return ok && r == quote
	})
	if !consumed {
		diags.Add(diag.KindUnterminatedString, "attribute value not closed by a matching quote", tr.Finish(tok))
	}
	return fragments
}

// SplitUnquoted splits the value of an unquoted attribute. It consumes
// scalars until whitespace, '/', '>' or EOF, without consuming the
// terminating scalar. These terminators are not checked inside a "{{"
// expression: it runs to its "}}", or to EOF when there is none.
func SplitUnquoted(s *stream.Stream, tr *location.Tracker) []ast.AttributeValue {
	fragments, _ := split(s, tr, func() bool {
		if s.IsEOF() {
			return true
		}
		r, _ := s.Peek()
		return isAttrValueTerminator(r)
	}, func() bool { return false })
	return fragments
}

func isAttrValueTerminator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '/', '>':
		return true
	default:
		return false
	}
}

// split is the shared scan loop behind SplitQuoted and SplitUnquoted.
// atTerminator reports whether the stream sits at the end of the
// value region; shouldConsumeTerminator is evaluated once atTerminator
// fires and says whether the scalar the stream is now sitting on should
// be consumed as part of the value (a matching closing quote) or left
// for the caller (EOF, or a '>' that belongs to the enclosing tag). The
// second return value reports whether the terminator was consumed.
// Inside a "{{" expression only a terminator that shouldConsumeTerminator
// accepts (a quoted value's closing quote) ends the scan, so an
// unquoted value's terminators do not cut an expression short.
func split(s *stream.Stream, tr *location.Tracker, atTerminator func() bool, shouldConsumeTerminator func() bool) ([]ast.AttributeValue, bool) {
	var fragments []ast.AttributeValue

	staticTok := tr.Mark()
	staticStartByte := s.BytePosition()
	hasStatic := false

	flushStatic := func(endByte int) {
		if !hasStatic {
			return
		}
		content := s.SliceBetween(staticStartByte, endByte)
		if content != "" {
			loc := tr.Finish(staticTok)
			fragments = append(fragments, ast.Static{
				Content:  content,
				Start:    staticTok.StartPosition().Offset,
				End:      loc.End.Offset,
				Location: loc,
			})
		}
		hasStatic = false
	}

	for {
		if atTerminator() {
			flushStatic(s.BytePosition())
			consumed := shouldConsumeTerminator()
			if consumed {
				s.Advance() // consume the closing quote
			}
			return fragments, consumed
		}

		if s.StartsWith("{{") {
			flushStatic(s.BytePosition())

			exprTok := tr.Mark()
			exprStartByte := s.BytePosition()
			s.Advance() // {
			s.Advance() // {

			for {
				if s.IsEOF() || (atTerminator() && shouldConsumeTerminator()) {
					// unterminated expression: best-effort, end at a quoted
					// value's closing quote (left for the terminator check
					// above to consume) or at EOF
					break
				}
				if s.StartsWith("}}") {
					s.Advance() // }
					s.Advance() // }
					break
				}
				s.Advance()
			}

			content := s.SliceFrom(exprStartByte)
			loc := tr.Finish(exprTok)
			fragments = append(fragments, ast.ExpressionValue{
				Content:  content,
				Start:    exprTok.StartPosition().Offset,
				End:      loc.End.Offset,
				Location: loc,
			})

			staticTok = tr.Mark()
			staticStartByte = s.BytePosition()
			hasStatic = false
			continue
		}

		if !hasStatic {
			staticTok = tr.Mark()
			staticStartByte = s.BytePosition()
			hasStatic = true
		}
		s.Advance()
	}
}
