// Package astdump renders a parsed Document as an indented, deterministic
// text tree for debugging and golden-file tests. It is not a
// serialization format. encoding/json can marshal the ast types, but
// its output carries no variant tag and cannot be decoded back into
// Node values.
package astdump

import (
	"bytes"
	"fmt"
	"strings"
	"sync"

	"github.com/jaskang/miniprogram-template-parser/pkg/wxml/ast"
)

// bufferPool reduces allocation churn when dumping many small trees, as
// in a table-driven test that calls Dump once per case.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= 64*1024 {
		bufferPool.Put(buf)
	}
}

// Dump renders doc's children as an indented tree, one line per node,
// each shaped as "<Type> <detail> [start,end)". The Document root
// itself gets no line, and an opaque element's raw Content is written
// on its own `Content "..."` line under the element. Two dumps are byte-identical
// for byte-identical trees, which is what makes this suitable for
// golden-file comparisons.
func Dump(doc *ast.Document) string {
	buf := getBuffer()
	defer putBuffer(buf)

	writeNodes(buf, "Document", doc.Children, 0)

	out := buf.String()
	return strings.Clone(out)
}

func writeNodes(buf *bytes.Buffer, _ string, nodes []ast.Node, depth int) {
	for _, n := range nodes {
		writeNode(buf, n, depth)
	}
}

func writeNode(buf *bytes.Buffer, n ast.Node, depth int) {
	buf.WriteString(strings.Repeat("  ", depth))
	start, end := n.Span()

	switch node := n.(type) {
	case *ast.Element:
		fmt.Fprintf(buf, "Element %s", node.Name)
		if node.IsSelfClosing {
			buf.WriteString(" /")
		}
		for _, attr := range node.Attributes {
			fmt.Fprintf(buf, " %s=%s", attr.Name, dumpAttrValue(attr.Value))
		}
		fmt.Fprintf(buf, " [%d,%d)\n", start, end)
		if node.Content != "" {
			buf.WriteString(strings.Repeat("  ", depth+1))
			fmt.Fprintf(buf, "Content %q\n", node.Content)
		}
		writeNodes(buf, node.Name, node.Children, depth+1)
	case *ast.Text:
		fmt.Fprintf(buf, "Text %q [%d,%d)\n", node.Content, start, end)
	case *ast.Expression:
		fmt.Fprintf(buf, "Expression %q [%d,%d)\n", node.Content, start, end)
	case *ast.Comment:
		fmt.Fprintf(buf, "Comment %q [%d,%d)\n", node.Content, start, end)
	default:
		fmt.Fprintf(buf, "Unknown %T [%d,%d)\n", n, start, end)
	}
}

// dumpAttrValue reconstructs the literal attribute-value text by
// concatenating fragments in order; ExpressionValue.Text already
// includes its "{{" "}}" delimiters, so no extra marker is needed to
// tell fragments apart in the dump.
func dumpAttrValue(value []ast.AttributeValue) string {
	if len(value) == 0 {
		return "(empty)"
	}
	var b strings.Builder
	for _, frag := range value {
		b.WriteString(frag.Text())
	}
	return fmt.Sprintf("%q", b.String())
}
