package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestZeroPositionIsOneIndexed(t *testing.T) {
	p := ZeroPosition()
	assert.EqualValues(t, 0, p.Offset)
	assert.EqualValues(t, 1, p.Line)
	assert.EqualValues(t, 1, p.Column)
}

func TestNodeVariantsReportTheirType(t *testing.T) {
	var nodes = []Node{
		&Document{},
		&Element{Name: "view"},
		&Text{Content: "x"},
		&Expression{Content: "{{x}}"},
		&Comment{Content: "c"},
	}
	wantTypes := []NodeType{NodeDocument, NodeElement, NodeText, NodeExpression, NodeComment}

	for i, n := range nodes {
		assert.Equal(t, wantTypes[i], n.Type())
	}
}

func TestAttributeValueVariantsReportTheirKind(t *testing.T) {
	var values = []AttributeValue{
		Static{Content: "a"},
		ExpressionValue{Content: "{{a}}"},
	}
	wantKinds := []AttributeValueKind{AttributeValueStatic, AttributeValueExpression}

	for i, v := range values {
		assert.Equal(t, wantKinds[i], v.Kind())
	}
}

func TestElementSpanMatchesStartEnd(t *testing.T) {
	el := &Element{Start: 3, End: 10}
	start, end := el.Span()
	assert.EqualValues(t, 3, start)
	assert.EqualValues(t, 10, end)
}
