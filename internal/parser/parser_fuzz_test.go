package parser

import "testing"

// FuzzParse only asserts the tolerant-parsing invariant: no input, no
// matter how malformed, may make the parser panic or fail to
// terminate. It does not assert anything about the resulting tree's
// shape; dedicated grammar and scenario tests own that.
func FuzzParse(f *testing.F) {
	seeds := []string{
		``,
		`<a></a>`,
		`<a/>`,
		`<a><b></a>`,
		`</a>`,
		`<!-- c -->`,
		`<!-- unterminated`,
		`{{expr}}`,
		`{{unterminated`,
		`<view class="{{x}}"></view>`,
		`<wxs>var x = 1 < 2;</wxs>`,
		`<wxs>no close`,
		`<a`,
		`<a attr`,
		`<a attr=`,
		`<a attr="`,
		"1 < 2 > 3",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		doc := New(input).Parse()
		if doc == nil {
			t.Fatal("Parse returned a nil Document")
		}
	})
}
