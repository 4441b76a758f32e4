package jsdoc

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messages(t *testing.T, deps []Deprecation) []any {
	t.Helper()
	out := make([]any, 0, len(deps))
	for _, d := range deps {
		if d.Message == nil {
			out = append(out, nil)
			continue
		}
		out = append(out, *d.Message)
	}
	return out
}

func TestParse_BlockComment(t *testing.T) {
	raw := `/**
 * Adds numbers.
 *
 * @param {number} a
 * @deprecated since 2.0
 *   use add2 instead
 * @returns {number}
 */`
	c, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "Adds numbers.", c.Description)
	require.Len(t, c.Tags, 3)
	assert.Equal(t, "param", c.Tags[0].Title)
	assert.Equal(t, "deprecated", c.Tags[1].Title)
	require.NotNil(t, c.Tags[1].Description)
	assert.Equal(t, "since 2.0\nuse add2 instead", *c.Tags[1].Description)
	assert.Equal(t, "returns", c.Tags[2].Title)
	require.NotNil(t, c.Tags[2].Description)
	assert.Equal(t, "{number}", *c.Tags[2].Description)
}

func TestParse_Malformed(t *testing.T) {
	cases := map[string]string{
		"not a comment":  "function foo() {}",
		"unterminated":   "/** @deprecated",
		"too short":      "/*/",
		"empty tag":      "/** @ use bar */",
		"bare tag token": "/**\n * @\n */",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedComment)
		})
	}
}

func TestDeprecations(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []any
	}{
		{name: "no description", raw: "/** @deprecated */", want: []any{nil}},
		{name: "inline description", raw: "/** @deprecated use baz instead */", want: []any{"use baz instead"}},
		{name: "line comment", raw: "// @deprecated old api", want: []any{"old api"}},
		{name: "plain block comment", raw: "/* @deprecated */", want: []any{nil}},
		{name: "no tags", raw: "/** Just prose. */", want: []any{}},
		{name: "other tags only", raw: "/**\n * @param x\n * @returns y\n */", want: []any{}},
		{name: "mid-line at sign", raw: "/** mail me@example.com */", want: []any{}},
		{name: "title must match exactly", raw: "/** @deprecatedSince 2 */", want: []any{}},
		{
			name: "two stacked tags",
			raw:  "/**\n * @deprecated first\n * @deprecated second\n */",
			want: []any{"first", "second"},
		},
		{
			name: "duplicates preserved",
			raw:  "/**\n * @deprecated same\n * @deprecated same\n */",
			want: []any{"same", "same"},
		},
		{
			name: "tab after title",
			raw:  "/** @deprecated\tuse qux */",
			want: []any{"use qux"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps, err := Deprecations(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, messages(t, deps))
		})
	}
}

func TestDeprecations_InterleavedWithOtherTags(t *testing.T) {
	others := []string{"@param {string} a", "@returns {void}", "@see other", "@since 1.2"}

	for n := 0; n <= 3; n++ {
		for m := 0; m <= len(others); m++ {
			t.Run(fmt.Sprintf("n=%d m=%d", n, m), func(t *testing.T) {
				var lines, want []string
				oi := 0
				for i := 0; i < n || oi < m; i++ {
					// Alternate starting with whichever kind is left so the
					// deprecated tags land at varying offsets.
					if oi < m && (i%2 == 0 || i >= n) {
						lines = append(lines, " * "+others[oi])
						oi++
					}
					if i < n {
						msg := fmt.Sprintf("reason %d", i)
						lines = append(lines, " * @deprecated "+msg)
						want = append(want, msg)
					}
				}
				raw := "/**\n" + strings.Join(lines, "\n") + "\n */"

				deps, err := Deprecations(raw)
				require.NoError(t, err)
				require.Len(t, deps, n)
				for i, d := range deps {
					require.NotNil(t, d.Message)
					assert.Equal(t, want[i], *d.Message)
				}
			})
		}
	}
}
