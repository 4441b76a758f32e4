package warning

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestMessage(t *testing.T) {
	assert.Equal(t,
		`Deprecated: Function "foo" is deprecated in /src/a.js on line 1`,
		Message("foo", 1, "src/a.js"))
}

func TestSynthesize_NullMessage(t *testing.T) {
	loc := SourceLocation{
		FunctionName:   "foo",
		PackageName:    "x",
		PackageVersion: "1.0.0",
		ScriptColumn:   0,
		ScriptLine:     1,
		ScriptPath:     "src/a.js",
	}
	stmt := Synthesize(SeverityWarn, Message("foo", 1, "src/a.js"), loc)

	want := `console.warn("Deprecated: Function \"foo\" is deprecated in /src/a.js on line 1", ` +
		`{ functionName: "foo", message: null, packageName: "x", packageVersion: "1.0.0", ` +
		`scriptColumn: 0, scriptLine: 1, scriptPath: "src/a.js" });`
	assert.Equal(t, want, stmt.String())
}

func TestSynthesize_MessageKeyAlwaysPresent(t *testing.T) {
	for _, msg := range []*string{nil, strPtr(""), strPtr("use baz instead")} {
		stmt := Synthesize(SeverityWarn, "m", SourceLocation{Message: msg})

		call, ok := stmt.Expression.(CallExpression)
		require.True(t, ok)
		require.Len(t, call.Arguments, 2)
		details, ok := call.Arguments[1].(ObjectExpression)
		require.True(t, ok)

		keys := make([]string, 0, len(details.Properties))
		var value Expression
		for _, p := range details.Properties {
			keys = append(keys, p.Key.Name)
			if p.Key.Name == "message" {
				value = p.Value
			}
		}
		assert.Equal(t, []string{
			"functionName", "message", "packageName", "packageVersion",
			"scriptColumn", "scriptLine", "scriptPath",
		}, keys)

		if msg == nil {
			assert.Equal(t, NullLiteral{}, value)
		} else {
			assert.Equal(t, StringLiteral{Value: *msg}, value)
		}
	}
}

func TestSynthesize_SeverityAgnostic(t *testing.T) {
	for _, sev := range []Severity{SeverityLog, SeverityInfo, SeverityWarn, SeverityError} {
		assert.True(t, sev.Valid())
		stmt := Synthesize(sev, "m", SourceLocation{})
		assert.True(t, strings.HasPrefix(stmt.String(), "console."+string(sev)+"(\"m\", "))
	}
	assert.False(t, Severity("debug").Valid())
}

func TestQuote(t *testing.T) {
	tests := map[string]string{
		`plain`:           `"plain"`,
		`say "hi"`:        `"say \"hi\""`,
		"line\nbreak":     `"line\nbreak"`,
		`back\slash`:      `"back\\slash"`,
		"<tag> & co":      `"<tag> & co"`,
		"sep\u2028arator": `"sep\u2028arator"`,
		"caf\u00e9":       "\"caf\u00e9\"",
	}
	for in, want := range tests {
		assert.Equal(t, want, quote(in), in)
	}
}
