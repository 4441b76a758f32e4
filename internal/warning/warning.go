// Package warning builds the console statements injected into deprecated
// functions.
package warning

import "fmt"

// Severity selects the console method of the emitted call.
type Severity string

const (
	SeverityLog   Severity = "log"
	SeverityInfo  Severity = "info"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// Valid reports whether s is one of the four console methods.
func (s Severity) Valid() bool {
	switch s {
	case SeverityLog, SeverityInfo, SeverityWarn, SeverityError:
		return true
	}
	return false
}

// SourceLocation is the details object passed as the second argument of the
// console call. Message is emitted as null when nil.
type SourceLocation struct {
	FunctionName   string  `json:"functionName"`
	Message        *string `json:"message"`
	PackageName    string  `json:"packageName"`
	PackageVersion string  `json:"packageVersion"`
	ScriptColumn   int     `json:"scriptColumn"`
	ScriptLine     int     `json:"scriptLine"`
	ScriptPath     string  `json:"scriptPath"`
}

// Message formats the human readable warning text.
func Message(functionName string, line int, relativeScriptPath string) string {
	return fmt.Sprintf("Deprecated: Function \"%s\" is deprecated in /%s on line %d", functionName, relativeScriptPath, line)
}

// Synthesize builds `console.<severity>(message, { ...location })`.
func Synthesize(severity Severity, message string, loc SourceLocation) Statement {
	var msg Expression = NullLiteral{}
	if loc.Message != nil {
		msg = StringLiteral{Value: *loc.Message}
	}

	details := ObjectExpression{Properties: []ObjectProperty{
		{Key: Identifier{Name: "functionName"}, Value: StringLiteral{Value: loc.FunctionName}},
		{Key: Identifier{Name: "message"}, Value: msg},
		{Key: Identifier{Name: "packageName"}, Value: StringLiteral{Value: loc.PackageName}},
		{Key: Identifier{Name: "packageVersion"}, Value: StringLiteral{Value: loc.PackageVersion}},
		{Key: Identifier{Name: "scriptColumn"}, Value: NumericLiteral{Value: loc.ScriptColumn}},
		{Key: Identifier{Name: "scriptLine"}, Value: NumericLiteral{Value: loc.ScriptLine}},
		{Key: Identifier{Name: "scriptPath"}, Value: StringLiteral{Value: loc.ScriptPath}},
	}}

	return Statement{Expression: CallExpression{
		Callee: MemberExpression{
			Object:   Identifier{Name: "console"},
			Property: Identifier{Name: string(severity)},
		},
		Arguments: []Expression{StringLiteral{Value: message}, details},
	}}
}
