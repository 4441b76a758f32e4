package warning

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Expression is a JavaScript expression that can be rendered as source.
type Expression interface {
	render(b *strings.Builder)
}

// Identifier is a bare name such as console.
type Identifier struct {
	Name string
}

// StringLiteral is a double-quoted string.
type StringLiteral struct {
	Value string
}

// NumericLiteral is an integer literal.
type NumericLiteral struct {
	Value int
}

// NullLiteral renders as null.
type NullLiteral struct{}

// MemberExpression is object.property.
type MemberExpression struct {
	Object   Expression
	Property Identifier
}

// ObjectProperty is one key: value pair of an object literal.
type ObjectProperty struct {
	Key   Identifier
	Value Expression
}

// ObjectExpression is an object literal.
type ObjectExpression struct {
	Properties []ObjectProperty
}

// CallExpression is callee(arguments...).
type CallExpression struct {
	Callee    Expression
	Arguments []Expression
}

// Statement is an expression statement, terminated by a semicolon.
type Statement struct {
	Expression Expression
}

func (e Identifier) render(b *strings.Builder) {
	b.WriteString(e.Name)
}

func (e StringLiteral) render(b *strings.Builder) {
	b.WriteString(quote(e.Value))
}

func (e NumericLiteral) render(b *strings.Builder) {
	b.WriteString(strconv.Itoa(e.Value))
}

func (NullLiteral) render(b *strings.Builder) {
	b.WriteString("null")
}

func (e MemberExpression) render(b *strings.Builder) {
	e.Object.render(b)
	b.WriteByte('.')
	e.Property.render(b)
}

func (e ObjectExpression) render(b *strings.Builder) {
	if len(e.Properties) == 0 {
		b.WriteString("{}")
		return
	}
	b.WriteString("{ ")
	for i, p := range e.Properties {
		if i > 0 {
			b.WriteString(", ")
		}
		p.Key.render(b)
		b.WriteString(": ")
		p.Value.render(b)
	}
	b.WriteString(" }")
}

func (e CallExpression) render(b *strings.Builder) {
	e.Callee.render(b)
	b.WriteByte('(')
	for i, arg := range e.Arguments {
		if i > 0 {
			b.WriteString(", ")
		}
		arg.render(b)
	}
	b.WriteByte(')')
}

// String renders the statement as JavaScript source.
func (s Statement) String() string {
	var b strings.Builder
	s.Expression.render(&b)
	b.WriteByte(';')
	return b.String()
}

// quote encodes s as a JSON string, which is also a valid JavaScript string
// literal. U+2028 and U+2029 are escaped by the encoder.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
