package jsdoc

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrMalformedComment is returned when a comment cannot be parsed.
var ErrMalformedComment = errors.New("malformed documentation comment")

// Comment is a parsed documentation comment.
type Comment struct {
	Description string
	Tags        []Tag
}

// Tag is a single block tag such as "@deprecated use bar instead".
// Description is nil when the tag carries no text.
type Tag struct {
	Title       string
	Description *string
}

// Parse parses the raw text of a block or line comment.
func Parse(raw string) (*Comment, error) {
	lines, err := unwrap(raw)
	if err != nil {
		return nil, err
	}

	c := &Comment{}
	var description []string
	var current *Tag
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		if text := strings.TrimSpace(strings.Join(body, "\n")); text != "" {
			current.Description = &text
		}
		c.Tags = append(c.Tags, *current)
		current, body = nil, nil
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "@") {
			if current != nil {
				body = append(body, trimmed)
			} else {
				description = append(description, trimmed)
			}
			continue
		}

		flush()
		title, rest := trimmed[1:], ""
		if j := strings.IndexFunc(title, unicode.IsSpace); j >= 0 {
			title, rest = title[:j], title[j:]
		}
		if title == "" {
			return nil, fmt.Errorf("%w: empty tag title on line %d", ErrMalformedComment, i+1)
		}
		current = &Tag{Title: title}
		body = []string{strings.TrimSpace(rest)}
	}
	flush()

	c.Description = strings.TrimSpace(strings.Join(description, "\n"))
	return c, nil
}

// unwrap strips comment delimiters and leading asterisks.
func unwrap(raw string) ([]string, error) {
	text := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(text, "/*"):
		if len(text) < 4 || !strings.HasSuffix(text, "*/") {
			return nil, fmt.Errorf("%w: unterminated block comment", ErrMalformedComment)
		}
		text = strings.TrimPrefix(text[2:len(text)-2], "*")
	case strings.HasPrefix(text, "//"):
		text = text[2:]
	default:
		return nil, fmt.Errorf("%w: not a comment", ErrMalformedComment)
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		stripped := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(stripped, "*") {
			line = strings.TrimPrefix(stripped[1:], " ")
		}
		lines[i] = line
	}
	return lines, nil
}
