package jsdoc

// DeprecatedTag is the only tag title the rewriter acts on.
const DeprecatedTag = "deprecated"

// Deprecation is one @deprecated tag. Message is nil when the tag has no text.
type Deprecation struct {
	Message *string
}

// Deprecations parses raw and returns its @deprecated tags in source order.
// Duplicates are kept.
func Deprecations(raw string) ([]Deprecation, error) {
	c, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	var out []Deprecation
	for _, tag := range c.Tags {
		if tag.Title != DeprecatedTag {
			continue
		}
		out = append(out, Deprecation{Message: tag.Description})
	}
	return out, nil
}
