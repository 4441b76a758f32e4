package transform

import (
	"fmt"
	"sort"
)

// insertion adds text at a byte offset of the original source.
type insertion struct {
	offset  int
	text    string
	closing bool
	order   int
}

// editList accumulates insertions during a walk. Edits are only applied once
// the whole file has been visited.
type editList struct {
	items []insertion
}

func (l *editList) insert(offset int, text string, closing bool) {
	l.items = append(l.items, insertion{
		offset:  offset,
		text:    text,
		closing: closing,
		order:   len(l.items),
	})
}

func (l *editList) len() int {
	return len(l.items)
}

// apply returns src with all insertions applied. Insertions sharing an offset
// keep recording order, except closing ones, which nest: the one recorded last
// (the innermost function) is written first.
func (l *editList) apply(src []byte) ([]byte, error) {
	items := make([]insertion, len(l.items))
	copy(items, l.items)
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.offset != b.offset {
			return a.offset < b.offset
		}
		if a.closing != b.closing {
			return a.closing
		}
		if a.closing {
			return a.order > b.order
		}
		return a.order < b.order
	})

	size := len(src)
	for _, it := range items {
		if it.offset < 0 || it.offset > len(src) {
			return nil, fmt.Errorf("insertion offset %d out of range [0,%d]", it.offset, len(src))
		}
		size += len(it.text)
	}

	out := make([]byte, 0, size)
	last := 0
	for _, it := range items {
		out = append(out, src[last:it.offset]...)
		out = append(out, it.text...)
		last = it.offset
	}
	out = append(out, src[last:]...)
	return out, nil
}
