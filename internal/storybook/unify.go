package storybook

import "strings"

// Unify concatenates page texts in order. No separator is inserted between
// pages.
func Unify(pages []string) string {
	n := 0
	for _, p := range pages {
		n += len(p)
	}
	var b strings.Builder
	b.Grow(n)
	for _, p := range pages {
		b.WriteString(p)
	}
	return b.String()
}
