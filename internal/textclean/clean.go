// Package textclean normalizes free-text provider fields such as titles and addresses.
package textclean

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var reTag = regexp.MustCompile(`<[^>]+>`)

// Clean strips inline markup (e.g. <b> highlight tags from search results),
// folds compatibility characters, and collapses whitespace runs to one space.
// Clean(Clean(s)) == Clean(s).
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s = reTag.ReplaceAllString(s, "")
	// strings.Fields splits on Unicode whitespace, as Match does.
	s = strings.Join(strings.Fields(s), " ")
	// Tag removal can leave a combining mark next to a new base character.
	return norm.NFKC.String(s)
}

// CleanAny cleans v when it is a string and returns "" otherwise.
func CleanAny(v any) string {
	switch s := v.(type) {
	case string:
		return Clean(s)
	case *string:
		if s == nil {
			return ""
		}
		return Clean(*s)
	default:
		return ""
	}
}

// FoldKey returns s with all whitespace removed and lowercased, for
// whitespace- and case-insensitive comparisons.
func FoldKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), ""))
}
