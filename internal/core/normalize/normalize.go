// Package normalize canonicalizes the free text fields of a case record
// Pipeline order
// 1 drop control characters and invalid UTF-8
// 2 Unicode NFKC normalization
// 3 remove format chars (zero-width joiners, BOM)
// 4 width fold fullwidth to ASCII
// 5 collapse whitespace to single spaces and trim
package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// transformers carry state, so chains are pooled rather than shared
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)),
			width.Fold,
		)
	},
}

// caser is not safe for concurrent use
var upperPool = sync.Pool{
	New: func() any { return cases.Upper(language.Und) },
}

// Text runs the full pipeline and keeps the original letter case
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = Sanitize(s)

	tr := chainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)
	if err != nil {
		ns = s
	}
	return collapseSpaces(ns)
}

// FirstName canonicalizes a first name as entered
func FirstName(s string) string { return Text(s) }

// Initial returns the upper cased first letter of s, or "" when s has none
func Initial(s string) string {
	for _, r := range Text(s) {
		if !unicode.IsLetter(r) {
			return ""
		}
		c := upperPool.Get().(cases.Caser)
		out := c.String(string(r))
		c.Reset()
		upperPool.Put(c)
		return out
	}
	return ""
}

// Sanitize drops invalid UTF-8 and every control character
// tabs and newlines become spaces so collapseSpaces can fold them
func Sanitize(s string) string {
	s = strings.ToValidUTF8(s, "")
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
