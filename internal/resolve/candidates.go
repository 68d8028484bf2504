package resolve

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// aliases maps a normalized substring to an extra candidate that should be
// tried whenever the substring appears in the input. Upstream feeds and
// warehouse reference data disagree on a handful of country spellings.
var aliases = map[string]string{
	"republic of ireland": "ireland",
}

var accentFolder = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Candidates expands one free-text label into the sorted, deduplicated set
// of normalized variants to try against a reference projection: the
// literal value, hyphen/space swaps, punctuation stripped (hyphens kept),
// accent-folded forms of all of those, and alias expansions. Every variant
// is lowercase with collapsed whitespace. Empty or blank input yields nil,
// which callers treat as "no match attempted".
func Candidates(raw string) []string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return nil
	}

	set := make(map[string]struct{}, 12)
	add := func(v string) {
		v = canonical(v)
		if v != "" {
			set[v] = struct{}{}
		}
	}
	addHyphenVariants := func(v string) {
		add(v)
		add(strings.ReplaceAll(v, "-", " "))
		add(strings.ReplaceAll(v, " ", "-"))
	}

	stripped := stripPunctuation(base)
	addHyphenVariants(base)
	addHyphenVariants(stripped)
	addHyphenVariants(foldAccents(base))
	addHyphenVariants(foldAccents(stripped))

	spaced := canonical(strings.ReplaceAll(base, "-", " "))
	for needle, extra := range aliases {
		if strings.Contains(spaced, needle) {
			add(extra)
		}
	}

	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// canonical lowercases and collapses runs of whitespace.
func canonical(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// stripPunctuation keeps letters, digits, whitespace, and hyphens.
func stripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func foldAccents(s string) string {
	folded, _, err := transform.String(accentFolder, s)
	if err != nil {
		return s
	}
	return folded
}
