package resolve

import (
	"strings"
	"unicode"
)

var nameSuffixes = map[string]struct{}{
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {}, "v": {},
	"phd": {}, "md": {}, "esq": {},
}

var surnameParticles = map[string]struct{}{
	"da": {}, "de": {}, "del": {}, "della": {}, "der": {}, "di": {},
	"dos": {}, "du": {}, "la": {}, "le": {}, "van": {}, "von": {},
	"bin": {}, "al": {}, "ibn": {}, "mac": {}, "mc": {}, "st": {},
	"ter": {},
}

// SplitFullName breaks a display name into first and last components.
// Recognized suffixes are stripped, surname particles stay attached to the
// last name, and interior tokens fold into the last name as middle names.
// A single-token name yields an empty last name.
func SplitFullName(full string) (first, last string) {
	tokens := strings.Fields(full)
	if len(tokens) == 0 {
		return "", ""
	}
	if len(tokens) == 1 {
		return tokens[0], ""
	}

	for len(tokens) > 1 {
		if _, ok := nameSuffixes[normalizeToken(tokens[len(tokens)-1])]; !ok {
			break
		}
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) == 1 {
		return tokens[0], ""
	}

	lastParts := []string{tokens[len(tokens)-1]}
	i := len(tokens) - 2
	for i >= 1 {
		if _, ok := surnameParticles[normalizeToken(tokens[i])]; !ok {
			break
		}
		lastParts = append([]string{tokens[i]}, lastParts...)
		i--
	}

	first = tokens[0]
	last = strings.Join(lastParts, " ")

	if i >= 1 {
		middle := strings.Join(tokens[1:i+1], " ")
		last = middle + " " + last
	}
	return first, last
}

// normalizeToken lowercases and drops everything but letters and digits,
// so "Jr." and "jr" compare equal.
func normalizeToken(t string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(t) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
