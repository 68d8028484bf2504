package resolve

import "testing"

func TestSplitFullName(t *testing.T) {
	cases := []struct {
		name  string
		input string
		first string
		last  string
	}{
		{name: "two tokens", input: "Cristiano Ronaldo", first: "Cristiano", last: "Ronaldo"},
		{name: "single token", input: "Pelé", first: "Pelé", last: ""},
		{name: "suffix stripped", input: "Jürgen Klopp Jr", first: "Jürgen", last: "Klopp"},
		{name: "dotted suffix stripped", input: "John Smith Jr.", first: "John", last: "Smith"},
		{name: "particle retained", input: "Ludwig van Beethoven", first: "Ludwig", last: "van Beethoven"},
		{name: "stacked particles", input: "Rafael van der Vaart", first: "Rafael", last: "van der Vaart"},
		{name: "middle folds into last", input: "John A. Smith", first: "John", last: "A. Smith"},
		{name: "dotted particle retained", input: "Jordan St. Clair", first: "Jordan", last: "St. Clair"},
		{name: "suffix then particle", input: "Kevin De Bruyne II", first: "Kevin", last: "De Bruyne"},
		{name: "empty", input: "", first: "", last: ""},
		{name: "whitespace only", input: "   ", first: "", last: ""},
		{name: "all suffixes collapse to one token", input: "Smith Jr Sr", first: "Smith", last: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			first, last := SplitFullName(tc.input)
			if first != tc.first || last != tc.last {
				t.Fatalf("SplitFullName(%q) = (%q, %q), want (%q, %q)", tc.input, first, last, tc.first, tc.last)
			}
		})
	}
}
