package resolve

import (
	"errors"
	"testing"
)

func TestLookup_SingleMatch(t *testing.T) {
	projection := map[string]string{
		"ireland": "IE",
		"england": "EN",
	}

	code, err := LookupName("Republic of Ireland", projection)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if code != "IE" {
		t.Fatalf("unexpected code: %q", code)
	}
}

func TestLookup_MultipleCandidatesOneKey(t *testing.T) {
	// Two candidates hitting the same row is still a unique match.
	projection := map[string]int64{
		"bosnia-herzegovina": 7,
		"bosnia herzegovina": 7,
	}

	key, err := LookupName("Bosnia-Herzegovina", projection)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if key != int64(7) {
		t.Fatalf("unexpected key: %d", key)
	}
}

func TestLookup_NotFound(t *testing.T) {
	_, err := LookupName("Atlantis", map[string]int64{"ireland": 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookup_EmptyCandidates(t *testing.T) {
	_, err := Lookup[int64]("", nil, map[string]int64{"ireland": 1})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty candidate set, got %v", err)
	}
}

func TestLookup_Ambiguous(t *testing.T) {
	projection := map[string]int64{
		"congo":    10,
		"dr congo": 11,
	}

	_, err := Lookup("Congo", []string{"congo", "dr congo"}, projection)
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("expected ErrAmbiguous, got %v", err)
	}

	var ambiguity *AmbiguityError
	if !errors.As(err, &ambiguity) {
		t.Fatalf("expected AmbiguityError, got %T", err)
	}
	if len(ambiguity.Keys) != 2 {
		t.Fatalf("expected 2 conflicting keys, got %v", ambiguity.Keys)
	}
}
