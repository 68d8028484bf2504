package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"

	"github.com/gislobo/matchvault/internal/resolve"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if !isNotFound(fmt.Errorf("get fixture: %w", sql.ErrNoRows)) {
		t.Fatalf("expected true for wrapped sql.ErrNoRows")
	}
	if isNotFound(errors.New("connection refused")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestMapWriteErr(t *testing.T) {
	t.Run("marks unique violation as conflict", func(t *testing.T) {
		err := mapWriteErr(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
		if !errors.Is(err, resolve.ErrConflict) {
			t.Fatalf("expected conflict marker, got %v", err)
		}
	})

	t.Run("keeps other pq errors untouched", func(t *testing.T) {
		src := &pq.Error{Code: "23503", Message: "foreign key violation"}
		err := mapWriteErr(src)
		if errors.Is(err, resolve.ErrConflict) {
			t.Fatalf("did not expect conflict marker for %v", err)
		}
		if !errors.Is(err, src) {
			t.Fatalf("expected original error preserved")
		}
	})

	t.Run("passes through non-pq errors", func(t *testing.T) {
		src := errors.New("broken pipe")
		if got := mapWriteErr(src); got != src {
			t.Fatalf("expected identical error, got %v", got)
		}
	})
}

func TestCanonicalName(t *testing.T) {
	cases := map[string]string{
		"old trafford":      "old trafford",
		"  old   trafford ": "old trafford",
		"":                  "",
		"   ":               "",
	}
	for in, want := range cases {
		if got := canonicalName(in); got != want {
			t.Fatalf("canonicalName(%q) = %q, want %q", in, got, want)
		}
	}
}
