package idgen

import (
	"strings"
	"testing"
)

func TestNewFormat(t *testing.T) {
	id, err := New("req")
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	parts := strings.Split(id, "_")
	if len(parts) != 3 || parts[0] != "req" {
		t.Fatalf("unexpected id format: %s", id)
	}
	if len(parts[2]) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", parts[2])
	}
}

func TestNewUnique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id, err := New("req")
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = struct{}{}
	}
}
