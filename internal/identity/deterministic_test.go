package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestPostUUIDIsStable(t *testing.T) {
	first := PostUUID("hello-world")
	second := PostUUID(" hello-world ")
	if first == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if first != second {
		t.Fatalf("expected stable uuid, got %s and %s", first, second)
	}
	if other := PostUUID("hello-world-2"); other == first {
		t.Fatalf("expected distinct slugs to produce distinct ids")
	}
}

func TestPostUUIDEmptySlug(t *testing.T) {
	if id := PostUUID("  "); id != uuid.Nil {
		t.Fatalf("expected nil uuid for empty slug, got %s", id)
	}
}
