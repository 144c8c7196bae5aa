package facility

import (
	"testing"

	"github.com/jordtransport/importer/internal/domain"
)

func TestDefaultDirectoryContents(t *testing.T) {
	dir := Default()

	if dir.Len() != 5 {
		t.Fatalf("expected 5 facilities, got %d", dir.Len())
	}

	wantIDs := []int{1013, 1061, 1327, 1901, 2191}
	gotIDs := dir.IDs()
	if len(gotIDs) != len(wantIDs) {
		t.Fatalf("expected %d ids, got %d", len(wantIDs), len(gotIDs))
	}
	for i, id := range wantIDs {
		if gotIDs[i] != id {
			t.Fatalf("expected id %d at position %d, got %d", id, i, gotIDs[i])
		}
	}

	entry, ok := dir.Lookup(1061)
	if !ok {
		t.Fatalf("expected facility 1061 to exist")
	}
	if entry.Name != "Gert Svith, Birkesig Grusgrav" {
		t.Fatalf("unexpected name for 1061: %q", entry.Name)
	}
	if entry.Address != "Rugvænget 18, 8444 Grenå" {
		t.Fatalf("unexpected address for 1061: %q", entry.Address)
	}

	if _, ok := dir.Lookup(9999); ok {
		t.Fatalf("did not expect facility 9999 to exist")
	}
}

func TestDirectoryIsInjectable(t *testing.T) {
	dir := NewDirectory([]domain.Facility{
		{ID: 42, Name: "Testanlæg", Address: "Testvej 1, 8000 Aarhus C"},
	})

	if dir.Len() != 1 {
		t.Fatalf("expected 1 facility, got %d", dir.Len())
	}
	entry, ok := dir.Lookup(42)
	if !ok || entry.Name != "Testanlæg" {
		t.Fatalf("unexpected lookup result: %+v, ok=%v", entry, ok)
	}
}

func TestDirectoryDuplicateIDsLastWins(t *testing.T) {
	dir := NewDirectory([]domain.Facility{
		{ID: 7, Name: "First"},
		{ID: 7, Name: "Second"},
	})

	entry, _ := dir.Lookup(7)
	if entry.Name != "Second" {
		t.Fatalf("expected last entry to win, got %q", entry.Name)
	}
	if dir.Len() != 1 {
		t.Fatalf("expected 1 facility, got %d", dir.Len())
	}
}
