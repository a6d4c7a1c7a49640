package catalog

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLookupSingle(t *testing.T) {
	s := openTestStore(t)

	info, err := s.Lookup("Sci-Fi")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if info.Name != "Bilim Kurgu" {
		t.Errorf("name = %q, want Bilim Kurgu", info.Name)
	}
	if info.Emoji != "🚀" {
		t.Errorf("emoji = %q", info.Emoji)
	}
}

func TestLookupAlias(t *testing.T) {
	s := openTestStore(t)

	info, err := s.Lookup("sports")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if info.Name != "Spor" {
		t.Errorf("name = %q, want Spor", info.Name)
	}
}

func TestLookupUnknown(t *testing.T) {
	s := openTestStore(t)

	info, err := s.Lookup("superhero")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if info.Name != "Superhero" {
		t.Errorf("name = %q, want Superhero", info.Name)
	}
	if info.Emoji != "🎬" || info.Description != "Film türü" {
		t.Errorf("fallback = %+v", info)
	}
}

func TestLookupUnknownKeepsOriginalSpacing(t *testing.T) {
	s := openTestStore(t)

	info, err := s.Lookup(" SUPERHERO ")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if info.Name != " superhero " {
		t.Errorf("name = %q, want %q", info.Name, " superhero ")
	}
}

func TestLookupCombined(t *testing.T) {
	s := openTestStore(t)

	info, err := s.Lookup("comedy_family_drama")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if info.Name != "Komedi & Aile & Drama" {
		t.Errorf("name = %q", info.Name)
	}
	if info.Emoji != "😂👨‍👩‍👧‍👦" {
		t.Errorf("emoji = %q, want first two emojis", info.Emoji)
	}
	if info.Description != "Kahkaha dolu eğlenceli anlar ve Aile dostu içerikler" {
		t.Errorf("description = %q", info.Description)
	}
}

func TestLookupCombinedWithUnknownPart(t *testing.T) {
	s := openTestStore(t)

	info, err := s.Lookup("horror_zombie")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if info.Name != "Korku & Zombie" {
		t.Errorf("name = %q", info.Name)
	}
	if info.Emoji != "👻🎬" {
		t.Errorf("emoji = %q", info.Emoji)
	}
}

func TestScorableSkipsAliases(t *testing.T) {
	s := openTestStore(t)

	genres, err := s.Scorable()
	if err != nil {
		t.Fatalf("scorable: %v", err)
	}
	if len(genres) < 5 {
		t.Fatalf("scorable genres = %d, want at least 5", len(genres))
	}
	for _, g := range genres {
		if len(g.Keywords) == 0 {
			t.Errorf("genre %q has no keywords", g.Key)
		}
		if g.Key == "scifi" || g.Key == "sports" {
			t.Errorf("alias %q should not be scorable", g.Key)
		}
	}
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	g, err := s.Get("nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if g != nil {
		t.Errorf("got %+v, want nil", g)
	}
}

func TestOpenFileSeedsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.sqlite")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	first, _ := s.Scorable()
	s.Close()

	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	second, _ := s.Scorable()

	if len(first) != len(second) {
		t.Errorf("reopen changed catalog size: %d -> %d", len(first), len(second))
	}
}
