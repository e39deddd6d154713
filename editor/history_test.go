package editor

import "testing"

func TestInputHistoryEmpty(t *testing.T) {
	h := NewInputHistory()
	if h.Len() != 0 {
		t.Fatalf("expected empty history")
	}
	if _, ok := h.Prev(); ok {
		t.Fatalf("expected Prev to fail on empty history")
	}
}

func TestInputHistoryAddIgnoresEmpty(t *testing.T) {
	h := NewInputHistory()
	h.Add("")
	if h.Len() != 0 {
		t.Fatalf("expected empty string not to be recorded")
	}
}

func TestInputHistoryPrevWalksBackToOldest(t *testing.T) {
	h := NewInputHistory()
	h.Add("one")
	h.Add("two")
	h.Add("three")

	got, ok := h.Prev()
	if !ok || got != "three" {
		t.Fatalf("expected %q, got %q (%v)", "three", got, ok)
	}
	got, ok = h.Prev()
	if !ok || got != "two" {
		t.Fatalf("expected %q, got %q (%v)", "two", got, ok)
	}
	got, ok = h.Prev()
	if !ok || got != "one" {
		t.Fatalf("expected %q, got %q (%v)", "one", got, ok)
	}
	// at the oldest entry, Prev stays put
	got, ok = h.Prev()
	if !ok || got != "one" {
		t.Fatalf("expected Prev to hold at the oldest entry, got %q (%v)", got, ok)
	}
}

func TestInputHistoryNextClearsRecallPastNewest(t *testing.T) {
	h := NewInputHistory()
	h.Add("one")
	h.Add("two")

	h.Prev()
	h.Prev()
	got, ok := h.Next()
	if !ok || got != "two" {
		t.Fatalf("expected %q, got %q (%v)", "two", got, ok)
	}
	got, ok = h.Next()
	if !ok || got != "" {
		t.Fatalf("expected recall to clear to empty past the newest entry, got %q (%v)", got, ok)
	}
}

func TestInputHistoryAddResetsRecall(t *testing.T) {
	h := NewInputHistory()
	h.Add("one")
	h.Prev()
	h.Add("two")

	got, ok := h.Prev()
	if !ok || got != "two" {
		t.Fatalf("expected Add to reset recall to the newest entry, got %q (%v)", got, ok)
	}
}

func TestInputHistoryEntriesOldestFirst(t *testing.T) {
	h := NewInputHistory()
	h.Add("one")
	h.Add("two")
	entries := h.Entries()
	if len(entries) != 2 || entries[0] != "one" || entries[1] != "two" {
		t.Fatalf("got %v", entries)
	}
}
