package editor

import "testing"

func TestExist(t *testing.T) {
	paths := []string{"/a", "/b", "/c"}
	if !exist(paths, "/b") {
		t.Fatalf("expected /b to be found")
	}
	if exist(paths, "/d") {
		t.Fatalf("expected /d not to be found")
	}
	if exist(nil, "/a") {
		t.Fatalf("expected no match against a nil slice")
	}
}

func TestWatcherWatchRequiresAction(t *testing.T) {
	w := NewWatcher()
	w.Watch("/tmp/some-file", nil)
	if len(w.watched) != 0 {
		t.Fatalf("expected a nil action not to be registered")
	}
}

func TestWatcherUnWatchRemovesActions(t *testing.T) {
	w := NewWatcher()
	fired := false
	w.Watch("/tmp/ce-watch-test-file", func() { fired = true })
	if len(w.watched) != 1 {
		t.Fatalf("expected one watched path")
	}

	w.UnWatch("/tmp/ce-watch-test-file")
	if len(w.watched) != 0 {
		t.Fatalf("expected UnWatch to remove the registered actions")
	}
	_ = fired

	w.Stop()
}
