package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestWatcher_InvalidatesOnWrite(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "districts.csv")
	if err := os.WriteFile(path, []byte(csvDoc(csvRow("A", "수도권", "진보", 1))), 0644); err != nil {
		t.Fatal(err)
	}

	cache := NewCache()
	if _, err := cache.LoadFile(path, Options{}); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, 20*time.Millisecond, cache)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(csvDoc(csvRow("B", "수도권", "진보", 1))), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case change := <-w.Changes():
		if change.Path != path {
			t.Errorf("Change.Path = %q, want %q", change.Path, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	if cache.Len() != 0 {
		t.Error("watcher should invalidate the cached table")
	}

	table, err := cache.LoadFile(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if table.Names()[0] != "B" {
		t.Errorf("reload returned %v, want the rewritten file", table.Names())
	}
}

func TestWatcher_RelativePath(t *testing.T) {
	defer goleak.VerifyNone(t)

	t.Chdir(t.TempDir())
	const path = "districts.csv"
	if err := os.WriteFile(path, []byte(csvDoc(csvRow("A", "수도권", "진보", 1))), 0644); err != nil {
		t.Fatal(err)
	}

	cache := NewCache()
	if _, err := cache.LoadFile(path, Options{}); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, 20*time.Millisecond, cache)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte(csvDoc(csvRow("B", "수도권", "진보", 1))), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case change := <-w.Changes():
		if change.Path != path {
			t.Errorf("Change.Path = %q, want %q", change.Path, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}
	if cache.Len() != 0 {
		t.Error("the relative-path entry should be invalidated")
	}

	table, err := cache.LoadFile(path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if table.Source() != path {
		t.Errorf("Source() = %q, want %q", table.Source(), path)
	}
	if cache.Len() != 1 {
		t.Errorf("cache holds %d entries, want 1", cache.Len())
	}
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "districts.csv")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, 10*time.Millisecond, nil)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("y"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-w.Changes():
		t.Fatalf("unexpected change for sibling file: %+v", c)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_CoalescesBursts(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "districts.csv")
	if err := os.WriteFile(path, []byte("0"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, 150*time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	for i := 0; i < 5; i++ {
		if err := os.WriteFile(path, []byte{byte('1' + i)}, 0644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-w.Changes():
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
	}

	select {
	case c := <-w.Changes():
		t.Errorf("burst should produce one change, got a second: %+v", c)
	case <-time.After(400 * time.Millisecond):
	}
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "districts.csv")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, time.Millisecond, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	if _, ok := <-w.Changes(); ok {
		t.Error("Changes() should be closed after Close")
	}
}

func TestNewWatcher_MissingDir(t *testing.T) {
	defer goleak.VerifyNone(t)

	if _, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "d.csv"), time.Millisecond, nil); err == nil {
		t.Error("expected error for a missing directory")
	}
}
