package watcher

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/nguyentantai21042004/playlist-digest/internal/logger"
)

func TestSettled(t *testing.T) {
	now := time.Now()
	pending := map[string]time.Time{
		"b.txt": now.Add(-time.Second),
		"a.tsv": now.Add(-600 * time.Millisecond),
		"c.txt": now.Add(-100 * time.Millisecond),
	}

	got := settled(pending, now, 500*time.Millisecond)
	if want := []string{"a.tsv", "b.txt"}; !reflect.DeepEqual(got, want) {
		t.Errorf("settled() = %v, want %v", got, want)
	}
	if _, ok := pending["c.txt"]; !ok || len(pending) != 1 {
		t.Errorf("pending = %v, want only c.txt", pending)
	}
}

func TestWatcherHandlesTranscriptsOnce(t *testing.T) {
	dir := t.TempDir()
	handled := make(chan string, 10)

	w, err := New(dir, func(ctx context.Context, path string) error {
		handled <- filepath.Base(path)
		return nil
	}, logger.Nop(), WithDebounce(50*time.Millisecond))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	// Give the watcher a moment to enter its loop.
	time.Sleep(20 * time.Millisecond)

	path := filepath.Join(dir, "talk.txt")
	if err := os.WriteFile(path, []byte("part one"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	f.WriteString(" part two")
	f.Close()
	os.WriteFile(filepath.Join(dir, "notes.md"), []byte("ignored"), 0644)
	os.WriteFile(filepath.Join(dir, ".hidden.txt"), []byte("ignored"), 0644)

	select {
	case name := <-handled:
		if name != "talk.txt" {
			t.Errorf("handled %q, want talk.txt", name)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("transcript was not handled")
	}

	select {
	case name := <-handled:
		t.Errorf("unexpected second handling of %q", name)
	case <-time.After(300 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Start() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestNewMissingDir(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), nil, logger.Nop()); err == nil {
		t.Error("New() on a missing directory should fail")
	}
}

func TestWatcherPausesBetweenFiles(t *testing.T) {
	dir := t.TempDir()
	handled := make(chan string, 10)
	var waits []time.Duration
	pause := time.Hour

	w, err := New(dir, func(ctx context.Context, path string) error {
		handled <- filepath.Base(path)
		return nil
	}, logger.Nop(),
		WithDebounce(50*time.Millisecond),
		WithPause(pause),
		WithSleep(func(ctx context.Context, d time.Duration) error {
			waits = append(waits, d)
			return nil
		}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()
	time.Sleep(20 * time.Millisecond)

	os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644)
	os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0644)

	for i := 0; i < 2; i++ {
		select {
		case <-handled:
		case <-time.After(5 * time.Second):
			t.Fatalf("only %d of 2 files handled", i)
		}
	}

	cancel()
	<-done

	if len(waits) != 1 {
		t.Fatalf("pauses = %v, want exactly one between the two files", waits)
	}
	if waits[0] <= 0 || waits[0] > pause {
		t.Errorf("pause = %v, want within (0, %v]", waits[0], pause)
	}
}
