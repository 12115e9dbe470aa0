package logbook

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestTailReturnsRecentLinesAndTotal(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "activity.log")
	book, err := New(path)
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines, total := book.Tail(3)
	if total != 5 {
		t.Fatalf("total lines = %d, want 5", total)
	}
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestLevelsAreLabelled(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "logs", "activity.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Warn("no new participants")
	book.Error("assign failed: %s", "CapacityExceeded")
	lines, _ := book.Tail(10)
	if len(lines) != 2 {
		t.Fatalf("lines = %v", lines)
	}
	if !strings.Contains(lines[0], "WARN  no new participants") {
		t.Fatalf("warn line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "ERROR assign failed: CapacityExceeded") {
		t.Fatalf("error line = %q", lines[1])
	}
}

func TestTailOnMissingFile(t *testing.T) {
	book, err := New(filepath.Join(t.TempDir(), "activity.log"))
	if err != nil {
		t.Fatal(err)
	}
	if lines, total := book.Tail(5); lines != nil || total != 0 {
		t.Fatalf("Tail on empty logbook = %v, %d", lines, total)
	}
}

func TestRecentParsesEntries(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	book, err := New(filepath.Join(t.TempDir(), "activity.log"), WithClock(func() time.Time { return at }))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Info("Created Team 1")
	book.Error("assign a@x to Team 1 failed\n[CapacityExceeded]")
	entries, total := book.Recent(5)
	if total != 2 || len(entries) != 2 {
		t.Fatalf("entries = %+v, total = %d", entries, total)
	}
	if entries[0].Level != LevelInfo || entries[0].Message != "Created Team 1" || !entries[0].Time.Equal(at) {
		t.Fatalf("first entry = %+v", entries[0])
	}
	if entries[1].Level != LevelError || entries[1].Message != "assign a@x to Team 1 failed [CapacityExceeded]" {
		t.Fatalf("second entry = %+v", entries[1])
	}
}

func TestParseEntryKeepsForeignLines(t *testing.T) {
	got := parseEntry("hand-written note")
	if got.Level != LevelInfo || got.Message != "hand-written note" || !got.Time.IsZero() {
		t.Fatalf("parseEntry = %+v", got)
	}
}
