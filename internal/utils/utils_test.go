package utils

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPrintNoColor(t *testing.T) {
	old := NoColor
	NoColor = true
	defer func() { NoColor = old }()

	var buf bytes.Buffer
	PrintSuccess(&buf, "Applied %d migration(s)", 3)
	PrintError(&buf, "boom")
	want := "✓ Applied 3 migration(s)\n✗ boom\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestPrintColor(t *testing.T) {
	old := NoColor
	NoColor = false
	defer func() { NoColor = old }()

	var buf bytes.Buffer
	PrintWarning(&buf, "careful")
	if !strings.HasPrefix(buf.String(), ColorYellow) || !strings.Contains(buf.String(), ColorReset) {
		t.Errorf("expected colored output, got %q", buf.String())
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintTable(&buf, []string{"ID", "NAME"}, [][]string{{"1", "Coffee"}, {"12", "Snacks"}}); err != nil {
		t.Fatalf("PrintTable: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %q", len(lines), buf.String())
	}
	if lines[1] != "1   Coffee" {
		t.Errorf("unexpected row %q", lines[1])
	}
}

func TestFileAndDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "backoffice.yml")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if !FileExists(file) || FileExists(filepath.Join(dir, "missing")) {
		t.Error("FileExists mismatch")
	}
	if !DirExists(dir) || DirExists(file) {
		t.Error("DirExists mismatch")
	}
}
