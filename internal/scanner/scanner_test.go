package scanner

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListFiles(t *testing.T) {
	root := t.TempDir()
	write(t, filepath.Join(root, "main.go"), "package main\n\nfunc main() {}\n")
	write(t, filepath.Join(root, "sub", "util.js"), "export const x = 1;\n")
	write(t, filepath.Join(root, "node_modules", "dep", "index.js"), "ignored")
	write(t, filepath.Join(root, ".git", "config"), "ignored")
	write(t, filepath.Join(root, "binary.bin"), "ignored")

	files, err := ListFiles(root, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %+v", len(files), files)
	}

	var foundMain bool
	for _, f := range files {
		if filepath.Base(f.Path) == "main.go" {
			foundMain = true
			if f.LineCount != 4 {
				t.Errorf("expected 4 lines, got %d", f.LineCount)
			}
		}
	}
	if !foundMain {
		t.Error("expected main.go in results")
	}
}

func TestListFiles_Cap(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 10; i++ {
		write(t, filepath.Join(root, string(rune('a'+i))+".go"), "package x\n")
	}

	files, err := ListFiles(root, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 3 {
		t.Errorf("expected cap of 3, got %d", len(files))
	}
}

func TestListFiles_BadPath(t *testing.T) {
	if _, err := ListFiles(filepath.Join(t.TempDir(), "nope"), 20); err == nil {
		t.Fatal("expected error for nonexistent path")
	}

	file := filepath.Join(t.TempDir(), "afile.go")
	write(t, file, "package x\n")
	if _, err := ListFiles(file, 20); err == nil {
		t.Fatal("expected error when root is a file")
	}
}
