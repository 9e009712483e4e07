package platform

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	if err := EnsureDir(dir); err != nil {
		t.Fatalf("EnsureDir failed: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Errorf("Expected %s to be a directory", dir)
	}

	// Second call on an existing directory is a no-op.
	if err := EnsureDir(dir); err != nil {
		t.Errorf("EnsureDir on existing dir failed: %v", err)
	}
}

func TestResolveInputs_PlainPath(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ResolveInputs(file)
	if err != nil {
		t.Fatalf("ResolveInputs failed: %v", err)
	}
	if len(files) != 1 || files[0] != file {
		t.Errorf("Expected [%s], got %v", file, files)
	}
}

func TestResolveInputs_Missing(t *testing.T) {
	_, err := ResolveInputs(filepath.Join(t.TempDir(), "nope.mp4"))
	if !errors.Is(err, ErrNoFilesMatched) {
		t.Errorf("Expected ErrNoFilesMatched, got %v", err)
	}
}

func TestResolveInputs_Glob(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.mp4", "a.mp4", "c.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	files, err := ResolveInputs(filepath.Join(dir, "*.mp4"))
	if err != nil {
		t.Fatalf("ResolveInputs failed: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("Expected 2 matches, got %d: %v", len(files), files)
	}
	// Sorted for stable batch ordering
	if filepath.Base(files[0]) != "a.mp4" || filepath.Base(files[1]) != "b.mp4" {
		t.Errorf("Expected sorted [a.mp4 b.mp4], got %v", files)
	}
}

func TestResolveInputs_GlobNoMatch(t *testing.T) {
	dir := t.TempDir()
	_, err := ResolveInputs(filepath.Join(dir, "*.flac"))
	if !errors.Is(err, ErrNoFilesMatched) {
		t.Errorf("Expected ErrNoFilesMatched, got %v", err)
	}
}

func TestResolveInputs_RecursiveFallback(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "sub", "deeper")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "song.flac"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(cwd)

	// "*.flac" matches nothing at the top level; the recursive fallback
	// finds the nested file.
	files, err := ResolveInputs("*.flac")
	if err != nil {
		t.Fatalf("ResolveInputs failed: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "song.flac" {
		t.Errorf("Expected nested song.flac, got %v", files)
	}
}

func TestFileExt(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/a/b/clip.MP4", "mp4"},
		{"song.flac", "flac"},
		{"archive.tar.gz", "gz"},
		{"noext", ""},
		{"", ""},
	}

	for _, test := range tests {
		if got := FileExt(test.path); got != test.expected {
			t.Errorf("FileExt(%q) = %q, expected %q", test.path, got, test.expected)
		}
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"My Mix: Vol. 2", "My Mix_ Vol. 2"},
		{"a/b\\c", "a_b_c"},
		{"what?", "what_"},
		{"  padded  ", "padded"},
		{"", "untitled"},
	}

	for _, test := range tests {
		if got := SanitizeFilename(test.name); got != test.expected {
			t.Errorf("SanitizeFilename(%q) = %q, expected %q", test.name, got, test.expected)
		}
	}
}
