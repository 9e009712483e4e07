package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// ErrNoFilesMatched reports an input pattern that resolved to nothing.
var ErrNoFilesMatched = errors.New("no files matched")

// EnsureDir creates the directory (and parents) if it does not exist.
func EnsureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, DefaultDirPermissions)
	}
	return nil
}

// ResolveInputs expands an input pattern into concrete file paths. Plain
// paths must exist; glob patterns that match nothing in place are retried as
// a recursive search from the current directory before giving up. The result
// is sorted for stable batch ordering.
func ResolveInputs(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[") {
		info, err := os.Stat(pattern)
		if err != nil || info.IsDir() {
			return nil, fmt.Errorf("%w: %s", ErrNoFilesMatched, pattern)
		}
		return []string{pattern}, nil
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	files := onlyFiles(matches)
	if len(files) == 0 {
		files, err = globRecursive(".", pattern)
		if err != nil {
			return nil, err
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFilesMatched, pattern)
	}
	sort.Strings(files)
	return files, nil
}

// globRecursive walks root matching the pattern's base name against file
// names at any depth.
func globRecursive(root, pattern string) ([]string, error) {
	base := filepath.Base(pattern)
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		ok, matchErr := filepath.Match(base, d.Name())
		if matchErr != nil {
			return matchErr
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return files, nil
}

func onlyFiles(paths []string) []string {
	var files []string
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			files = append(files, p)
		}
	}
	return files
}

// FileExt returns the lowercased extension without the leading dot.
func FileExt(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// SanitizeFilename replaces characters that are unsafe in file names so
// titles coming from remote metadata can be used as directory names.
func SanitizeFilename(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	sanitized := strings.TrimSpace(replacer.Replace(name))
	if sanitized == "" {
		return "untitled"
	}
	return sanitized
}
