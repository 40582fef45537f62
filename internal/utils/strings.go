// Package utils holds small helpers shared across commands.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// FuzzyMatch reports whether every character of pattern appears in target in
// order. Case-insensitive. Used for title search in list output.
func FuzzyMatch(pattern, target string) bool {
	p := []rune(strings.ToLower(pattern))
	tg := []rune(strings.ToLower(target))

	i := 0
	for j := 0; i < len(p) && j < len(tg); j++ {
		if p[i] == tg[j] {
			i++
		}
	}
	return i == len(p)
}

// CanonicalizePath expands a leading ~ and resolves the path to an absolute,
// symlink-free form where possible.
func CanonicalizePath(path string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		path = resolved
	}
	return path
}
