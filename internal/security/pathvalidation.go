// Package security validates user-supplied output paths for the demo driver.
package security

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrPathEscape is returned when a path resolves outside its base directory.
var ErrPathEscape = errors.New("path escapes output directory")

// OutputPath joins name onto baseDir and rejects results that leave baseDir,
// for example "../x.png" or an absolute name. Symlinks in existing parents
// of the result are resolved before the check.
func OutputPath(baseDir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty output name")
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: %s is absolute", ErrPathEscape, name)
	}

	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output directory: %w", err)
	}
	joined := filepath.Join(absBase, name)

	rel, err := filepath.Rel(resolveExisting(absBase), resolveExisting(joined))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPathEscape, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s leaves %s", ErrPathEscape, name, baseDir)
	}
	return joined, nil
}

// resolveExisting evaluates symlinks on the longest existing prefix of path
// and re-attaches the missing tail.
func resolveExisting(path string) string {
	tail := ""
	for p := path; ; p = filepath.Dir(p) {
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			return filepath.Join(resolved, tail)
		}
		parent := filepath.Dir(p)
		if parent == p {
			return path
		}
		tail = filepath.Join(filepath.Base(p), tail)
	}
}

// SanitizeFilename turns an arbitrary scene or agent name into a file name:
// runs of characters other than ASCII letters, digits, '.', '_' and '-'
// become one underscore, the result is capped at 128 bytes and leading or
// trailing dots and underscores are dropped. An empty result is "unknown".
func SanitizeFilename(s string) string {
	const maxLen = 128

	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxLen {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		case !lastUnderscore:
			b.WriteByte('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "unknown"
	}
	return out
}
