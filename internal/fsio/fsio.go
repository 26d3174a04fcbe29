// Package fsio is the file-system boundary of apiref. Every read, write,
// glob and removal the pipeline performs goes through the FileSystem
// interface so components stay testable against the in-memory
// implementation, and every failure comes back path- or pattern-qualified.
package fsio

import (
	"os"
	"path/filepath"
	"strings"

	aerrors "git.home.luguber.info/inful/apiref/internal/errors"
)

// File is a unit of content addressed by path. Overwrite marks the file as
// regenerable: persisting skips files that already exist on disk unless the
// flag is set, which keeps hand-maintained companion documents intact.
type File struct {
	Path      string
	Content   string
	Overwrite bool
}

// FileSystem is the file-system collaborator consumed by the pipeline.
type FileSystem interface {
	// Glob returns the paths matching pattern, minus those matching any
	// exclude pattern, in deterministic (sorted) order. Patterns support
	// `*` within a segment and `**` across segments.
	Glob(pattern string, exclude []string) ([]string, error)
	// ReadFile returns the content of the file at path.
	ReadFile(path string) (string, error)
	// WriteFile writes content to path, creating parent directories.
	WriteFile(path string, content string) error
	// RemoveFile removes the file or directory tree at path. Removing a
	// path that does not exist is not an error.
	RemoveFile(path string) error
	// PathExists reports whether a file or directory exists at path.
	PathExists(path string) (bool, error)
}

// OSFileSystem implements FileSystem against the real file system.
type OSFileSystem struct{}

var _ FileSystem = OSFileSystem{}

// Glob walks the tree below the pattern's static prefix and matches each
// file against the pattern.
func (OSFileSystem) Glob(pattern string, exclude []string) ([]string, error) {
	root := staticPrefix(pattern)
	if root == "" {
		root = "."
	}

	var matches []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == root {
				return filepath.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		p := filepath.ToSlash(path)
		if !MatchPattern(pattern, p) {
			return nil
		}
		for _, ex := range exclude {
			if MatchPattern(ex, p) {
				return nil
			}
		}
		matches = append(matches, p)
		return nil
	})
	if err != nil {
		return nil, aerrors.GlobFailed(err, pattern)
	}
	return matches, nil
}

func (OSFileSystem) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- paths come from configured globs
	if err != nil {
		return "", aerrors.ReadFileFailed(err, path)
	}
	return string(data), nil
}

func (OSFileSystem) WriteFile(path string, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return aerrors.WriteFileFailed(err, path)
		}
	}
	// #nosec G306 -- generated documents are public content
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return aerrors.WriteFileFailed(err, path)
	}
	return nil
}

func (OSFileSystem) RemoveFile(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return aerrors.RemoveFileFailed(err, path)
	}
	return nil
}

func (OSFileSystem) PathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, aerrors.ReadFileFailed(err, path)
}

// staticPrefix returns the leading path segments of pattern that contain no
// wildcard, so Glob only walks the relevant subtree.
func staticPrefix(pattern string) string {
	segments := strings.Split(filepath.ToSlash(pattern), "/")
	var static []string
	for _, seg := range segments[:max(len(segments)-1, 0)] {
		if strings.ContainsAny(seg, "*?[") {
			break
		}
		static = append(static, seg)
	}
	return strings.Join(static, "/")
}

// MatchPattern matches a slash-separated path against a glob pattern where
// `*` and `?` stay within one segment and `**` spans any number of segments.
func MatchPattern(pattern, path string) bool {
	return matchSegments(strings.Split(filepath.ToSlash(pattern), "/"), strings.Split(filepath.ToSlash(path), "/"))
}

func matchSegments(pattern, path []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}
	if pattern[0] == "**" {
		// `**` may consume zero or more leading path segments.
		for skip := 0; skip <= len(path); skip++ {
			if matchSegments(pattern[1:], path[skip:]) {
				return true
			}
		}
		return false
	}
	if len(path) == 0 {
		return false
	}
	ok, err := filepath.Match(pattern[0], path[0])
	if err != nil || !ok {
		return false
	}
	return matchSegments(pattern[1:], path[1:])
}
