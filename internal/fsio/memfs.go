package fsio

import (
	"os"
	"sort"
	"strings"
	"sync"

	aerrors "git.home.luguber.info/inful/apiref/internal/errors"
)

// MemFS is an in-memory FileSystem used by tests and dry runs. Paths are
// slash-separated; a "directory" exists when any stored path lives under it.
type MemFS struct {
	mu    sync.RWMutex
	files map[string]string
}

var _ FileSystem = (*MemFS)(nil)

// NewMemFS constructs an empty in-memory file system, optionally seeded.
func NewMemFS(seed map[string]string) *MemFS {
	files := make(map[string]string, len(seed))
	for k, v := range seed {
		files[normalize(k)] = v
	}
	return &MemFS{files: files}
}

func normalize(path string) string {
	return strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), "./")
}

func (m *MemFS) Glob(pattern string, exclude []string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var matches []string
outer:
	for path := range m.files {
		if !MatchPattern(pattern, path) {
			continue
		}
		for _, ex := range exclude {
			if MatchPattern(ex, path) {
				continue outer
			}
		}
		matches = append(matches, path)
	}
	sort.Strings(matches)
	return matches, nil
}

func (m *MemFS) ReadFile(path string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.files[normalize(path)]
	if !ok {
		return "", aerrors.ReadFileFailed(os.ErrNotExist, path)
	}
	return content, nil
}

func (m *MemFS) WriteFile(path string, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[normalize(path)] = content
	return nil
}

func (m *MemFS) RemoveFile(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p := normalize(path)
	delete(m.files, p)
	for k := range m.files {
		if strings.HasPrefix(k, p+"/") {
			delete(m.files, k)
		}
	}
	return nil
}

func (m *MemFS) PathExists(path string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p := normalize(path)
	if _, ok := m.files[p]; ok {
		return true, nil
	}
	for k := range m.files {
		if strings.HasPrefix(k, p+"/") {
			return true, nil
		}
	}
	return false, nil
}

// Paths returns every stored file path in sorted order.
func (m *MemFS) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.files))
	for k := range m.files {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
