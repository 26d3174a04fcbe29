package fsio

import (
	"runtime"
	"sync"
)

// Workers bounds the number of simultaneous file operations.
type Workers int

const (
	// WorkersAmbient inherits the ambient parallelism of the process.
	WorkersAmbient Workers = 0
	// WorkersUnbounded runs one goroutine per file.
	WorkersUnbounded Workers = -1
)

// limit resolves the setting to a concrete bound for n items.
func (w Workers) limit(n int) int {
	switch {
	case w == WorkersUnbounded:
		return n
	case w <= 0:
		return runtime.GOMAXPROCS(0)
	default:
		return int(w)
	}
}

type orderedResult[T any] struct {
	Value T
	Err   error
}

// runOrdered applies fn to every item with at most the given concurrency.
// Results come back indexed by input position, so callers observe input
// order regardless of completion order.
func runOrdered[T any, R any](items []T, concurrency int, fn func(T) (R, error)) []orderedResult[R] {
	if len(items) == 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(items) {
		concurrency = len(items)
	}

	sem := make(chan struct{}, concurrency)
	results := make([]orderedResult[R], len(items))

	var wg sync.WaitGroup
	for i, item := range items {
		wg.Add(1)
		go func(i int, item T) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			v, err := fn(item)
			results[i] = orderedResult[R]{Value: v, Err: err}
		}(i, item)
	}
	wg.Wait()
	return results
}

// ReadAll reads every path concurrently within the worker bound and returns
// the files in input order. The first failure (in input order) is returned.
func ReadAll(fs FileSystem, paths []string, workers Workers) ([]File, error) {
	results := runOrdered(paths, workers.limit(len(paths)), func(path string) (File, error) {
		content, err := fs.ReadFile(path)
		if err != nil {
			return File{}, err
		}
		return File{Path: path, Content: content, Overwrite: true}, nil
	})

	files := make([]File, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			return nil, r.Err
		}
		files = append(files, r.Value)
	}
	return files, nil
}

// WriteAll persists every file concurrently within the worker bound. Files
// whose target already exists and that are not marked Overwrite are left
// untouched. The first failure (in input order) is returned.
func WriteAll(fs FileSystem, files []File, workers Workers) error {
	results := runOrdered(files, workers.limit(len(files)), func(f File) (struct{}, error) {
		if !f.Overwrite {
			exists, err := fs.PathExists(f.Path)
			if err != nil {
				return struct{}{}, err
			}
			if exists {
				return struct{}{}, nil
			}
		}
		return struct{}{}, fs.WriteFile(f.Path, f.Content)
	})

	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}
