package examples

import (
	"encoding/json"
	"fmt"
	"path"
	"strings"

	aerrors "git.home.luguber.info/inful/apiref/internal/errors"
	"git.home.luguber.info/inful/apiref/internal/fsio"
)

const (
	// IndexFileName aggregates every candidate so the type checker sees
	// the whole set through one entry point.
	IndexFileName = "index.ts"
	// CheckerConfigFileName is the synthesized type-checker project file.
	CheckerConfigFileName = "tsconfig.json"
)

// ExamplesDir returns the transient directory candidates are written to.
func ExamplesDir(outDir string) string {
	return path.Join(outDir, "examples")
}

// Materialize writes all candidates, the index aggregator and the checker
// configuration into the transient examples directory.
func Materialize(fs fsio.FileSystem, outDir string, candidates []Candidate, compilerOptions map[string]any) error {
	dir := ExamplesDir(outDir)

	var index strings.Builder
	for _, c := range candidates {
		if err := fs.WriteFile(path.Join(dir, c.Name), c.Source); err != nil {
			return err
		}
		fmt.Fprintf(&index, "import './%s'\n", strings.TrimSuffix(c.Name, ".ts"))
	}

	if err := fs.WriteFile(path.Join(dir, IndexFileName), index.String()); err != nil {
		return err
	}

	checkerConfig, err := json.MarshalIndent(map[string]any{"compilerOptions": compilerOptions}, "", "  ")
	if err != nil {
		return aerrors.Wrap(err, aerrors.CategoryInternal, aerrors.SeverityFatal, "unable to encode checker configuration")
	}
	return fs.WriteFile(path.Join(dir, CheckerConfigFileName), string(checkerConfig)+"\n")
}
