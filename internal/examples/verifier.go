package examples

import (
	"log/slog"
	"path"

	"git.home.luguber.info/inful/apiref/internal/config"
	"git.home.luguber.info/inful/apiref/internal/fsio"
	"git.home.luguber.info/inful/apiref/internal/model"
)

// Verifier drives the extract, rewrite, materialize, check, cleanup
// sequence. Collaborators are injected so the whole pipeline runs against
// the in-memory file system and a stub runner in tests.
type Verifier struct {
	fs       fsio.FileSystem
	runner   Runner
	platform string

	projectName string
	sourceDir   string
	outDir      string
	typeCheck   config.TypeCheckConfig
}

// NewVerifier constructs a Verifier for the given configuration.
func NewVerifier(fs fsio.FileSystem, runner Runner, platform string, cfg *config.Config) *Verifier {
	return &Verifier{
		fs:          fs,
		runner:      runner,
		platform:    platform,
		projectName: cfg.Project.Name,
		sourceDir:   cfg.Project.SourceDir,
		outDir:      cfg.Output.Dir,
		typeCheck:   cfg.Build.TypeCheck,
	}
}

// Verify proves every embedded example still type-checks against the local
// source tree, returning the number of example files checked. The transient
// examples directory is removed on every path out of this function,
// including failures; a run that extracted nothing skips materialization
// and the checker but still performs the (no-op) removal.
func (v *Verifier) Verify(modules []model.Module) (checked int, err error) {
	dir := ExamplesDir(v.outDir)
	defer func() {
		if removeErr := v.fs.RemoveFile(dir); removeErr != nil && err == nil {
			err = removeErr
		}
	}()

	candidates := Extract(modules)
	for i := range candidates {
		rewritten := RewriteImports(candidates[i].Source, v.projectName, v.sourceDir)
		candidates[i].Source = InjectAssertShim(rewritten)
	}

	if len(candidates) == 0 {
		slog.Debug("No examples to verify")
		return 0, nil
	}

	if err := Materialize(v.fs, v.outDir, candidates, v.typeCheck.CompilerOptions); err != nil {
		return 0, err
	}

	command := CheckerCommand(v.typeCheck.Command, v.platform)
	slog.Info("Type-checking examples", "count", len(candidates), "command", command)
	if err := v.runner.Run(command, []string{"--noEmit", "--project", path.Join(dir, CheckerConfigFileName)}); err != nil {
		return 0, err
	}

	slog.Info("All examples type-check", "count", len(candidates))
	return len(candidates), nil
}
