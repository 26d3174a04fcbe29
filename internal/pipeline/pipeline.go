// Package pipeline orchestrates a documentation build: source files are
// read, parsed into modules, their examples verified against the external
// type-checker, rendered to markdown and persisted into the output tree.
// Stages run in a fixed order with per-stage timing and classification
// collected into a run report.
package pipeline

import (
	"context"
	"log/slog"
	"path"
	"sort"
	"strings"

	"git.home.luguber.info/inful/apiref/internal/config"
	aerrors "git.home.luguber.info/inful/apiref/internal/errors"
	"git.home.luguber.info/inful/apiref/internal/examples"
	"git.home.luguber.info/inful/apiref/internal/fsio"
	"git.home.luguber.info/inful/apiref/internal/manifest"
	"git.home.luguber.info/inful/apiref/internal/metrics"
	"git.home.luguber.info/inful/apiref/internal/model"
	"git.home.luguber.info/inful/apiref/internal/render"
)

// SiteConfigFileName is the site configuration document maintained in the
// output directory root.
const SiteConfigFileName = "_config.yml"

// Builder wires the pipeline collaborators together and runs builds.
type Builder struct {
	cfg      *config.Config
	fs       fsio.FileSystem
	parser   manifest.Parser
	renderer *render.Renderer
	verifier *examples.Verifier
	recorder metrics.Recorder
}

// NewBuilder constructs a Builder. A nil recorder disables metrics.
func NewBuilder(cfg *config.Config, fs fsio.FileSystem, runner examples.Runner, rec metrics.Recorder) *Builder {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Builder{
		cfg:      cfg,
		fs:       fs,
		parser:   manifest.NewYAMLParser(),
		renderer: render.NewRenderer(),
		verifier: examples.NewVerifier(fs, runner, examples.HostPlatform(), cfg),
		recorder: rec,
	}
}

// Run executes the full build. The returned report is always non-nil so
// callers can persist partial runs; err mirrors the first fatal stage error.
func (b *Builder) Run(ctx context.Context) (*Report, error) {
	report := newReport()
	bs := &BuildState{Config: b.cfg, FS: b.fs, Report: report}

	slog.Info("Starting documentation build",
		slog.String("run", report.RunID),
		slog.String("output", b.cfg.Output.Dir))

	stages := NewPlan().
		Add(StageReadSources, b.stageReadSources).
		Add(StageParse, b.stageParse).
		AddIf(b.cfg.Build.TypeCheck.TypeCheckEnabled(), StageVerifyExamples, b.stageVerifyExamples).
		Add(StageRender, b.stageRender).
		Add(StagePersist, b.stagePersist).
		Build()

	err := runStages(ctx, bs, stages, b.recorder)

	report.finish()
	report.deriveOutcome()
	b.recorder.ObserveRunDuration(report.Duration())
	b.recorder.IncRunOutcome(string(report.Outcome))
	b.recorder.SetExamplesChecked(report.ExamplesChecked)

	if err != nil {
		slog.Error("Documentation build failed", slog.String("run", report.RunID), slog.Any("error", err))
		return report, err
	}
	slog.Info("Documentation build completed", slog.String("summary", report.Summary()))
	return report, nil
}

// Verify runs the front half of the pipeline only: sources are read,
// parsed and their examples type-checked, but nothing is rendered or
// written. Used by the standalone verify command.
func (b *Builder) Verify(ctx context.Context) (*Report, error) {
	report := newReport()
	bs := &BuildState{Config: b.cfg, FS: b.fs, Report: report}

	stages := NewPlan().
		Add(StageReadSources, b.stageReadSources).
		Add(StageParse, b.stageParse).
		Add(StageVerifyExamples, b.stageVerifyExamples).
		Build()

	err := runStages(ctx, bs, stages, b.recorder)

	report.finish()
	report.deriveOutcome()
	b.recorder.ObserveRunDuration(report.Duration())
	b.recorder.IncRunOutcome(string(report.Outcome))
	b.recorder.SetExamplesChecked(report.ExamplesChecked)

	if err != nil {
		return report, err
	}
	slog.Info("Example verification completed", slog.String("summary", report.Summary()))
	return report, nil
}

// stageReadSources expands the configured globs and reads every matched
// file. Paths are deduplicated and sorted so downstream stages see a
// deterministic sequence regardless of glob overlap.
func (b *Builder) stageReadSources(ctx context.Context, bs *BuildState) error {
	seen := map[string]struct{}{}
	var paths []string
	for _, pattern := range b.cfg.Source.Globs {
		matches, err := b.fs.Glob(pattern, b.cfg.Source.Exclude)
		if err != nil {
			return newFatalStageError(StageReadSources, err)
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			paths = append(paths, m)
		}
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return newWarnStageError(StageReadSources,
			aerrors.New(aerrors.CategoryGlob, aerrors.SeverityWarning, "no source files matched the configured globs"))
	}

	workers, err := b.cfg.Build.Workers()
	if err != nil {
		return newFatalStageError(StageReadSources, err)
	}
	files, err := fsio.ReadAll(b.fs, paths, workers)
	if err != nil {
		return newFatalStageError(StageReadSources, err)
	}
	bs.Sources = files
	bs.Report.SourceFiles = len(files)
	slog.Debug("Read source files", slog.Int("count", len(files)))
	return nil
}

// stageParse decodes every source file into a module and sorts modules by
// path so rendering and navigation order are stable.
func (b *Builder) stageParse(ctx context.Context, bs *BuildState) error {
	modules, err := b.parser.Parse(bs.Sources)
	if err != nil {
		return newFatalStageError(StageParse, err)
	}
	model.SortModules(modules)
	bs.Modules = modules
	bs.Report.Modules = len(modules)
	return nil
}

func (b *Builder) stageVerifyExamples(ctx context.Context, bs *BuildState) error {
	checked, err := b.verifier.Verify(bs.Modules)
	if err != nil {
		return newFatalStageError(StageVerifyExamples, err)
	}
	bs.Report.ExamplesChecked = checked
	return nil
}

// stageRender produces the full document set: one file per module plus the
// home page, the modules index and the site configuration document. Module
// files are always overwritten; the home page and the modules index are
// created only when absent.
func (b *Builder) stageRender(ctx context.Context, bs *BuildState) error {
	docs := make([]fsio.File, 0, len(bs.Modules)+2)
	for i, m := range bs.Modules {
		content, err := b.renderer.RenderModule(m, i+1)
		if err != nil {
			return newFatalStageError(StageRender, err)
		}
		docs = append(docs, fsio.File{
			Path:      b.moduleDocPath(m),
			Content:   content,
			Overwrite: true,
		})
	}

	index, err := b.renderer.RenderModulesIndex()
	if err != nil {
		return newFatalStageError(StageRender, err)
	}
	docs = append(docs, fsio.File{
		Path:    path.Join(b.cfg.Output.Dir, "modules", "index.md"),
		Content: index,
	})

	home, err := b.renderer.RenderHome(b.cfg.Site.Title)
	if err != nil {
		return newFatalStageError(StageRender, err)
	}
	docs = append(docs, fsio.File{
		Path:    path.Join(b.cfg.Output.Dir, "index.md"),
		Content: home,
	})

	bs.Documents = docs
	bs.Report.Documents = len(docs)
	return nil
}

// stagePersist deletes the previously generated module documents, writes
// the rendered document set and creates or patches the site configuration
// document. Module documents keep the source extension of the file they
// describe, so deletion goes by the .ts.md convention and leaves the
// modules index and hand-placed assets under the modules tree untouched.
func (b *Builder) stagePersist(ctx context.Context, bs *BuildState) error {
	stale, err := b.fs.Glob(path.Join(b.cfg.Output.Dir, "modules", "**/*.ts.md"), nil)
	if err != nil {
		return newFatalStageError(StagePersist, err)
	}
	for _, p := range stale {
		if err := b.fs.RemoveFile(p); err != nil {
			return newFatalStageError(StagePersist, err)
		}
	}

	workers, err := b.cfg.Build.Workers()
	if err != nil {
		return newFatalStageError(StagePersist, err)
	}
	if err := fsio.WriteAll(b.fs, bs.Documents, workers); err != nil {
		return newFatalStageError(StagePersist, err)
	}

	if err := b.writeSiteConfig(); err != nil {
		return newFatalStageError(StagePersist, err)
	}
	return nil
}

// writeSiteConfig keeps the managed fields of _config.yml current without
// clobbering unmanaged ones added by hand.
func (b *Builder) writeSiteConfig() error {
	configPath := path.Join(b.cfg.Output.Dir, SiteConfigFileName)
	exists, err := b.fs.PathExists(configPath)
	if err != nil {
		return err
	}
	if !exists {
		return b.fs.WriteFile(configPath, render.SiteConfigDocument(b.cfg.Site))
	}
	existing, err := b.fs.ReadFile(configPath)
	if err != nil {
		return err
	}
	patched := render.PatchSiteConfig(existing, b.cfg.Site)
	if patched == existing {
		return nil
	}
	return b.fs.WriteFile(configPath, patched)
}

// moduleDocPath maps a module path to its document location: the leading
// source directory segment is dropped and the remainder, extension kept,
// gains a .md suffix under <outDir>/modules.
func (b *Builder) moduleDocPath(m model.Module) string {
	rel := m.Path
	if len(rel) > 1 {
		rel = rel[1:]
	}
	return path.Join(b.cfg.Output.Dir, "modules", strings.Join(rel, "/")+".md")
}
