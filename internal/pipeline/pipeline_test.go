package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apiref/internal/config"
	aerrors "git.home.luguber.info/inful/apiref/internal/errors"
	"git.home.luguber.info/inful/apiref/internal/fsio"
)

type stubRunner struct {
	called  bool
	command string
	err     error
}

func (r *stubRunner) Run(command string, args []string) error {
	r.called = true
	r.command = command
	return r.err
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Project.Name = "my-lib"
	cfg.Source.Globs = []string{"src/**/*.ts"}
	require.NoError(t, config.ApplyDefaults(cfg))
	return cfg
}

const manifestAlpha = `name: a.ts
functions:
  - name: alpha
    signatures: ["declare function alpha(): number"]
    examples:
      - "assert.ok(alpha())"
`

const manifestBeta = `name: b.ts
constants:
  - name: beta
    signature: "declare const beta: string"
`

func TestRun_FullBuild_WritesDocumentTree(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		"src/a.ts": manifestAlpha,
		"src/b.ts": manifestBeta,
	})
	runner := &stubRunner{}
	b := NewBuilder(testConfig(t), fs, runner, nil)

	report, err := b.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, OutcomeSuccess, report.Outcome)
	require.Equal(t, 2, report.SourceFiles)
	require.Equal(t, 2, report.Modules)
	require.Equal(t, 4, report.Documents)
	require.Equal(t, 1, report.ExamplesChecked)
	require.True(t, runner.called)

	for _, p := range []string{
		"docs/modules/a.ts.md",
		"docs/modules/b.ts.md",
		"docs/modules/index.md",
		"docs/index.md",
		"docs/_config.yml",
	} {
		exists, err := fs.PathExists(p)
		require.NoError(t, err)
		require.True(t, exists, p)
	}
}

func TestRun_ModulesGetNavOrderByPath(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		"src/b.ts": manifestBeta,
		"src/a.ts": manifestAlpha,
	})
	b := NewBuilder(testConfig(t), fs, &stubRunner{}, nil)

	_, err := b.Run(context.Background())
	require.NoError(t, err)

	a, err := fs.ReadFile("docs/modules/a.ts.md")
	require.NoError(t, err)
	require.Contains(t, a, "nav_order: 1\n")
	bDoc, err := fs.ReadFile("docs/modules/b.ts.md")
	require.NoError(t, err)
	require.Contains(t, bDoc, "nav_order: 2\n")
}

func TestRun_HomePage_IsNotOverwritten(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		"src/a.ts":      manifestAlpha,
		"docs/index.md": "hand-written landing page\n",
	})
	b := NewBuilder(testConfig(t), fs, &stubRunner{}, nil)

	_, err := b.Run(context.Background())
	require.NoError(t, err)

	home, err := fs.ReadFile("docs/index.md")
	require.NoError(t, err)
	require.Equal(t, "hand-written landing page\n", home)
}

func TestRun_ModulesIndex_IsNotOverwritten(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		"src/a.ts":              manifestAlpha,
		"docs/modules/index.md": "hand-written modules landing page\n",
	})
	b := NewBuilder(testConfig(t), fs, &stubRunner{}, nil)

	_, err := b.Run(context.Background())
	require.NoError(t, err)

	index, err := fs.ReadFile("docs/modules/index.md")
	require.NoError(t, err)
	require.Equal(t, "hand-written modules landing page\n", index)
}

func TestRun_StaleModuleDocs_AreRemoved(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		"src/a.ts":                manifestAlpha,
		"docs/modules/gone.ts.md": "document for a deleted module\n",
	})
	b := NewBuilder(testConfig(t), fs, &stubRunner{}, nil)

	_, err := b.Run(context.Background())
	require.NoError(t, err)

	exists, err := fs.PathExists("docs/modules/gone.ts.md")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestRun_HandPlacedModuleAssets_SurviveCleanup(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		"src/a.ts":               manifestAlpha,
		"docs/modules/notes.md":  "maintainer notes\n",
		"docs/modules/old.ts.md": "document for a deleted module\n",
	})
	b := NewBuilder(testConfig(t), fs, &stubRunner{}, nil)

	_, err := b.Run(context.Background())
	require.NoError(t, err)

	notes, err := fs.ReadFile("docs/modules/notes.md")
	require.NoError(t, err)
	require.Equal(t, "maintainer notes\n", notes)

	exists, err := fs.PathExists("docs/modules/old.ts.md")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestRun_SiteConfig_PatchedInPlace(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		"src/a.ts": manifestAlpha,
		"docs/_config.yml": "remote_theme: somebody/else\n" +
			"plugins:\n  - jekyll-seo-tag\n",
	})
	b := NewBuilder(testConfig(t), fs, &stubRunner{}, nil)

	_, err := b.Run(context.Background())
	require.NoError(t, err)

	patched, err := fs.ReadFile("docs/_config.yml")
	require.NoError(t, err)
	require.Contains(t, patched, "remote_theme: pmarsceill/just-the-docs")
	require.Contains(t, patched, "jekyll-seo-tag")
	require.NotContains(t, patched, "somebody/else")
}

func TestRun_TypeCheckFailure_AbortsBeforePersist(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{"src/a.ts": manifestAlpha})
	runner := &stubRunner{err: aerrors.ExecutionFailed("tsc", "a.ts(1,1): error TS2304")}
	b := NewBuilder(testConfig(t), fs, runner, nil)

	report, err := b.Run(context.Background())
	require.Error(t, err)
	require.Equal(t, OutcomeFailed, report.Outcome)
	require.Equal(t, StageErrorFatal, report.StageErrorKinds[StageVerifyExamples])

	exists, existsErr := fs.PathExists("docs/modules")
	require.NoError(t, existsErr)
	require.False(t, exists)
}

func TestRun_TypeCheckDisabled_SkipsVerifyStage(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{"src/a.ts": manifestAlpha})
	runner := &stubRunner{}
	cfg := testConfig(t)
	off := false
	cfg.Build.TypeCheck.Enabled = &off
	b := NewBuilder(cfg, fs, runner, nil)

	report, err := b.Run(context.Background())
	require.NoError(t, err)
	require.False(t, runner.called)
	require.NotContains(t, report.StageDurations, StageVerifyExamples)
	require.Zero(t, report.ExamplesChecked)
}

func TestRun_NoSources_WarnsButWritesScaffolding(t *testing.T) {
	fs := fsio.NewMemFS(nil)
	b := NewBuilder(testConfig(t), fs, &stubRunner{}, nil)

	report, err := b.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, OutcomeWarning, report.Outcome)
	require.Len(t, report.Warnings, 1)

	for _, p := range []string{"docs/index.md", "docs/modules/index.md", "docs/_config.yml"} {
		exists, existsErr := fs.PathExists(p)
		require.NoError(t, existsErr)
		require.True(t, exists, p)
	}
}

func TestRun_ParseFailure_SurfacesAggregatedError(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{
		"src/a.ts":   manifestAlpha,
		"src/bad.ts": "classes:\n  - signature: \"declare class X\"\n",
	})
	b := NewBuilder(testConfig(t), fs, &stubRunner{}, nil)

	report, err := b.Run(context.Background())
	require.Error(t, err)
	require.True(t, aerrors.IsCategory(err, aerrors.CategoryParse))
	require.Equal(t, StageErrorFatal, report.StageErrorKinds[StageParse])
}

func TestRun_CanceledContext_StopsBeforeAnyStage(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{"src/a.ts": manifestAlpha})
	b := NewBuilder(testConfig(t), fs, &stubRunner{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := b.Run(ctx)
	require.Error(t, err)
	require.Equal(t, OutcomeCanceled, report.Outcome)
	require.Empty(t, report.StageDurations)
}

func TestRun_DeterministicAcrossRuns(t *testing.T) {
	seed := map[string]string{"src/a.ts": manifestAlpha, "src/b.ts": manifestBeta}

	render := func() map[string]string {
		fs := fsio.NewMemFS(seed)
		b := NewBuilder(testConfig(t), fs, &stubRunner{}, nil)
		_, err := b.Run(context.Background())
		require.NoError(t, err)
		out := map[string]string{}
		for _, p := range fs.Paths() {
			content, err := fs.ReadFile(p)
			require.NoError(t, err)
			out[p] = content
		}
		return out
	}

	require.Equal(t, render(), render())
}
