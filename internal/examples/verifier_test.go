package examples

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apiref/internal/config"
	aerrors "git.home.luguber.info/inful/apiref/internal/errors"
	"git.home.luguber.info/inful/apiref/internal/fsio"
	"git.home.luguber.info/inful/apiref/internal/model"
)

// stubRunner records the invocation and returns a canned result.
type stubRunner struct {
	command string
	args    []string
	called  bool
	err     error
}

func (s *stubRunner) Run(command string, args []string) error {
	s.called = true
	s.command = command
	s.args = args
	return s.err
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Project.Name = "my-lib"
	_ = config.ApplyDefaults(cfg)
	return cfg
}

func modulesWithExample(example string) []model.Module {
	fn := model.NewFunction(model.NewDocumentable("foo", "", "", false, []string{example}, ""), nil)
	return []model.Module{model.NewModule(
		model.NewDocumentable("index.ts", "", "", false, nil, ""),
		[]string{"src", "index.ts"}, nil, nil, []model.Function{fn}, nil, nil, nil, nil)}
}

func TestVerify_Success_ChecksAndCleansUp(t *testing.T) {
	fs := fsio.NewMemFS(nil)
	runner := &stubRunner{}
	v := NewVerifier(fs, runner, "linux", testConfig())

	checked, err := v.Verify(modulesWithExample(`import { foo } from 'my-lib'` + "\nassert.ok(foo)"))
	require.NoError(t, err)
	require.Equal(t, 1, checked)
	require.True(t, runner.called)
	require.Equal(t, "tsc", runner.command)
	require.Equal(t, []string{"--noEmit", "--project", "docs/examples/tsconfig.json"}, runner.args)

	exists, err := fs.PathExists("docs/examples")
	require.NoError(t, err)
	require.False(t, exists, "transient examples directory must be removed")
}

func TestVerify_WindowsPlatform_UsesCmdShim(t *testing.T) {
	fs := fsio.NewMemFS(nil)
	runner := &stubRunner{}
	v := NewVerifier(fs, runner, "windows", testConfig())

	_, err := v.Verify(modulesWithExample("const x = 1"))
	require.NoError(t, err)
	require.Equal(t, "tsc.cmd", runner.command)
}

func TestVerify_EmptyCandidateSet_SkipsCheckerStillCleansUp(t *testing.T) {
	fs := fsio.NewMemFS(map[string]string{"docs/examples/stale.ts": "left over"})
	runner := &stubRunner{}
	v := NewVerifier(fs, runner, "linux", testConfig())

	checked, err := v.Verify(nil)
	require.NoError(t, err)
	require.Zero(t, checked)
	require.False(t, runner.called)

	exists, err := fs.PathExists("docs/examples")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestVerify_CheckFailure_PropagatesAndCleansUp(t *testing.T) {
	fs := fsio.NewMemFS(nil)
	runner := &stubRunner{err: aerrors.ExecutionFailed("tsc", "index.ts(1,1): error TS2304")}
	v := NewVerifier(fs, runner, "linux", testConfig())

	_, err := v.Verify(modulesWithExample("const x: number = 'nope'"))
	require.Error(t, err)
	require.True(t, aerrors.IsCategory(err, aerrors.CategoryExecution))

	exists, existsErr := fs.PathExists("docs/examples")
	require.NoError(t, existsErr)
	require.False(t, exists, "cleanup must run on the failure path")
}

func TestVerify_SpawnFailure_KeepsSpawnCategory(t *testing.T) {
	fs := fsio.NewMemFS(nil)
	runner := &stubRunner{err: aerrors.SpawnFailed(stderrors.New("executable file not found in $PATH"), "tsc")}
	v := NewVerifier(fs, runner, "linux", testConfig())

	_, err := v.Verify(modulesWithExample("const x = 1"))
	require.True(t, aerrors.IsCategory(err, aerrors.CategorySpawn))
}

func TestVerify_MaterializedFiles_RewrittenAndAggregated(t *testing.T) {
	fs := fsio.NewMemFS(nil)
	// Capture the materialized tree by failing the check: cleanup removes
	// the directory afterwards, so inspect through a recording runner.
	var written map[string]string
	runner := &runnerFunc{fn: func(string, []string) error {
		written = map[string]string{}
		for _, p := range fs.Paths() {
			content, err := fs.ReadFile(p)
			if err != nil {
				return err
			}
			written[p] = content
		}
		return nil
	}}
	v := NewVerifier(fs, runner, "linux", testConfig())

	_, err := v.Verify(modulesWithExample("import { foo } from 'my-lib/lib/sub'\nassert.ok(foo)"))
	require.NoError(t, err)

	candidate := written["docs/examples/src-index-function-foo-0.ts"]
	require.Contains(t, candidate, "from '../../src/sub'")
	require.True(t, len(candidate) > 0)
	require.Contains(t, candidate, "import * as assert from 'assert'")

	require.Contains(t, written["docs/examples/index.ts"], "import './src-index-function-foo-0'\n")
	require.Contains(t, written["docs/examples/tsconfig.json"], `"compilerOptions"`)
	require.Contains(t, written["docs/examples/tsconfig.json"], `"noEmit": true`)
}

type runnerFunc struct {
	fn func(command string, args []string) error
}

func (r *runnerFunc) Run(command string, args []string) error { return r.fn(command, args) }
