package examples

import (
	"bytes"
	"os/exec"
	"runtime"

	aerrors "git.home.luguber.info/inful/apiref/internal/errors"
)

// Runner spawns the external type-checker process. The two failure shapes
// stay distinct: SpawnFailed means the process never started (environment
// problem), ExecutionFailed means it ran and rejected the examples.
type Runner interface {
	Run(command string, args []string) error
}

// ExecRunner runs commands through os/exec.
type ExecRunner struct{}

var _ Runner = ExecRunner{}

func (ExecRunner) Run(command string, args []string) error {
	binary, err := exec.LookPath(command)
	if err != nil {
		return aerrors.SpawnFailed(err, command)
	}

	cmd := exec.Command(binary, args...) // #nosec G204 -- command comes from configuration
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Start(); err != nil {
		return aerrors.SpawnFailed(err, command)
	}
	if err := cmd.Wait(); err != nil {
		return aerrors.ExecutionFailed(command, output.String())
	}
	return nil
}

// CheckerCommand resolves the platform-specific executable name for the
// configured checker. npm wraps node CLIs in .cmd shims on windows.
func CheckerCommand(base, platform string) string {
	if platform == "windows" {
		return base + ".cmd"
	}
	return base
}

// HostPlatform reports the identifier of the platform apiref runs on.
func HostPlatform() string {
	return runtime.GOOS
}
