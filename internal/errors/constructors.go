package errors

import "strings"

// Convenience constructors covering the failure taxonomy. Each carries the
// offending path, pattern or command so the CLI boundary can print a single
// self-contained fatal message.

// Parse errors

// ParseFailed aggregates per-file parse error messages into one fatal error.
// Each entry of messages is the list of errors for one failing file.
func ParseFailed(messages [][]string) *ApirefError {
	flat := make([]string, 0, len(messages))
	for _, group := range messages {
		flat = append(flat, strings.Join(group, "\n"))
	}
	return New(CategoryParse, SeverityFatal, "parsing file(s) failed").
		WithContext("errors", strings.Join(flat, "\n\n"))
}

// File system errors

func GlobFailed(err error, pattern string) *ApirefError {
	return Wrap(err, CategoryGlob, SeverityFatal, "unable to search files matching pattern").
		WithContext("pattern", pattern)
}

func ReadFileFailed(err error, path string) *ApirefError {
	return Wrap(err, CategoryRead, SeverityFatal, "unable to read file").
		WithContext("path", path)
}

func WriteFileFailed(err error, path string) *ApirefError {
	return Wrap(err, CategoryWrite, SeverityFatal, "unable to write file").
		WithContext("path", path)
}

func RemoveFileFailed(err error, path string) *ApirefError {
	return Wrap(err, CategoryRemove, SeverityFatal, "unable to remove file").
		WithContext("path", path)
}

// Subprocess errors

// SpawnFailed reports that the type-checker process could not be started at
// all (missing binary, bad PATH). This is an environment problem, not a
// content problem.
func SpawnFailed(err error, command string) *ApirefError {
	return Wrap(err, CategorySpawn, SeverityFatal, "unable to spawn process").
		WithContext("command", command)
}

// ExecutionFailed reports that the type checker ran and rejected the
// extracted examples. The captured diagnostic stream is attached so the user
// sees the compiler output verbatim.
func ExecutionFailed(command, stderr string) *ApirefError {
	return New(CategoryExecution, SeverityFatal, "command exited with non-zero status").
		WithContext("command", command).
		WithContext("stderr", stderr)
}

// Configuration errors

func ConfigNotFound(path string) *ApirefError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigInvalid(err error, path string) *ApirefError {
	return Wrap(err, CategoryConfig, SeverityFatal, "configuration file is invalid").
		WithContext("path", path)
}

func ConfigRequired(field string) *ApirefError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

// Rendering errors

func RenderFailed(err error, module string) *ApirefError {
	return Wrap(err, CategoryRender, SeverityFatal, "unable to render module document").
		WithContext("module", module)
}
