package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ExitCodeFor maps an error to the process exit code used by the CLI.
func ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}
	switch GetCategory(err) {
	case CategoryConfig:
		return 7
	case CategoryParse:
		return 2
	case CategoryGlob, CategoryRead, CategoryWrite, CategoryRemove:
		return 11
	case CategorySpawn:
		return 12
	case CategoryExecution:
		return 3
	default:
		return 1
	}
}

// FatalMessage formats an error as the single human-readable message printed
// at the outermost boundary before the process halts. Context fields that
// identify the offending path, pattern or command are folded into the text;
// captured diagnostics follow on their own lines.
func FatalMessage(err error) string {
	var ae *ApirefError
	if !stderrors.As(err, &ae) {
		return err.Error()
	}

	var b strings.Builder
	b.WriteString(ae.Message)
	for _, key := range []string{"path", "pattern", "command", "field", "module"} {
		if v, present := ae.Context[key]; present {
			fmt.Fprintf(&b, " (%s: %v)", key, v)
		}
	}
	if ae.Cause != nil {
		fmt.Fprintf(&b, ": %v", ae.Cause)
	}
	for _, key := range []string{"errors", "stderr"} {
		if v, present := ae.Context[key]; present {
			fmt.Fprintf(&b, "\n%v", v)
		}
	}
	return b.String()
}
