package examples

import (
	"fmt"
	"regexp"
	"strings"
)

// RewriteImports redirects imports of the published package to the local
// source tree, so examples exercise the in-repo implementation instead of
// whatever happens to be installed. Both quote styles are recognized; the
// optional `/lib` segment of the published layout is dropped and any deeper
// subpath is preserved:
//
//	from 'my-lib'          -> from '../../src'
//	from "my-lib/lib/sub"  -> from '../../src/sub'
//
// The `../../` prefix resolves from the transient examples directory
// (<outDir>/examples) back to the project root.
func RewriteImports(source, projectName, sourceDir string) string {
	re := regexp.MustCompile(`from\s+['"]` + regexp.QuoteMeta(projectName) + `(?:/lib)?(/[^'"]*)?['"]`)
	return re.ReplaceAllStringFunc(source, func(match string) string {
		sub := re.FindStringSubmatch(match)[1]
		return fmt.Sprintf("from '../../%s%s'", sourceDir, sub)
	})
}

var assertImportRe = regexp.MustCompile(`(?m)^import\s+\*\s+as\s+assert\s+from`)

// InjectAssertShim prepends the assert import when an example uses the
// assertion utility without importing it. Examples get assertions for free
// to stay readable.
func InjectAssertShim(source string) string {
	if !strings.Contains(source, "assert.") {
		return source
	}
	if assertImportRe.MatchString(source) {
		return source
	}
	return "import * as assert from 'assert'\n\n" + source
}
