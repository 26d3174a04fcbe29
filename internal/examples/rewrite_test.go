package examples

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewriteImports_SubpathUnderLib(t *testing.T) {
	out := RewriteImports(`import { sub } from "my-lib/lib/sub"`, "my-lib", "src")
	require.Equal(t, `import { sub } from '../../src/sub'`, out)
}

func TestRewriteImports_BarePackage(t *testing.T) {
	out := RewriteImports(`import * as L from "my-lib"`, "my-lib", "src")
	require.Equal(t, `import * as L from '../../src'`, out)
}

func TestRewriteImports_SingleQuotes(t *testing.T) {
	out := RewriteImports(`import { x } from 'my-lib/deep/path'`, "my-lib", "src")
	require.Equal(t, `import { x } from '../../src/deep/path'`, out)
}

func TestRewriteImports_OtherPackagesUntouched(t *testing.T) {
	src := `import { other } from "other-lib"` + "\n" + `import { x } from "my-lib"`
	out := RewriteImports(src, "my-lib", "src")
	require.Contains(t, out, `from "other-lib"`)
	require.Contains(t, out, `from '../../src'`)
}

func TestRewriteImports_MultipleOccurrences(t *testing.T) {
	src := "import { a } from 'my-lib/lib/a'\nimport { b } from 'my-lib/lib/b'\n"
	out := RewriteImports(src, "my-lib", "src")
	require.Equal(t, "import { a } from '../../src/a'\nimport { b } from '../../src/b'\n", out)
}

func TestInjectAssertShim_AddsMissingImport(t *testing.T) {
	out := InjectAssertShim("assert.deepStrictEqual(a, b)")
	require.Equal(t, "import * as assert from 'assert'\n\nassert.deepStrictEqual(a, b)", out)
}

func TestInjectAssertShim_ExistingImportKept(t *testing.T) {
	src := "import * as assert from 'assert'\n\nassert.ok(true)"
	require.Equal(t, src, InjectAssertShim(src))
}

func TestInjectAssertShim_NoAssertUsage_Unchanged(t *testing.T) {
	src := "const x = 1"
	require.Equal(t, src, InjectAssertShim(src))
}
