package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSerializeYAML_SortsKeys(t *testing.T) {
	out, err := SerializeYAML(map[string]any{
		"title":     "option.ts",
		"nav_order": 3,
		"parent":    "Modules",
	})
	require.NoError(t, err)
	require.Equal(t, "nav_order: 3\nparent: Modules\ntitle: option.ts\n", string(out))
}

func TestSerializeYAML_EmptyMap_NoBytes(t *testing.T) {
	out, err := SerializeYAML(nil)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestCompose_DelimitsHeader(t *testing.T) {
	doc, err := Compose(map[string]any{"title": "index.ts", "nav_order": 1}, "# Overview\n")
	require.NoError(t, err)
	require.Equal(t, "---\nnav_order: 1\ntitle: index.ts\n---\n\n# Overview\n", doc)
}

func TestCompose_Deterministic(t *testing.T) {
	fields := map[string]any{"a": 1, "b": true, "c": []string{"x", "y"}, "d": map[string]any{"k": "v"}}

	first, err := Compose(fields, "body")
	require.NoError(t, err)
	second, err := Compose(fields, "body")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
