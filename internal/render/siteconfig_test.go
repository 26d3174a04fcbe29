package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/apiref/internal/config"
)

func boolPtr(v bool) *bool { return &v }

func testSite() config.SiteConfig {
	return config.SiteConfig{
		Title:         "my-lib",
		Theme:         "pmarsceill/just-the-docs",
		SearchEnabled: boolPtr(true),
		Homepage:      "https://example.org/my-lib",
	}
}

func TestSiteConfigDocument_ContainsManagedFields(t *testing.T) {
	out := SiteConfigDocument(testSite())

	require.Contains(t, out, "remote_theme: pmarsceill/just-the-docs\n")
	require.Contains(t, out, "search_enabled: true\n")
	require.Contains(t, out, "aux_links:\n  'my-lib on GitHub':\n    - 'https://example.org/my-lib'\n")
}

func TestPatchSiteConfig_ReplacesOnlyManagedFields(t *testing.T) {
	existing := "# hand-maintained\nremote_theme: old/theme\ncolor_scheme: dark\nsearch_enabled: false\naux_links:\n  'old':\n    - 'https://old.example'\nfooter_content: keep me\n"

	site := testSite()
	out := PatchSiteConfig(existing, site)

	require.Contains(t, out, "# hand-maintained\n")
	require.Contains(t, out, "color_scheme: dark\n")
	require.Contains(t, out, "footer_content: keep me\n")
	require.Contains(t, out, "remote_theme: pmarsceill/just-the-docs\n")
	require.Contains(t, out, "search_enabled: true\n")
	require.Contains(t, out, "'my-lib on GitHub'")
	require.NotContains(t, out, "old.example")
}

func TestPatchSiteConfig_AppendsAuxLinksWhenMissing(t *testing.T) {
	existing := "remote_theme: x/y\nsearch_enabled: true\n"

	out := PatchSiteConfig(existing, testSite())
	require.Contains(t, out, "aux_links:\n  'my-lib on GitHub':\n")
}

func TestPatchSiteConfig_NoHomepage_LeavesAuxLinksAlone(t *testing.T) {
	existing := "remote_theme: x/y\nsearch_enabled: true\naux_links:\n  'custom':\n    - 'https://custom.example'\n"

	site := testSite()
	site.Homepage = ""
	out := PatchSiteConfig(existing, site)
	require.Contains(t, out, "https://custom.example")
}

func TestSiteConfigDocument_SearchDisabled(t *testing.T) {
	site := testSite()
	site.SearchEnabled = boolPtr(false)
	require.Contains(t, SiteConfigDocument(site), "search_enabled: false\n")
}
