package render

import (
	"fmt"
	"regexp"
	"strings"

	"git.home.luguber.info/inful/apiref/internal/config"
)

// Site configuration handling for the generated documentation site. The
// _config.yml file is created from a template when absent; when it already
// exists only three fields are patched in place (theme reference, search
// flag, homepage navigation block) and every other byte is preserved, so
// user customizations survive regeneration.

var (
	themeLineRe  = regexp.MustCompile(`(?m)^remote_theme:[^\n]*$`)
	searchLineRe = regexp.MustCompile(`(?m)^search_enabled:[^\n]*$`)
	// The aux_links mapping plus its indented entries.
	auxLinksBlockRe = regexp.MustCompile(`(?m)^aux_links:\n(?:[ \t]+[^\n]*\n?)*`)
)

// SiteConfigDocument renders a fresh _config.yml from the template.
func SiteConfigDocument(site config.SiteConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "remote_theme: %s\n\n", site.Theme)
	fmt.Fprintf(&b, "# Enable or disable the site search\nsearch_enabled: %t\n", site.SearchOn())
	if block := auxLinksBlock(site); block != "" {
		b.WriteString("\n# Aux links for the upper right navigation\n")
		b.WriteString(block)
	}
	return b.String()
}

// PatchSiteConfig substitutes the managed fields into an existing
// _config.yml, leaving all other content untouched.
func PatchSiteConfig(existing string, site config.SiteConfig) string {
	out := existing
	out = themeLineRe.ReplaceAllString(out, "remote_theme: "+site.Theme)
	out = searchLineRe.ReplaceAllString(out, fmt.Sprintf("search_enabled: %t", site.SearchOn()))
	if block := auxLinksBlock(site); block != "" {
		if auxLinksBlockRe.MatchString(out) {
			out = auxLinksBlockRe.ReplaceAllString(out, block)
		} else {
			if !strings.HasSuffix(out, "\n") {
				out += "\n"
			}
			out += block
		}
	}
	return out
}

func auxLinksBlock(site config.SiteConfig) string {
	if site.Homepage == "" {
		return ""
	}
	return fmt.Sprintf("aux_links:\n  '%s on GitHub':\n    - '%s'\n", site.Title, site.Homepage)
}
