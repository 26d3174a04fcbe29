package render

import (
	"git.home.luguber.info/inful/apiref/internal/frontmatter"
)

// RenderHome produces the site home document. It is written only when
// absent, so projects can replace it with a hand-maintained landing page.
func (r *Renderer) RenderHome(title string) (string, error) {
	doc, err := frontmatter.Compose(map[string]any{
		"title":        "Home",
		"nav_order":    1,
		"permalink":    "/",
		"has_children": false,
	}, "Welcome to the "+title+" documentation.\n")
	if err != nil {
		return "", err
	}
	return Normalize(doc), nil
}

// RenderModulesIndex produces the parent document of the per-module pages.
// Like the home document it is never overwritten once created.
func (r *Renderer) RenderModulesIndex() (string, error) {
	doc, err := frontmatter.Compose(map[string]any{
		"title":        "Modules",
		"nav_order":    2,
		"has_children": true,
		"permalink":    "/docs/modules",
	}, "")
	if err != nil {
		return "", err
	}
	return Normalize(doc), nil
}
