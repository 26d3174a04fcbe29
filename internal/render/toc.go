package render

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// tocHeading is the fixed heading the site theme styles as a TOC block.
const tocHeading = `<h2 class="text-delta">Table of contents</h2>`

type heading struct {
	Level int
	Text  string
}

// collectHeadings parses markdown and returns its headings in document order.
func collectHeadings(body string) []heading {
	source := []byte(body)
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(source))

	var headings []heading
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok {
			var sb strings.Builder
			for c := h.FirstChild(); c != nil; c = c.NextSibling() {
				if t, ok := c.(*gmast.Text); ok {
					sb.Write(t.Segment.Value(source))
				}
			}
			headings = append(headings, heading{Level: h.Level, Text: sb.String()})
		}
		return gmast.WalkContinue, nil
	})
	return headings
}

// tableOfContents derives a nested link list from the body's own headings.
func tableOfContents(body string) string {
	headings := collectHeadings(body)
	if len(headings) == 0 {
		return tocHeading + "\n"
	}

	minLevel := headings[0].Level
	for _, h := range headings {
		if h.Level < minLevel {
			minLevel = h.Level
		}
	}

	var b strings.Builder
	b.WriteString(tocHeading)
	b.WriteString("\n\n")
	for _, h := range headings {
		indent := strings.Repeat("  ", h.Level-minLevel)
		fmt.Fprintf(&b, "%s- [%s](#%s)\n", indent, h.Text, slugify(h.Text))
	}
	return b.String()
}

// slugify builds the anchor fragment the documentation site generates for a
// heading: lowercase, alphanumerics kept, spaces collapsed to single dashes.
func slugify(text string) string {
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case r == ' ' || r == '-' || r == '_':
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
