package render

import "strings"

// Normalize is the final formatting pass over an assembled document. It
// canonicalizes whitespace so output bytes do not depend on how the
// intermediate sections were concatenated: line endings become LF, trailing
// spaces are stripped, runs of blank lines collapse to one (fenced code
// blocks excepted) and the document ends with exactly one newline.
func Normalize(doc string) string {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	lines := strings.Split(doc, "\n")

	out := make([]string, 0, len(lines))
	inFence := false
	blankPending := false
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if strings.HasPrefix(strings.TrimSpace(trimmed), "```") {
			if blankPending && len(out) > 0 {
				out = append(out, "")
			}
			blankPending = false
			inFence = !inFence
			out = append(out, trimmed)
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}
		if trimmed == "" {
			blankPending = len(out) > 0
			continue
		}
		if blankPending {
			out = append(out, "")
			blankPending = false
		}
		out = append(out, trimmed)
	}

	return strings.Join(out, "\n") + "\n"
}
