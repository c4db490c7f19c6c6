package catalog

import (
	"fmt"
	"strings"
)

// Markdown lays out the prayer text, its Latin version and explanation.
// Line breaks of the prayer are kept as hard breaks.
func (p Prayer) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", p.Title)
	if p.Category != "" {
		fmt.Fprintf(&b, "*%s*\n\n", p.Category)
	}
	writeLines(&b, p.Content, "")

	if p.LatinVersion != "" {
		b.WriteString("## Versão em Latim\n\n")
		writeLines(&b, p.LatinVersion, "> ")
	}

	if p.Explanation != "" {
		fmt.Fprintf(&b, "## Sobre a oração\n\n%s\n\n", p.Explanation)
	}
	return b.String()
}

// Markdown lays out the rosary with one section per step.
func (r Rosary) Markdown() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n%s\n\n", r.Title, r.Description)
	for i, s := range r.Steps {
		fmt.Fprintf(&b, "## %d. %s\n\n%s\n\n", i+1, s.Title, s.Description)
		if s.Prayer != "" {
			writeLines(&b, s.Prayer, "> ")
		}
	}
	return b.String()
}

func writeLines(b *strings.Builder, s, prefix string) {
	for _, line := range strings.Split(strings.TrimSpace(s), "\n") {
		fmt.Fprintf(b, "%s%s  \n", prefix, line)
	}
	b.WriteString("\n")
}
