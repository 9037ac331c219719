package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/halcyonlabs/prism/pkg/analyzer/shake"
	"github.com/halcyonlabs/prism/pkg/models"
)

// Markdown renders the detailed report as headings and tables.
func (r *Reporter) Markdown(w io.Writer, res *shake.Result) error {
	stats := res.Statistics

	fmt.Fprintf(w, "# Tree Shaking Report\n\n")
	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "| Metric | Value |\n")
	fmt.Fprintf(w, "|--------|-------|\n")
	fmt.Fprintf(w, "| Total symbols | %d |\n", stats.TotalSymbols)
	fmt.Fprintf(w, "| Included symbols | %d |\n", stats.IncludedSymbols)
	fmt.Fprintf(w, "| Unused symbols | %d |\n", stats.UnusedSymbols)
	fmt.Fprintf(w, "| Removal rate | %.2f%% |\n", stats.RemovalRate)

	fmt.Fprintf(w, "\n## Entry Points\n\n")
	for _, entry := range res.EntryPoints {
		fmt.Fprintf(w, "- `%s`\n", entry)
	}
	for _, missing := range res.MissingEntries {
		fmt.Fprintf(w, "- `%s` *(no matching symbol)*\n", missing)
	}

	fmt.Fprintf(w, "\n## Included Symbols\n\n")
	r.markdownGrouped(w, res, res.IncludedByFile)

	fmt.Fprintf(w, "\n## Unused Symbols\n\n")
	r.markdownGrouped(w, res, res.UnusedByFile)
	return nil
}

func (r *Reporter) markdownGrouped(w io.Writer, res *shake.Result, byFile map[string][]string) {
	keys := make([]string, 0, len(byFile))
	for key := range byFile {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		fmt.Fprintf(w, "### %s\n\n", key)
		fmt.Fprintf(w, "| Symbol | Type |\n")
		fmt.Fprintf(w, "|--------|------|\n")
		for _, id := range byFile[key] {
			typeText := ""
			if sym, ok := res.Analysis.Table.Get(id); ok {
				typeText = sym.TypeText
			}
			fmt.Fprintf(w, "| %s | %s |\n", models.NameOf(id), escapePipes(typeText))
		}
		fmt.Fprintln(w)
	}
}

func escapePipes(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '|' {
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
