package report_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonlabs/prism/pkg/analyzer/project"
	"github.com/halcyonlabs/prism/pkg/analyzer/shake"
	"github.com/halcyonlabs/prism/pkg/models"
	"github.com/halcyonlabs/prism/pkg/report"
	"github.com/halcyonlabs/prism/pkg/symtab"
)

func fixtureShake(t *testing.T) *shake.Result {
	t.Helper()
	table := symtab.New()

	lib := models.NewFileSymbols("lib", "lib.ts")
	util := models.NewSymbol("lib", "util", models.KindFunction)
	util.TypeText = "function util(): void"
	lib.Add(util)
	orphan := models.NewSymbol("lib", "orphan", models.KindConst)
	lib.Add(orphan)
	require.NoError(t, table.InsertFile(lib))

	app := models.NewFileSymbols("app", "app.ts")
	main := models.NewSymbol("app", "main", models.KindFunction)
	main.IsExported = true
	main.AddDependency("lib:util")
	app.Add(main)
	require.NoError(t, table.InsertFile(app))
	table.PopulateDependents()

	return shake.Shake(&project.Result{Table: table}, []string{"app:main"})
}

func pinnedReporter() *report.Reporter {
	clock := func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return report.New(report.WithClock(clock))
}

func TestJSONReportFields(t *testing.T) {
	data, err := pinnedReporter().JSON(fixtureShake(t))
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))

	for _, key := range []string{"timestamp", "entry_points", "statistics", "includedSymbols", "unusedSymbols", "fileAnalysis"} {
		assert.Contains(t, doc, key)
	}

	assert.Equal(t, "2024-06-01T12:00:00Z", doc["timestamp"])

	stats := doc["statistics"].(map[string]any)
	for _, key := range []string{"total_symbols", "included_symbols", "unused_symbols", "removal_rate"} {
		assert.Contains(t, stats, key)
	}

	fa := doc["fileAnalysis"].(map[string]any)
	libEntry := fa["lib"].(map[string]any)
	for _, key := range []string{"totalSymbols", "includedSymbols", "unusedSymbols", "removalRate"} {
		assert.Contains(t, libEntry, key)
	}
}

func TestJSONReportDeterministic(t *testing.T) {
	rep := pinnedReporter()
	first, err := rep.JSON(fixtureShake(t))
	require.NoError(t, err)
	second, err := rep.JSON(fixtureShake(t))
	require.NoError(t, err)
	assert.Equal(t, first, second, "identical inputs must produce identical report bytes")
}

func TestSummaryText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pinnedReporter().Summary(&buf, fixtureShake(t)))

	out := buf.String()
	assert.Contains(t, out, "Total symbols:    3")
	assert.Contains(t, out, "Included symbols: 2")
	assert.Contains(t, out, "Unused symbols:   1")
	assert.Contains(t, out, "33.33%")
}

func TestDetailedIncludesTypeText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pinnedReporter().Detailed(&buf, fixtureShake(t)))

	out := buf.String()
	assert.Contains(t, out, "Entry points:")
	assert.Contains(t, out, "app:main")
	assert.Contains(t, out, "util: function util(): void")
	assert.Contains(t, out, "orphan")
}

func TestMarkdownReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pinnedReporter().Markdown(&buf, fixtureShake(t)))

	out := buf.String()
	assert.Contains(t, out, "# Tree Shaking Report")
	assert.Contains(t, out, "## Summary")
	assert.Contains(t, out, "| Total symbols | 3 |")
	assert.Contains(t, out, "### lib")
}

func TestDOTOutput(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pinnedReporter().DOT(&buf, fixtureShake(t), report.DefaultDOTOptions()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "digraph Dependencies {"))
	assert.Contains(t, out, "rankdir=LR;")
	assert.Contains(t, out, `"app:main" [label="main", fillcolor=lightgreen];`)
	assert.Contains(t, out, `"lib:orphan" [label="orphan", fillcolor=lightcoral];`)
	assert.Contains(t, out, `"app:main" -> "lib:util";`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "}"))
}

func TestDOTIncludedOnly(t *testing.T) {
	var buf bytes.Buffer
	opts := report.DefaultDOTOptions()
	opts.IncludedOnly = true
	require.NoError(t, pinnedReporter().DOT(&buf, fixtureShake(t), opts))
	assert.NotContains(t, buf.String(), "orphan")
}

func TestDOTMaxNodesCap(t *testing.T) {
	var buf bytes.Buffer
	opts := report.DOTOptions{MaxNodes: 1}
	require.NoError(t, pinnedReporter().DOT(&buf, fixtureShake(t), opts))

	count := strings.Count(buf.String(), "fillcolor=")
	assert.Equal(t, 1, count)
}

func TestAdjacencySortedByLocalName(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, pinnedReporter().Adjacency(&buf, fixtureShake(t), report.AdjacencyOptions{}))

	out := buf.String()
	// Header lines only; dependency lines are indented.
	mainIdx := strings.Index(out, "app:main\n")
	orphanIdx := strings.Index(out, "\nlib:orphan\n")
	utilIdx := strings.Index(out, "\nlib:util\n")
	assert.True(t, mainIdx < orphanIdx && orphanIdx < utilIdx, "adjacency not sorted by local name:\n%s", out)

	assert.Contains(t, out, "  lib:util\n")
	assert.Contains(t, out, "  (none)\n")
}

func TestAdjacencyDeterministic(t *testing.T) {
	rep := pinnedReporter()
	var a, b bytes.Buffer
	require.NoError(t, rep.Adjacency(&a, fixtureShake(t), report.AdjacencyOptions{}))
	require.NoError(t, rep.Adjacency(&b, fixtureShake(t), report.AdjacencyOptions{}))
	assert.Equal(t, a.String(), b.String())
}

func TestImpactAnalysis(t *testing.T) {
	res := fixtureShake(t)
	impact := report.ImpactAnalysis(res.Analysis.Table, "lib:util")

	assert.Equal(t, "lib:util", impact.Target)
	assert.Equal(t, []string{"app:main"}, impact.Direct)
	assert.Equal(t, []string{"app:main"}, impact.All)
	assert.Equal(t, 1, impact.Count)
}

func TestFindLargestSymbols(t *testing.T) {
	res := fixtureShake(t)
	ranked := report.FindLargestSymbols(res.Analysis.Table, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "app:main", ranked[0].ID)
	assert.Equal(t, 1, ranked[0].Dependencies)
	// Tie between lib:orphan and lib:util breaks by id.
	assert.Equal(t, "lib:orphan", ranked[1].ID)
}

func TestFindCircularDependenciesEmpty(t *testing.T) {
	res := fixtureShake(t)
	cycles, err := report.FindCircularDependencies(context.Background(), res.Analysis.Table)
	require.NoError(t, err)
	assert.Empty(t, cycles)
}
