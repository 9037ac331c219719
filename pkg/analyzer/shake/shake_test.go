package shake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonlabs/prism/pkg/analyzer/project"
	"github.com/halcyonlabs/prism/pkg/analyzer/shake"
	"github.com/halcyonlabs/prism/pkg/models"
	"github.com/halcyonlabs/prism/pkg/symtab"
)

// fixtureResult builds an analysis over two files:
//
//	app:main -> app:helper -> lib:util
//	lib:orphan has no dependents
func fixtureResult(t *testing.T) *project.Result {
	t.Helper()
	table := symtab.New()

	lib := models.NewFileSymbols("lib", "lib.ts")
	util := models.NewSymbol("lib", "util", models.KindFunction)
	util.IsExported = true
	lib.Add(util)
	orphan := models.NewSymbol("lib", "orphan", models.KindFunction)
	orphan.IsExported = true
	lib.Add(orphan)
	require.NoError(t, table.InsertFile(lib))

	app := models.NewFileSymbols("app", "app.ts")
	helper := models.NewSymbol("app", "helper", models.KindFunction)
	helper.AddDependency("lib:util")
	app.Add(helper)
	main := models.NewSymbol("app", "main", models.KindFunction)
	main.IsExported = true
	main.AddDependency("app:helper")
	app.Add(main)
	require.NoError(t, table.InsertFile(app))

	table.PopulateDependents()
	return &project.Result{Table: table}
}

func TestShakePartition(t *testing.T) {
	res := shake.Shake(fixtureResult(t), []string{"app:main"})

	assert.Contains(t, res.Included, "app:main")
	assert.Contains(t, res.Included, "app:helper")
	assert.Contains(t, res.Included, "lib:util")
	assert.Equal(t, []string{"lib:orphan"}, res.Unused)

	// Included and unused partition the table.
	for _, id := range res.Unused {
		_, inIncluded := res.Included[id]
		assert.False(t, inIncluded, "%s in both sets", id)
	}

	stats := res.Statistics
	assert.Equal(t, 4, stats.TotalSymbols)
	assert.Equal(t, 3, stats.IncludedSymbols)
	assert.Equal(t, 1, stats.UnusedSymbols)
	assert.Equal(t, 25.0, stats.RemovalRate)
}

func TestShakeGroupsByFile(t *testing.T) {
	res := shake.Shake(fixtureResult(t), []string{"app:main"})

	assert.ElementsMatch(t, []string{"app:helper", "app:main"}, res.IncludedByFile["app"])
	assert.Equal(t, []string{"lib:util"}, res.IncludedByFile["lib"])
	assert.Equal(t, []string{"lib:orphan"}, res.UnusedByFile["lib"])

	libSummary := res.FileSummaries["lib"]
	assert.Equal(t, 2, libSummary.TotalSymbols)
	assert.Equal(t, 1, libSummary.IncludedSymbols)
	assert.Equal(t, 50.0, libSummary.RemovalRate)
}

func TestShakeMissingEntryRetained(t *testing.T) {
	res := shake.Shake(fixtureResult(t), []string{"app:main", "ghost:entry"})

	assert.Equal(t, []string{"ghost:entry"}, res.MissingEntries)
	assert.Contains(t, res.Included, "ghost:entry")

	// Missing entries do not count toward statistics.
	assert.Equal(t, 3, res.Statistics.IncludedSymbols)
}

func TestShakeNoEntries(t *testing.T) {
	res := shake.Shake(fixtureResult(t), nil)

	assert.Empty(t, res.Included)
	assert.Len(t, res.Unused, 4)
	assert.Equal(t, 100.0, res.Statistics.RemovalRate)
}
