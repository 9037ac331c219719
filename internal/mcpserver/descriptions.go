package mcpserver

// Tool descriptions with interpretation guidance for LLMs.

func describeAnalyzeProject() string {
	return `Extracts every top-level symbol from a TypeScript/JavaScript project and builds the dependency graph over them.

USE WHEN:
- Mapping what a codebase defines and how symbols reference each other
- Preparing symbol ids for tree_shake or impact_analysis
- Checking per-file symbol and import counts

INTERPRETING RESULTS:
- Symbol ids have the form file_key:name (file_key is the basename without extension)
- dependencies/dependents are value-level reference counts; type-only references are excluded by default
- statistics.total_edges is the number of directed dependency edges`
}

func describeTreeShake() string {
	return `Computes the forward transitive closure from entry-point symbols and the complement set that is safe to remove.

USE WHEN:
- Finding dead exports before deleting code
- Measuring how much of a library a given entry point actually uses

INTERPRETING RESULTS:
- included is the live set reachable from the entry points
- unused symbols are never reached from any entry point; removal_rate is their share
- missing_entries are entry ids that matched no symbol (typo or stale id)`
}

func describeFindCycles() string {
	return `Enumerates dependency cycles between symbols.

USE WHEN:
- Untangling circular imports
- Auditing architectural layering

INTERPRETING RESULTS:
- Each cycle is a sequence of symbol ids ending where it starts
- summary reports strongly connected components and the vertices involved in any cycle`
}

func describeImpactAnalysis() string {
	return `Computes the reverse transitive closure of one symbol: everything that would be affected by changing it.

USE WHEN:
- Estimating blast radius before refactoring a symbol
- Finding all call sites and transitive consumers

INTERPRETING RESULTS:
- direct_dependents reference the symbol immediately
- all_dependents is the full transitive set; count is its size`
}

func describeLargestSymbols() string {
	return `Ranks symbols by the number of symbols they depend on.

USE WHEN:
- Locating the most coupled declarations in a codebase
- Picking refactoring targets that would simplify the graph most

INTERPRETING RESULTS:
- dependencies counts direct (not transitive) edges out of the symbol
- Ties are broken by symbol id for stable output`
}
