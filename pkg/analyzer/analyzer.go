package analyzer

import "context"

// ProgramAnalyzer is the interface analysis drivers implement. The context
// is checked cooperatively between units of work; a cancelled context
// returns promptly and the caller discards any partial result.
type ProgramAnalyzer[P any, T any] interface {
	// Analyze processes a program and returns the analysis result.
	Analyze(ctx context.Context, program P) (T, error)
}
