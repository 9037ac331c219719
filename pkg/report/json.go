package report

import (
	"encoding/json"
	"time"

	"github.com/halcyonlabs/prism/pkg/analyzer/shake"
	"github.com/halcyonlabs/prism/pkg/models"
)

// jsonReport is the persistence format. Field names are stable; the
// format is additive.
type jsonReport struct {
	Timestamp       string                             `json:"timestamp"`
	EntryPoints     []string                           `json:"entry_points"`
	Statistics      models.ShakeStatistics             `json:"statistics"`
	IncludedSymbols []string                           `json:"includedSymbols"`
	UnusedSymbols   []string                           `json:"unusedSymbols"`
	MissingEntries  []string                           `json:"missingEntryPoints,omitempty"`
	FileAnalysis    map[string]models.FileShakeSummary `json:"fileAnalysis"`
}

// JSON renders the result as an indented JSON document. Map keys are
// emitted sorted, so identical inputs yield identical bytes apart from
// the timestamp.
func (r *Reporter) JSON(res *shake.Result) ([]byte, error) {
	doc := jsonReport{
		Timestamp:       r.now().UTC().Format(time.RFC3339),
		EntryPoints:     res.EntryPoints,
		Statistics:      res.Statistics,
		IncludedSymbols: res.IncludedList(),
		UnusedSymbols:   res.Unused,
		MissingEntries:  res.MissingEntries,
		FileAnalysis:    res.FileSummaries,
	}
	return json.MarshalIndent(doc, "", "  ")
}
