package mcpserver

import (
	"strings"
	"testing"
)

func TestNewServer(t *testing.T) {
	s := NewServer("1.2.3")
	if s == nil || s.server == nil {
		t.Fatal("NewServer returned nil")
	}

	if s := NewServer(""); s == nil {
		t.Fatal("empty version should fall back to dev")
	}
}

func TestDescriptionsCarryGuidance(t *testing.T) {
	descriptions := map[string]string{
		"analyze_project": describeAnalyzeProject(),
		"tree_shake":      describeTreeShake(),
		"find_cycles":     describeFindCycles(),
		"impact_analysis": describeImpactAnalysis(),
		"largest_symbols": describeLargestSymbols(),
	}

	for name, desc := range descriptions {
		if desc == "" {
			t.Errorf("%s has no description", name)
		}
		if !strings.Contains(desc, "USE WHEN") || !strings.Contains(desc, "INTERPRETING RESULTS") {
			t.Errorf("%s description missing guidance sections", name)
		}
	}
}

func TestGetPathsDefault(t *testing.T) {
	if got := getPaths(AnalyzeInput{}); len(got) != 1 || got[0] != "." {
		t.Errorf("getPaths(empty) = %v", got)
	}
	if got := getPaths(AnalyzeInput{Paths: []string{"src"}}); got[0] != "src" {
		t.Errorf("getPaths = %v", got)
	}
}
