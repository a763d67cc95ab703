// Package pattern classifies a diff.DiffReport into named, confidence-rated
// repair patterns — the seven fixed signatures a host's auto-repair is
// known to leave behind.
package pattern

import (
	"github.com/sheetdefect/triage/internal/triage/diff"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

// Name identifies one of the seven fixed classification rules.
type Name string

const (
	CalcChainDrop        Name = "CALCCHAIN_DROP"
	DxfsInsertion        Name = "DXFS_INSERTION"
	CfDxfIDClone         Name = "CF_DXFID_CLONE"
	SharedStringsRebuild Name = "SHAREDSTRINGS_REBUILD"
	TableStyleNorm       Name = "TABLE_STYLE_NORM"
	SharedRefTrim        Name = "SHARED_REF_TRIM"
	RelsCleanup          Name = "RELS_CLEANUP"
)

// Confidence is how strongly a pattern match implies the named repair.
type Confidence string

const (
	High   Confidence = "HIGH"
	Medium Confidence = "MEDIUM"
	Low    Confidence = "LOW"
)

// ByteMatch is a byte-exact match/replacement pair RecipeBuilder can turn
// directly into a literal_replace op, without re-deriving it from Evidence
// (which is human-readable and may quote or truncate values).
type ByteMatch struct {
	Part        string
	Match       string
	Replacement string
}

// Pattern is one classification verdict.
type Pattern struct {
	Name       Name
	Confidence Confidence
	Evidence   []string
	Hint       string
	// Matches carries the byte-exact substitutions backing this pattern,
	// populated only by CfDxfIDClone, SharedRefTrim and RelsCleanup.
	// RecipeBuilder turns the first two rules' matches into literal_replace
	// ops, and RelsCleanup's (whose Replacement is the whole repaired part)
	// into set_part ops.
	Matches []ByteMatch
}

// rule is one of the seven fixed classifiers; it returns nil if it does
// not fire. Order here is the order patterns appear in the output list.
type rule func(candidate, repaired *scan.PartMap, report diff.DiffReport) *Pattern

var rules = []rule{
	classifyCalcChainDrop,
	classifyDxfsInsertion,
	classifyCfDxfIDClone,
	classifySharedStringsRebuild,
	classifyTableStyleNorm,
	classifySharedRefTrim,
	classifyRelsCleanup,
}

// Classify applies all seven rules in table order and returns every
// pattern that fires.
func Classify(candidate, repaired *scan.PartMap, report diff.DiffReport) []Pattern {
	var out []Pattern
	for _, r := range rules {
		if p := r(candidate, repaired, report); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func diffEntry(report diff.DiffReport, path string) (diff.PartDiff, bool) {
	for _, e := range report.Entries {
		if e.Path == path {
			return e, true
		}
	}
	return diff.PartDiff{}, false
}

func changedPathsWithPrefix(report diff.DiffReport, prefix string) []string {
	var out []string
	for _, e := range report.Entries {
		if e.Status != diff.StatusChanged {
			continue
		}
		if len(e.Path) >= len(prefix) && e.Path[:len(prefix)] == prefix {
			out = append(out, e.Path)
		}
	}
	return out
}

func anyWorksheetChanged(report diff.DiffReport) bool {
	return len(changedPathsWithPrefix(report, "xl/worksheets/")) > 0
}
