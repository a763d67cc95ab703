package pattern

import (
	"fmt"
	"strings"

	"github.com/sheetdefect/triage/internal/triage/diff"
	"github.com/sheetdefect/triage/internal/triage/scan"
	"github.com/sheetdefect/triage/internal/triage/xmlutil"
)

func classifyRelsCleanup(candidate, repaired *scan.PartMap, report diff.DiffReport) *Pattern {
	var evidence []string
	var matches []ByteMatch

	for _, e := range report.Entries {
		if e.Status != diff.StatusChanged || !strings.HasSuffix(e.Path, ".rels") {
			continue
		}
		before, ok := candidate.Get(e.Path)
		if !ok {
			continue
		}
		after, ok := repaired.Get(e.Path)
		if !ok {
			continue
		}
		beforeCount := len(xmlutil.FindElements(before.Bytes, "Relationship"))
		afterCount := len(xmlutil.FindElements(after.Bytes, "Relationship"))
		if afterCount >= beforeCount {
			continue
		}
		evidence = append(evidence, fmt.Sprintf("%s Relationship count: %d → %d", e.Path, beforeCount, afterCount))
		matches = append(matches, ByteMatch{
			Part:        e.Path,
			Replacement: string(after.Bytes),
		})
	}

	if len(evidence) == 0 {
		return nil
	}
	return &Pattern{
		Name:       RelsCleanup,
		Confidence: High,
		Evidence:   evidence,
		Hint:       "replace the .rels part verbatim with the repaired copy",
		Matches:    matches,
	}
}
