package pattern

import (
	"fmt"

	"github.com/sheetdefect/triage/internal/triage/diff"
	"github.com/sheetdefect/triage/internal/triage/scan"
	"github.com/sheetdefect/triage/internal/triage/xmlutil"
)

const sharedStringsPath = "xl/sharedStrings.xml"

func classifySharedStringsRebuild(candidate, repaired *scan.PartMap, report diff.DiffReport) *Pattern {
	e, ok := diffEntry(report, sharedStringsPath)
	if !ok || e.Status != diff.StatusChanged {
		return nil
	}

	beforeCount, beforeUnique, ok := sstCounts(candidate)
	if !ok {
		return nil
	}
	afterCount, afterUnique, ok := sstCounts(repaired)
	if !ok {
		return nil
	}
	if beforeCount == afterCount && beforeUnique == afterUnique {
		return nil
	}

	return &Pattern{
		Name:       SharedStringsRebuild,
		Confidence: Medium,
		Evidence: []string{
			fmt.Sprintf("count: %s → %s", beforeCount, afterCount),
			fmt.Sprintf("uniqueCount: %s → %s", beforeUnique, afterUnique),
		},
		Hint: "repaired copy rebuilt the shared string table; replace verbatim or re-run diff for the exact content",
	}
}

func sstCounts(m *scan.PartMap) (count, unique string, ok bool) {
	part, ok := m.Get(sharedStringsPath)
	if !ok {
		return "", "", false
	}
	elems := xmlutil.FindElements(part.Bytes, "sst")
	if len(elems) == 0 {
		return "", "", false
	}
	c, _ := xmlutil.Attr(elems[0].Raw, "count")
	u, _ := xmlutil.Attr(elems[0].Raw, "uniqueCount")
	return string(c), string(u), true
}
