package pattern

import (
	"github.com/sheetdefect/triage/internal/triage/diff"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

const calcChainPath = "xl/calcChain.xml"

func classifyCalcChainDrop(_, _ *scan.PartMap, report diff.DiffReport) *Pattern {
	e, ok := diffEntry(report, calcChainPath)
	if !ok || e.Status != diff.StatusRemoved {
		return nil
	}
	return &Pattern{
		Name:       CalcChainDrop,
		Confidence: High,
		Evidence:   []string{calcChainPath + " present in candidate, absent in repaired"},
		Hint:       "delete " + calcChainPath,
	}
}
