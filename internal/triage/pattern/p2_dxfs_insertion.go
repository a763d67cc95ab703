package pattern

import (
	"fmt"
	"strconv"

	"github.com/sheetdefect/triage/internal/triage/diff"
	"github.com/sheetdefect/triage/internal/triage/scan"
	"github.com/sheetdefect/triage/internal/triage/xmlutil"
)

const stylesPath = "xl/styles.xml"

func classifyDxfsInsertion(candidate, repaired *scan.PartMap, report diff.DiffReport) *Pattern {
	e, ok := diffEntry(report, stylesPath)
	if !ok || e.Status != diff.StatusChanged {
		return nil
	}

	before, ok := dxfsCount(candidate)
	if !ok {
		return nil
	}
	after, ok := dxfsCount(repaired)
	if !ok || after <= before {
		return nil
	}

	return &Pattern{
		Name:       DxfsInsertion,
		Confidence: High,
		Evidence:   []string{fmt.Sprintf("dxfs count: %d → %d", before, after)},
		Hint:       "append new <dxf> block(s) before </dxfs> in " + stylesPath,
	}
}

func dxfsCount(m *scan.PartMap) (int, bool) {
	part, ok := m.Get(stylesPath)
	if !ok {
		return 0, false
	}
	elems := xmlutil.FindElements(part.Bytes, "dxfs")
	if len(elems) == 0 {
		return 0, false
	}
	count, ok := xmlutil.Attr(elems[0].Raw, "count")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(string(count))
	if err != nil {
		return 0, false
	}
	return n, true
}
