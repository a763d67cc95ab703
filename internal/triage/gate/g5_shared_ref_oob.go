package gate

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

// cellRefRow matches a bare cell reference's row component (e.g. the "12"
// in "A12"); this is a fixed-shape anchored match, not an open-ended
// backtracking search, so it stays within the performance contract.
var cellRefRow = regexp.MustCompile(`^[A-Z]+(\d+)$`)

// checkSharedFormulaOutOfBounds (G5) compares each shared master formula's
// declared ref rectangle against the sheet's maximum populated row.
func checkSharedFormulaOutOfBounds(m *scan.PartMap, cfg config.TriageConfig) []Finding {
	var findings []Finding

	for _, p := range m.Paths() {
		if !isWorksheetPart(p) {
			continue
		}
		part, _ := m.Get(p)
		maxRow := maxPopulatedRow(part.Bytes)
		if maxRow == 0 {
			continue
		}

		var sample []map[string]any
		for _, f := range findElements(part.Bytes, "f") {
			t, _ := attr(f.Raw, "t")
			if string(t) != "shared" {
				continue
			}
			ref, ok := attr(f.Raw, "ref")
			if !ok {
				continue
			}
			_, last, ok := parseRefRectangle(string(ref))
			if !ok {
				continue
			}
			if last > maxRow {
				if len(sample) >= cfg.SampleSize {
					break
				}
				si, _ := attr(f.Raw, "si")
				sample = append(sample, map[string]any{
					"part":   p,
					"si":     string(si),
					"ref":    string(ref),
					"maxRow": maxRow,
				})
			}
		}

		if len(sample) > 0 {
			findings = append(findings, Finding{
				GateID:  G5SharedFormulaOutOfBounds,
				Message: fmt.Sprintf("%s has shared formula ref(s) extending past the sheet's populated rows", p),
				Sample:  sample,
			})
		}
	}

	return findings
}

// maxPopulatedRow returns the largest row number appearing on any <c>
// element in sheetXML. It walks every <c> start tag, open or
// self-closing, since styled-but-empty cells (e.g. "<c r=\"B5\" s=\"3\"/>")
// carry no separate closing tag and would be missed by cell-body
// segmentation alone.
func maxPopulatedRow(sheetXML []byte) int {
	max := 0
	for _, c := range findElements(sheetXML, "c") {
		r, ok := attr(c.Raw, "r")
		if !ok {
			continue
		}
		row := rowOf(string(r))
		if row > max {
			max = row
		}
	}
	return max
}

func rowOf(ref string) int {
	m := cellRefRow.FindStringSubmatch(ref)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// parseRefRectangle parses an "A1:B12"-style range, returning the first
// and last row numbers. A single-cell ref ("A1") returns the same row
// twice.
func parseRefRectangle(ref string) (first, last int, ok bool) {
	parts := bytes.Split([]byte(ref), []byte(":"))
	switch len(parts) {
	case 1:
		row := rowOf(string(parts[0]))
		if row == 0 {
			return 0, 0, false
		}
		return row, row, true
	case 2:
		r1 := rowOf(string(parts[0]))
		r2 := rowOf(string(parts[1]))
		if r1 == 0 || r2 == 0 {
			return 0, 0, false
		}
		if r1 > r2 {
			r1, r2 = r2, r1
		}
		return r1, r2, true
	default:
		return 0, 0, false
	}
}
