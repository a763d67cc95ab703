package gate

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

var cellRefFull = regexp.MustCompile(`^([A-Z]+)(\d+)$`)

type cellPos struct {
	Col, Row int
}

// checkSharedFormulaBBoxMismatch (G6) computes, for every shared formula
// si index, the minimum enclosing rectangle of the cells that reference it
// and compares it to the ref declared on the master occurrence.
func checkSharedFormulaBBoxMismatch(m *scan.PartMap, cfg config.TriageConfig) []Finding {
	var findings []Finding

	for _, p := range m.Paths() {
		if !isWorksheetPart(p) {
			continue
		}
		part, _ := m.Get(p)

		declaredRef := map[string]string{}
		var declOrder []string
		members := map[string][]cellPos{}

		for _, c := range scanCells(part.Bytes) {
			ref, ok := attr(c.OpenTag, "r")
			if !ok {
				continue
			}
			pos, ok := parseCellRef(string(ref))
			if !ok {
				continue
			}
			for _, f := range findElements(c.Inner, "f") {
				t, _ := attr(f.Raw, "t")
				if string(t) != "shared" {
					continue
				}
				si, ok := attr(f.Raw, "si")
				if !ok {
					continue
				}
				key := string(si)
				members[key] = append(members[key], pos)
				if declRef, ok := attr(f.Raw, "ref"); ok {
					if _, seen := declaredRef[key]; !seen {
						declOrder = append(declOrder, key)
					}
					declaredRef[key] = string(declRef)
				}
			}
		}

		var sample []map[string]any
		for _, si := range declOrder {
			if len(sample) >= cfg.SampleSize {
				break
			}
			decl := declaredRef[si]
			computed := enclosingRect(members[si])
			if computed == "" || computed == decl {
				continue
			}
			sample = append(sample, map[string]any{
				"part":     p,
				"si":       si,
				"declared": decl,
				"computed": computed,
			})
		}

		if len(sample) > 0 {
			findings = append(findings, Finding{
				GateID:  G6SharedFormulaBBoxMismatch,
				Message: fmt.Sprintf("%s has shared formula bounding box mismatch(es)", p),
				Sample:  sample,
			})
		}
	}

	return findings
}

func parseCellRef(ref string) (cellPos, bool) {
	mm := cellRefFull.FindStringSubmatch(ref)
	if mm == nil {
		return cellPos{}, false
	}
	row, _ := strconv.Atoi(mm[2])
	return cellPos{Col: colOf(mm[1]), Row: row}, true
}

func colOf(letters string) int {
	n := 0
	for _, c := range letters {
		n = n*26 + int(c-'A'+1)
	}
	return n
}

func colLetters(n int) string {
	var out []byte
	for n > 0 {
		n--
		out = append([]byte{byte('A' + n%26)}, out...)
		n /= 26
	}
	return string(out)
}

// enclosingRect returns the "A1:B12"-style rectangle enclosing all
// positions, or "" if positions is empty.
func enclosingRect(positions []cellPos) string {
	if len(positions) == 0 {
		return ""
	}
	minCol, minRow := positions[0].Col, positions[0].Row
	maxCol, maxRow := positions[0].Col, positions[0].Row
	for _, p := range positions[1:] {
		if p.Col < minCol {
			minCol = p.Col
		}
		if p.Col > maxCol {
			maxCol = p.Col
		}
		if p.Row < minRow {
			minRow = p.Row
		}
		if p.Row > maxRow {
			maxRow = p.Row
		}
	}
	first := fmt.Sprintf("%s%d", colLetters(minCol), minRow)
	last := fmt.Sprintf("%s%d", colLetters(maxCol), maxRow)
	if first == last {
		return first
	}
	return first + ":" + last
}
