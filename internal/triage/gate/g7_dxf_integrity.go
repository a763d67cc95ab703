package gate

import (
	"fmt"
	"strconv"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

// checkStylesDxfIntegrity (G7) verifies xl/styles.xml's declared dxfs count
// matches the number of child <dxf> elements, and that every cfRule@dxfId
// referenced from a worksheet resolves to an entry within that table.
func checkStylesDxfIntegrity(m *scan.PartMap, cfg config.TriageConfig) []Finding {
	styles, ok := m.Get("xl/styles.xml")
	if !ok {
		return nil
	}

	dxfsElems := findElements(styles.Bytes, "dxfs")
	if len(dxfsElems) == 0 {
		return nil
	}
	dxfsBody := dxfsElems[0]
	declared, hasCount := attr(dxfsBody.Raw, "count")
	children := findElements(styles.Bytes, "dxf")
	actual := len(children)

	var findings []Finding
	var sample []map[string]any

	if hasCount {
		n, err := strconv.Atoi(string(declared))
		if err == nil && n != actual {
			sample = append(sample, map[string]any{
				"declaredCount": n,
				"actualCount":   actual,
				"reason":        "xl/styles.xml dxfs@count does not match the number of child dxf elements",
			})
		}
	}

	for _, p := range m.Paths() {
		if !isWorksheetPart(p) {
			continue
		}
		part, _ := m.Get(p)
		for _, rule := range findElements(part.Bytes, "cfRule") {
			dxfID, ok := attr(rule.Raw, "dxfId")
			if !ok {
				continue
			}
			id, err := strconv.Atoi(string(dxfID))
			if err != nil || id < 0 || id >= actual {
				if len(sample) >= cfg.SampleSize {
					break
				}
				sample = append(sample, map[string]any{
					"part":      p,
					"dxfId":     string(dxfID),
					"dxfsCount": actual,
					"reason":    "cfRule dxfId out of range of xl/styles.xml's dxfs table",
					"matchRaw":  string(rule.Raw),
				})
			}
		}
	}

	if len(sample) > 0 {
		findings = append(findings, Finding{
			GateID:  G7StylesDxfIntegrity,
			Message: "differential formatting (dxf) table integrity failure",
			Sample:  sample,
		})
	}
	return findings
}
