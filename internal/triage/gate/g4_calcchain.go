package gate

import (
	"bytes"
	"fmt"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

// checkCalcChainInvalid (G4) resolves each xl/calcChain.xml entry's sheet
// index to a worksheet part and verifies the referenced cell actually
// carries a formula.
func checkCalcChainInvalid(m *scan.PartMap, cfg config.TriageConfig) []Finding {
	calc, ok := m.Get("xl/calcChain.xml")
	if !ok {
		return nil
	}

	sheetIDToPath := workbookSheets(m)
	entries := findElements(calc.Bytes, "c")

	var sample []map[string]any
	for _, e := range entries {
		if len(sample) >= cfg.SampleSize {
			break
		}
		ref, ok := attr(e.Raw, "r")
		if !ok {
			continue
		}
		sheetIdx, ok := attr(e.Raw, "i")
		if !ok {
			continue
		}

		sheetPath, ok := sheetIDToPath[string(sheetIdx)]
		if !ok {
			sample = append(sample, map[string]any{
				"ref":        string(ref),
				"sheetIndex": string(sheetIdx),
				"reason":     "sheet index does not resolve to a worksheet part",
			})
			continue
		}

		sheet, ok := m.Get(sheetPath)
		if !ok {
			sample = append(sample, map[string]any{
				"ref":        string(ref),
				"sheetIndex": string(sheetIdx),
				"sheet":      sheetPath,
				"reason":     "resolved worksheet part is absent from the archive",
			})
			continue
		}

		if !cellHasFormula(sheet.Bytes, string(ref)) {
			sample = append(sample, map[string]any{
				"ref":        string(ref),
				"sheetIndex": string(sheetIdx),
				"sheet":      sheetPath,
				"reason":     "referenced cell is missing or carries no formula",
			})
		}
	}

	if len(sample) == 0 {
		return nil
	}
	return []Finding{{
		GateID:  G4CalcChainInvalid,
		Message: fmt.Sprintf("xl/calcChain.xml has %d entr(ies) pointing to missing or formula-less cells", len(sample)),
		Sample:  sample,
	}}
}

// cellHasFormula reports whether sheetXML contains a cell at reference ref
// whose content includes a formula element.
func cellHasFormula(sheetXML []byte, ref string) bool {
	for _, c := range scanCells(sheetXML) {
		r, ok := attr(c.OpenTag, "r")
		if !ok || string(r) != ref {
			continue
		}
		return bytes.Contains(c.Inner, []byte("<f"))
	}
	return false
}
