package gate

import (
	"path"
	"strings"

	"github.com/sheetdefect/triage/internal/triage/scan"
)

// relationship is one <Relationship> entry from a .rels part.
type relationship struct {
	ID     string
	Type   string
	Target string
	Elem   element
}

// parseRelationships extracts every <Relationship> element from a .rels
// part's raw bytes.
func parseRelationships(data []byte) []relationship {
	elems := findElements(data, "Relationship")
	out := make([]relationship, 0, len(elems))
	for _, e := range elems {
		id, _ := attr(e.Raw, "Id")
		typ, _ := attr(e.Raw, "Type")
		target, _ := attr(e.Raw, "Target")
		out = append(out, relationship{ID: string(id), Type: string(typ), Target: string(target), Elem: e})
	}
	return out
}

// resolveRelsTarget resolves a Relationship's Target attribute, which is
// relative to the directory containing the *part* the .rels file
// describes (not the .rels file's own directory) — e.g.
// "xl/_rels/workbook.xml.rels" describes targets relative to "xl/".
func resolveRelsTarget(relsPath, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	base := path.Dir(path.Dir(relsPath)) // xl/_rels/workbook.xml.rels -> xl
	return path.Clean(path.Join(base, target))
}

// workbookSheets maps a workbook's declared sheetId to its worksheet part
// path, by joining xl/workbook.xml's <sheet sheetId r:id> entries against
// xl/_rels/workbook.xml.rels.
func workbookSheets(m *scan.PartMap) map[string]string {
	wb, ok := m.Get("xl/workbook.xml")
	if !ok {
		return nil
	}
	rels, ok := m.Get("xl/_rels/workbook.xml.rels")
	if !ok {
		return nil
	}

	ridToTarget := map[string]string{}
	for _, r := range parseRelationships(rels.Bytes) {
		ridToTarget[r.ID] = resolveRelsTarget("xl/_rels/workbook.xml.rels", r.Target)
	}

	sheetIDToPath := map[string]string{}
	for _, e := range findElements(wb.Bytes, "sheet") {
		sheetID, ok := attr(e.Raw, "sheetId")
		if !ok {
			continue
		}
		rid, ok := attr(e.Raw, "r:id")
		if !ok {
			rid, ok = attr(e.Raw, "id")
			if !ok {
				continue
			}
		}
		if target, ok := ridToTarget[string(rid)]; ok {
			sheetIDToPath[string(sheetID)] = target
		}
	}
	return sheetIDToPath
}
