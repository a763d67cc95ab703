package gate

import (
	"bytes"
	"fmt"
	"path"
	"strings"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

// checkTableColumnLineFeed (G3) finds <tableColumn> elements in
// xl/tables/*.xml whose name attribute contains a line feed, either a raw
// U+000A byte or the numeric character reference "&#10;".
func checkTableColumnLineFeed(m *scan.PartMap, cfg config.TriageConfig) []Finding {
	var findings []Finding

	for _, p := range m.Paths() {
		if !isTablePart(p) {
			continue
		}
		part, _ := m.Get(p)

		cols := findElements(part.Bytes, "tableColumn")
		var sample []map[string]any
		for _, col := range cols {
			name, ok := attr(col.Raw, "name")
			if !ok {
				continue
			}
			if bytes.ContainsRune(name, '\n') || bytes.Contains(name, []byte("&#10;")) {
				if len(sample) >= cfg.SampleSize {
					break
				}
				id, _ := attr(col.Raw, "id")
				sample = append(sample, map[string]any{
					"part":  p,
					"id":    string(id),
					"name":  string(name),
					"match": string(col.Raw),
				})
			}
		}

		if len(sample) > 0 {
			findings = append(findings, Finding{
				GateID:  G3TableColumnLineFeed,
				Message: fmt.Sprintf("%s has table column name(s) containing a line feed", p),
				Sample:  sample,
			})
		}
	}

	return findings
}

func isTablePart(p string) bool {
	dir, file := path.Split(p)
	return dir == "xl/tables/" && strings.HasSuffix(file, ".xml")
}
