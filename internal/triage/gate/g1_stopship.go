package gate

import (
	"fmt"
	"strings"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

// checkStopshipTokens (G1) scans every .xml part for future-function
// placeholders the target host refuses: _xlfn., _xludf., _xlpm.,
// AGGREGATE( by default (overridable via TriageConfig.StopshipTokens).
func checkStopshipTokens(m *scan.PartMap, cfg config.TriageConfig) []Finding {
	var findings []Finding

	for _, path := range m.Paths() {
		if !strings.HasSuffix(path, ".xml") {
			continue
		}
		part, _ := m.Get(path)

		var sample []map[string]any
		for _, token := range cfg.StopshipTokens {
			for _, offset := range findAllIndices(part.Bytes, []byte(token)) {
				if len(sample) >= cfg.SampleSize {
					break
				}
				sample = append(sample, map[string]any{
					"part":   path,
					"token":  token,
					"offset": offset,
				})
			}
		}

		if len(sample) > 0 {
			findings = append(findings, Finding{
				GateID:  G1StopshipTokens,
				Message: fmt.Sprintf("%s contains %d stopship token occurrence(s)", path, len(sample)),
				Sample:  sample,
			})
		}
	}

	return findings
}
