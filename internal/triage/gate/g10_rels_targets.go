package gate

import (
	"fmt"
	"strings"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

// checkRelationshipsMissingTargets (G10) resolves every Relationship's
// Target across all .rels parts and flags any that does not exist in the
// archive. External targets (TargetMode="External") are exempt.
func checkRelationshipsMissingTargets(m *scan.PartMap, cfg config.TriageConfig) []Finding {
	var findings []Finding

	for _, p := range m.Paths() {
		if !strings.HasSuffix(p, ".rels") {
			continue
		}
		part, _ := m.Get(p)

		var sample []map[string]any
		for _, r := range parseRelationships(part.Bytes) {
			if mode, ok := attr(r.Elem.Raw, "TargetMode"); ok && string(mode) == "External" {
				continue
			}
			resolved := resolveRelsTarget(p, r.Target)
			if _, ok := m.Get(resolved); ok {
				continue
			}
			if len(sample) >= cfg.SampleSize {
				break
			}
			sample = append(sample, map[string]any{
				"part":     p,
				"id":       r.ID,
				"target":   r.Target,
				"resolved": resolved,
				"raw":      string(r.Elem.Raw),
			})
		}

		if len(sample) > 0 {
			findings = append(findings, Finding{
				GateID:  G10RelationshipsMissingTargets,
				Message: fmt.Sprintf("%s references target(s) absent from the archive", p),
				Sample:  sample,
			})
		}
	}

	return findings
}
