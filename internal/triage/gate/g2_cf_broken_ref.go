package gate

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

// checkCondFormatBrokenRef (G2) locates <cfRule> blocks in worksheet parts
// and flags any formula text containing the literal "#REF!".
func checkCondFormatBrokenRef(m *scan.PartMap, cfg config.TriageConfig) []Finding {
	var findings []Finding

	for _, path := range m.Paths() {
		if !isWorksheetPart(path) {
			continue
		}
		part, _ := m.Get(path)

		rules := findElements(part.Bytes, "cfRule")
		var sample []map[string]any
		for idx, rule := range rules {
			body := cfRuleBody(part.Bytes, rule)
			if body == nil {
				continue
			}
			if bytes.Contains(body, []byte("#REF!")) {
				if len(sample) >= cfg.SampleSize {
					break
				}
				sample = append(sample, map[string]any{
					"part":      path,
					"ruleIndex": idx,
					"formula":   excerpt(body, 80),
				})
			}
		}

		if len(sample) > 0 {
			findings = append(findings, Finding{
				GateID:  G2CondFormatBrokenRef,
				Message: fmt.Sprintf("%s has conditional format rule(s) referencing #REF!", path),
				Sample:  sample,
			})
		}
	}

	return findings
}

// cfRuleBody returns the text content between a non-self-closing <cfRule>
// open tag and its matching </cfRule>, or nil for a self-closing rule or
// one whose close tag cannot be located.
func cfRuleBody(data []byte, e element) []byte {
	if bytes.HasSuffix(e.Raw, []byte("/>")) {
		return nil
	}
	closeIdx := bytes.Index(data[e.End:], []byte("</cfRule>"))
	if closeIdx == -1 {
		return nil
	}
	return data[e.End : e.End+closeIdx]
}

func isWorksheetPart(path string) bool {
	return strings.HasPrefix(path, "xl/worksheets/") && strings.HasSuffix(path, ".xml")
}

func excerpt(b []byte, max int) string {
	s := string(b)
	if len(s) > max {
		return s[:max] + "…"
	}
	return s
}
