package gate

import (
	"fmt"
	"unicode/utf8"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

// isIllegalControlRune reports whether r falls in the XML 1.0 illegal
// control range U+0000-U+001F. Tab, LF and CR are valid in XML 1.0 text
// and attribute content and are excluded. DEL (U+007F) and the C1 control
// range (U+0080-U+009F) are legal XML content and are not flagged here,
// unlike the broader unicode.Cc category.
func isIllegalControlRune(r rune) bool {
	switch r {
	case '\t', '\n', '\r':
		return false
	}
	return r >= 0x00 && r <= 0x1F
}

// checkIllegalControlChars (G9) scans every XML part's raw bytes for
// control code points outside the tab/LF/CR exceptions XML 1.0 permits.
func checkIllegalControlChars(m *scan.PartMap, cfg config.TriageConfig) []Finding {
	var findings []Finding

	for _, p := range m.Paths() {
		part, ok := m.Get(p)
		if !ok || !isXMLPart(p) {
			continue
		}

		var sample []map[string]any
		data := part.Bytes
		for i := 0; i < len(data); {
			r, size := utf8.DecodeRune(data[i:])
			if isIllegalControlRune(r) {
				if len(sample) >= cfg.SampleSize {
					break
				}
				sample = append(sample, map[string]any{
					"part":    p,
					"offset":  i,
					"byte":    fmt.Sprintf("0x%02X", data[i]),
					"excerpt": excerpt(data[max(0, i-16):min(len(data), i+16)], 32),
				})
			}
			i += size
		}

		if len(sample) > 0 {
			findings = append(findings, Finding{
				GateID:  G9IllegalControlChars,
				Message: fmt.Sprintf("%s contains illegal control character(s)", p),
				Sample:  sample,
			})
		}
	}

	return findings
}

func isXMLPart(p string) bool {
	return len(p) > 4 && p[len(p)-4:] == ".xml"
}
