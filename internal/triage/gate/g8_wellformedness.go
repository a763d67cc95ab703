package gate

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

// checkXMLWellFormedness (G8) is the one check permitted to run a
// tolerant encoding/xml.Decoder pass, since it only classifies parts as
// well-formed or not and never needs byte-exact match text back out.
func checkXMLWellFormedness(m *scan.PartMap, cfg config.TriageConfig) []Finding {
	var sample []map[string]any

	for _, p := range m.Paths() {
		if !strings.HasSuffix(p, ".xml") {
			continue
		}
		if len(sample) >= cfg.SampleSize {
			break
		}
		part, _ := m.Get(p)

		dec := xml.NewDecoder(bytes.NewReader(part.Bytes))
		dec.Strict = true
		var parseErr error
		for {
			_, err := dec.Token()
			if err == io.EOF {
				break
			}
			if err != nil {
				parseErr = err
				break
			}
		}
		if parseErr != nil {
			line, column := dec.InputPos()
			sample = append(sample, map[string]any{
				"part":   p,
				"line":   line,
				"column": column,
				"reason": parseErr.Error(),
			})
		}
	}

	if len(sample) == 0 {
		return nil
	}
	return []Finding{{
		GateID:  G8XMLWellFormedness,
		Message: fmt.Sprintf("%d XML part(s) fail tolerant well-formedness parsing", len(sample)),
		Sample:  sample,
	}}
}
