package gate

import (
	"testing"

	"github.com/sheetdefect/triage/internal/triagetest"
	"github.com/stretchr/testify/assert"
)

func TestCheckSharedFormulaBBoxMismatchFlags(t *testing.T) {
	entries := withEntry(triagetest.MinimalWorkbook(), "xl/worksheets/sheet1.xml",
		`<?xml version="1.0"?><worksheet xmlns="ns"><sheetData>`+
			`<row r="1"><c r="A1"><f t="shared" ref="A1:A5" si="0">SUM(B1)</f><v>1</v></c></row>`+
			`<row r="2"><c r="A2"><f t="shared" si="0"/><v>1</v></c></row>`+
			`</sheetData></worksheet>`)
	m := buildPartMap(t, entries...)

	findings := checkSharedFormulaBBoxMismatch(m, defaultCfg())
	assert.Len(t, findings, 1)
	assert.Equal(t, G6SharedFormulaBBoxMismatch, findings[0].GateID)
}

func TestCheckSharedFormulaBBoxMismatchMatches(t *testing.T) {
	entries := withEntry(triagetest.MinimalWorkbook(), "xl/worksheets/sheet1.xml",
		`<?xml version="1.0"?><worksheet xmlns="ns"><sheetData>`+
			`<row r="1"><c r="A1"><f t="shared" ref="A1:A2" si="0">SUM(B1)</f><v>1</v></c></row>`+
			`<row r="2"><c r="A2"><f t="shared" si="0"/><v>1</v></c></row>`+
			`</sheetData></worksheet>`)
	m := buildPartMap(t, entries...)

	assert.Empty(t, checkSharedFormulaBBoxMismatch(m, defaultCfg()))
}

func TestColLettersRoundTrip(t *testing.T) {
	for _, s := range []string{"A", "Z", "AA", "AZ", "BA"} {
		assert.Equal(t, s, colLetters(colOf(s)))
	}
}

func TestEnclosingRectSingle(t *testing.T) {
	assert.Equal(t, "A1", enclosingRect([]cellPos{{Col: 1, Row: 1}}))
}

func TestEnclosingRectEmpty(t *testing.T) {
	assert.Equal(t, "", enclosingRect(nil))
}
