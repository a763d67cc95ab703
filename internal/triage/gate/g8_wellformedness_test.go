package gate

import (
	"testing"

	"github.com/sheetdefect/triage/internal/triagetest"
	"github.com/stretchr/testify/assert"
)

func TestCheckXMLWellFormednessFlagsUnclosedTag(t *testing.T) {
	entries := withEntry(triagetest.MinimalWorkbook(), "xl/worksheets/sheet1.xml",
		`<?xml version="1.0"?><worksheet xmlns="ns"><sheetData><row r="1"><c r="A1"><v>1</v></c></row>`)
	m := buildPartMap(t, entries...)

	findings := checkXMLWellFormedness(m, defaultCfg())
	assert.Len(t, findings, 1)
	assert.Equal(t, G8XMLWellFormedness, findings[0].GateID)
}

func TestCheckXMLWellFormednessFlagsMismatchedTag(t *testing.T) {
	entries := withEntry(triagetest.MinimalWorkbook(), "xl/worksheets/sheet1.xml",
		`<?xml version="1.0"?><worksheet xmlns="ns"><sheetData></worksheet></sheetData>`)
	m := buildPartMap(t, entries...)

	findings := checkXMLWellFormedness(m, defaultCfg())
	assert.Len(t, findings, 1)
}

func TestCheckXMLWellFormednessClean(t *testing.T) {
	m := buildPartMap(t, triagetest.MinimalWorkbook()...)
	assert.Empty(t, checkXMLWellFormedness(m, defaultCfg()))
}
