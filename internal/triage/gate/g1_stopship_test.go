package gate

import (
	"testing"

	"github.com/sheetdefect/triage/internal/triagetest"
	"github.com/stretchr/testify/assert"
)

func TestCheckStopshipTokensFindsToken(t *testing.T) {
	entries := withEntry(triagetest.MinimalWorkbook(), "xl/worksheets/sheet1.xml",
		`<?xml version="1.0"?><worksheet xmlns="ns"><sheetData><row r="1"><c r="A1"><f>_xlfn.STDEV.S(A2:A5)</f><v>1</v></c></row></sheetData></worksheet>`)
	m := buildPartMap(t, entries...)

	findings := checkStopshipTokens(m, defaultCfg())
	assert.Len(t, findings, 1)
	assert.Equal(t, G1StopshipTokens, findings[0].GateID)
}

func TestCheckStopshipTokensClean(t *testing.T) {
	m := buildPartMap(t, triagetest.MinimalWorkbook()...)
	assert.Empty(t, checkStopshipTokens(m, defaultCfg()))
}

func TestCheckStopshipTokensRespectsCustomList(t *testing.T) {
	entries := withEntry(triagetest.MinimalWorkbook(), "xl/worksheets/sheet1.xml",
		`<?xml version="1.0"?><worksheet xmlns="ns"><sheetData><row r="1"><c r="A1"><f>CUSTOMFN(A1)</f></c></row></sheetData></worksheet>`)
	m := buildPartMap(t, entries...)

	cfg := defaultCfg()
	cfg.StopshipTokens = []string{"CUSTOMFN("}
	findings := checkStopshipTokens(m, cfg)
	assert.Len(t, findings, 1)
}
