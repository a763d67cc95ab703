package gate

import (
	"testing"

	"github.com/sheetdefect/triage/internal/triagetest"
	"github.com/stretchr/testify/assert"
)

func TestCheckIllegalControlCharsFlagsNullByte(t *testing.T) {
	entries := withEntry(triagetest.MinimalWorkbook(), "xl/worksheets/sheet1.xml",
		"<?xml version=\"1.0\"?><worksheet xmlns=\"ns\"><sheetData><row r=\"1\"><c r=\"A1\"><v>\x00bad</v></c></row></sheetData></worksheet>")
	m := buildPartMap(t, entries...)

	findings := checkIllegalControlChars(m, defaultCfg())
	assert.Len(t, findings, 1)
	assert.Equal(t, G9IllegalControlChars, findings[0].GateID)
}

func TestCheckIllegalControlCharsAllowsTabAndNewline(t *testing.T) {
	entries := withEntry(triagetest.MinimalWorkbook(), "xl/worksheets/sheet1.xml",
		"<?xml version=\"1.0\"?><worksheet xmlns=\"ns\"><sheetData><row r=\"1\"><c r=\"A1\"><v>line1\nline2\tend</v></c></row></sheetData></worksheet>")
	m := buildPartMap(t, entries...)

	assert.Empty(t, checkIllegalControlChars(m, defaultCfg()))
}

func TestCheckIllegalControlCharsClean(t *testing.T) {
	m := buildPartMap(t, triagetest.MinimalWorkbook()...)
	assert.Empty(t, checkIllegalControlChars(m, defaultCfg()))
}

func TestIsIllegalControlRune(t *testing.T) {
	assert.False(t, isIllegalControlRune('\t'))
	assert.False(t, isIllegalControlRune('\n'))
	assert.False(t, isIllegalControlRune('\r'))
	assert.False(t, isIllegalControlRune('A'))
	assert.True(t, isIllegalControlRune('\x00'))
	assert.True(t, isIllegalControlRune('\x0B'))
}
