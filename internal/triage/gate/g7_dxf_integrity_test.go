package gate

import (
	"testing"

	"github.com/sheetdefect/triage/internal/triagetest"
	"github.com/stretchr/testify/assert"
)

func TestCheckStylesDxfIntegrityCountMismatch(t *testing.T) {
	entries := append(triagetest.MinimalWorkbook(), triagetest.ZipEntry{
		Path:    "xl/styles.xml",
		Content: `<?xml version="1.0"?><styleSheet xmlns="ns"><dxfs count="2"><dxf/></dxfs></styleSheet>`,
	})
	m := buildPartMap(t, entries...)

	findings := checkStylesDxfIntegrity(m, defaultCfg())
	assert.Len(t, findings, 1)
	assert.Equal(t, G7StylesDxfIntegrity, findings[0].GateID)
}

func TestCheckStylesDxfIntegrityDxfIdOutOfRange(t *testing.T) {
	entries := append(triagetest.MinimalWorkbook(), triagetest.ZipEntry{
		Path:    "xl/styles.xml",
		Content: `<?xml version="1.0"?><styleSheet xmlns="ns"><dxfs count="1"><dxf/></dxfs></styleSheet>`,
	})
	entries = withEntry(entries, "xl/worksheets/sheet1.xml",
		`<?xml version="1.0"?><worksheet xmlns="ns"><conditionalFormatting sqref="A1"><cfRule type="expression" dxfId="5" priority="1"><formula>A1&gt;1</formula></cfRule></conditionalFormatting></worksheet>`)
	m := buildPartMap(t, entries...)

	findings := checkStylesDxfIntegrity(m, defaultCfg())
	assert.Len(t, findings, 1)
}

func TestCheckStylesDxfIntegrityClean(t *testing.T) {
	entries := append(triagetest.MinimalWorkbook(), triagetest.ZipEntry{
		Path:    "xl/styles.xml",
		Content: `<?xml version="1.0"?><styleSheet xmlns="ns"><dxfs count="1"><dxf/></dxfs></styleSheet>`,
	})
	entries = withEntry(entries, "xl/worksheets/sheet1.xml",
		`<?xml version="1.0"?><worksheet xmlns="ns"><conditionalFormatting sqref="A1"><cfRule type="expression" dxfId="0" priority="1"><formula>A1&gt;1</formula></cfRule></conditionalFormatting></worksheet>`)
	m := buildPartMap(t, entries...)

	assert.Empty(t, checkStylesDxfIntegrity(m, defaultCfg()))
}

func TestCheckStylesDxfIntegrityNoStylesPart(t *testing.T) {
	m := buildPartMap(t, triagetest.MinimalWorkbook()...)
	assert.Empty(t, checkStylesDxfIntegrity(m, defaultCfg()))
}
