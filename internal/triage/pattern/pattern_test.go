package pattern

import (
	"testing"

	"github.com/sheetdefect/triage/internal/triage/diff"
	"github.com/sheetdefect/triage/internal/triage/scan"
	"github.com/sheetdefect/triage/internal/triagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustScan(t *testing.T, entries ...triagetest.ZipEntry) *scan.PartMap {
	t.Helper()
	m, err := scan.Scan(triagetest.BuildZip(entries...))
	require.NoError(t, err)
	return m
}

func findPattern(patterns []Pattern, name Name) (Pattern, bool) {
	for _, p := range patterns {
		if p.Name == name {
			return p, true
		}
	}
	return Pattern{}, false
}

func TestClassifyCalcChainDrop(t *testing.T) {
	candidate := mustScan(t,
		triagetest.ZipEntry{Path: "xl/calcChain.xml", Content: `<calcChain><c r="A1" i="1"/></calcChain>`},
		triagetest.ZipEntry{Path: "xl/workbook.xml", Content: "<workbook/>"},
	)
	repaired := mustScan(t,
		triagetest.ZipEntry{Path: "xl/workbook.xml", Content: "<workbook/>"},
	)

	report := diff.Compute(candidate, repaired)
	patterns := Classify(candidate, repaired, report)

	p, ok := findPattern(patterns, CalcChainDrop)
	require.True(t, ok)
	assert.Equal(t, High, p.Confidence)
}

func TestClassifyDxfsInsertion(t *testing.T) {
	candidate := mustScan(t, triagetest.ZipEntry{
		Path: "xl/styles.xml", Content: `<styleSheet><dxfs count="3"><dxf/><dxf/><dxf/></dxfs></styleSheet>`,
	})
	repaired := mustScan(t, triagetest.ZipEntry{
		Path: "xl/styles.xml", Content: `<styleSheet><dxfs count="4"><dxf/><dxf/><dxf/><dxf/></dxfs></styleSheet>`,
	})

	report := diff.Compute(candidate, repaired)
	patterns := Classify(candidate, repaired, report)

	p, ok := findPattern(patterns, DxfsInsertion)
	require.True(t, ok)
	assert.Equal(t, High, p.Confidence)
	assert.Contains(t, p.Evidence[0], "3 → 4")
}

func TestClassifyCfDxfIDClone(t *testing.T) {
	candidate := mustScan(t,
		triagetest.ZipEntry{Path: "xl/styles.xml", Content: `<styleSheet><dxfs count="1"><dxf/></dxfs></styleSheet>`},
		triagetest.ZipEntry{Path: "xl/worksheets/sheet1.xml", Content: `<worksheet><conditionalFormatting sqref="A1:A10"><cfRule type="expression" dxfId="0" priority="1"/></conditionalFormatting></worksheet>`},
	)
	repaired := mustScan(t,
		triagetest.ZipEntry{Path: "xl/styles.xml", Content: `<styleSheet><dxfs count="2"><dxf/><dxf/></dxfs></styleSheet>`},
		triagetest.ZipEntry{Path: "xl/worksheets/sheet1.xml", Content: `<worksheet><conditionalFormatting sqref="A1:A10"><cfRule type="expression" dxfId="1" priority="1"/></conditionalFormatting></worksheet>`},
	)

	report := diff.Compute(candidate, repaired)
	patterns := Classify(candidate, repaired, report)

	p, ok := findPattern(patterns, CfDxfIDClone)
	require.True(t, ok)
	assert.Equal(t, Medium, p.Confidence)
	assert.Contains(t, p.Evidence[0], "dxfId: 0 → 1")
}

func TestClassifySharedStringsRebuild(t *testing.T) {
	candidate := mustScan(t, triagetest.ZipEntry{
		Path: "xl/sharedStrings.xml", Content: `<sst count="10" uniqueCount="5"><si><t>a</t></si></sst>`,
	})
	repaired := mustScan(t, triagetest.ZipEntry{
		Path: "xl/sharedStrings.xml", Content: `<sst count="12" uniqueCount="6"><si><t>a</t></si><si><t>b</t></si></sst>`,
	})

	report := diff.Compute(candidate, repaired)
	patterns := Classify(candidate, repaired, report)

	_, ok := findPattern(patterns, SharedStringsRebuild)
	assert.True(t, ok)
}

func TestClassifyTableStyleNorm(t *testing.T) {
	candidate := mustScan(t, triagetest.ZipEntry{
		Path:    "xl/tables/table1.xml",
		Content: `<table><tableColumns count="1"><tableColumn id="1" name="A"/></tableColumns><tableStyleInfo name="TableStyleLight1" showRowStripes="1"/></table>`,
	})
	repaired := mustScan(t, triagetest.ZipEntry{
		Path:    "xl/tables/table1.xml",
		Content: `<table><tableColumns count="1"><tableColumn id="1" name="A"/></tableColumns><tableStyleInfo name="TableStyleLight2" showRowStripes="0"/></table>`,
	})

	report := diff.Compute(candidate, repaired)
	patterns := Classify(candidate, repaired, report)

	_, ok := findPattern(patterns, TableStyleNorm)
	assert.True(t, ok)
}

func TestClassifyTableStyleNormDoesNotFireOnOtherDeltas(t *testing.T) {
	candidate := mustScan(t, triagetest.ZipEntry{
		Path:    "xl/tables/table1.xml",
		Content: `<table><tableColumns count="1"><tableColumn id="1" name="A"/></tableColumns><tableStyleInfo name="TableStyleLight1"/></table>`,
	})
	repaired := mustScan(t, triagetest.ZipEntry{
		Path:    "xl/tables/table1.xml",
		Content: `<table><tableColumns count="1"><tableColumn id="1" name="B"/></tableColumns><tableStyleInfo name="TableStyleLight2"/></table>`,
	})

	report := diff.Compute(candidate, repaired)
	patterns := Classify(candidate, repaired, report)

	_, ok := findPattern(patterns, TableStyleNorm)
	assert.False(t, ok)
}

func TestClassifySharedRefTrim(t *testing.T) {
	candidate := mustScan(t, triagetest.ZipEntry{
		Path:    "xl/worksheets/sheet1.xml",
		Content: `<worksheet><sheetData><row r="1"><c r="A1"><f t="shared" ref="A1:A20" si="0">SUM(B1)</f></c></row></sheetData></worksheet>`,
	})
	repaired := mustScan(t, triagetest.ZipEntry{
		Path:    "xl/worksheets/sheet1.xml",
		Content: `<worksheet><sheetData><row r="1"><c r="A1"><f t="shared" ref="A1:A12" si="0">SUM(B1)</f></c></row></sheetData></worksheet>`,
	})

	report := diff.Compute(candidate, repaired)
	patterns := Classify(candidate, repaired, report)

	p, ok := findPattern(patterns, SharedRefTrim)
	require.True(t, ok)
	assert.Contains(t, p.Evidence[0], `"A1:A20" → "A1:A12"`)
}

func TestClassifyRelsCleanup(t *testing.T) {
	candidate := mustScan(t, triagetest.ZipEntry{
		Path:    "xl/_rels/workbook.xml.rels",
		Content: `<Relationships><Relationship Id="rId1" Type="worksheet" Target="worksheets/sheet1.xml"/><Relationship Id="rId2" Type="x" Target="orphan.xml"/></Relationships>`,
	})
	repaired := mustScan(t, triagetest.ZipEntry{
		Path:    "xl/_rels/workbook.xml.rels",
		Content: `<Relationships><Relationship Id="rId1" Type="worksheet" Target="worksheets/sheet1.xml"/></Relationships>`,
	})

	report := diff.Compute(candidate, repaired)
	patterns := Classify(candidate, repaired, report)

	p, ok := findPattern(patterns, RelsCleanup)
	require.True(t, ok)
	assert.Equal(t, High, p.Confidence)
}

func TestClassifyEmptyDiffYieldsNoPatterns(t *testing.T) {
	entries := triagetest.MinimalWorkbook()
	candidate := mustScan(t, entries...)
	repaired := mustScan(t, entries...)

	report := diff.Compute(candidate, repaired)
	patterns := Classify(candidate, repaired, report)
	assert.Empty(t, patterns)
}
