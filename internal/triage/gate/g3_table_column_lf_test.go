package gate

import (
	"testing"

	"github.com/sheetdefect/triage/internal/triagetest"
	"github.com/stretchr/testify/assert"
)

func TestCheckTableColumnLineFeedRawByte(t *testing.T) {
	entries := append(triagetest.MinimalWorkbook(), triagetest.ZipEntry{
		Path:    "xl/tables/table1.xml",
		Content: "<?xml version=\"1.0\"?><table xmlns=\"ns\"><tableColumns count=\"1\"><tableColumn id=\"1\" name=\"Revenue\nTotal\"/></tableColumns></table>",
	})
	m := buildPartMap(t, entries...)

	findings := checkTableColumnLineFeed(m, defaultCfg())
	assert.Len(t, findings, 1)
	assert.Equal(t, G3TableColumnLineFeed, findings[0].GateID)
}

func TestCheckTableColumnLineFeedEntityEncoded(t *testing.T) {
	entries := append(triagetest.MinimalWorkbook(), triagetest.ZipEntry{
		Path:    "xl/tables/table1.xml",
		Content: `<?xml version="1.0"?><table xmlns="ns"><tableColumns count="1"><tableColumn id="1" name="Revenue&#10;Total"/></tableColumns></table>`,
	})
	m := buildPartMap(t, entries...)

	assert.Len(t, checkTableColumnLineFeed(m, defaultCfg()), 1)
}

func TestCheckTableColumnLineFeedClean(t *testing.T) {
	entries := append(triagetest.MinimalWorkbook(), triagetest.ZipEntry{
		Path:    "xl/tables/table1.xml",
		Content: `<?xml version="1.0"?><table xmlns="ns"><tableColumns count="1"><tableColumn id="1" name="Revenue"/></tableColumns></table>`,
	})
	m := buildPartMap(t, entries...)

	assert.Empty(t, checkTableColumnLineFeed(m, defaultCfg()))
}

func TestIsTablePart(t *testing.T) {
	assert.True(t, isTablePart("xl/tables/table1.xml"))
	assert.False(t, isTablePart("xl/tables/nested/table1.xml"))
	assert.False(t, isTablePart("xl/tables/table1.bin"))
}
