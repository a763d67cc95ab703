package gate

import (
	"testing"

	"github.com/sheetdefect/triage/internal/triagetest"
	"github.com/stretchr/testify/assert"
)

func TestCheckRelationshipsMissingTargetsFlagsMissing(t *testing.T) {
	entries := withEntry(triagetest.MinimalWorkbook(), "xl/_rels/workbook.xml.rels",
		`<?xml version="1.0"?><Relationships xmlns="ns"><Relationship Id="rId1" Type="worksheet" Target="worksheets/sheet1.xml"/><Relationship Id="rId2" Type="theme" Target="theme/theme1.xml"/></Relationships>`)
	m := buildPartMap(t, entries...)

	findings := checkRelationshipsMissingTargets(m, defaultCfg())
	assert.Len(t, findings, 1)
	assert.Equal(t, G10RelationshipsMissingTargets, findings[0].GateID)
}

func TestCheckRelationshipsMissingTargetsIgnoresExternal(t *testing.T) {
	entries := withEntry(triagetest.MinimalWorkbook(), "xl/_rels/workbook.xml.rels",
		`<?xml version="1.0"?><Relationships xmlns="ns"><Relationship Id="rId1" Type="worksheet" Target="worksheets/sheet1.xml"/><Relationship Id="rId2" Type="hyperlink" Target="https://example.com" TargetMode="External"/></Relationships>`)
	m := buildPartMap(t, entries...)

	assert.Empty(t, checkRelationshipsMissingTargets(m, defaultCfg()))
}

func TestCheckRelationshipsMissingTargetsClean(t *testing.T) {
	m := buildPartMap(t, triagetest.MinimalWorkbook()...)
	assert.Empty(t, checkRelationshipsMissingTargets(m, defaultCfg()))
}

func TestResolveRelsTarget(t *testing.T) {
	assert.Equal(t, "xl/worksheets/sheet1.xml", resolveRelsTarget("xl/_rels/workbook.xml.rels", "worksheets/sheet1.xml"))
	assert.Equal(t, "xl/worksheets/sheet1.xml", resolveRelsTarget("xl/_rels/workbook.xml.rels", "/xl/worksheets/sheet1.xml"))
}
