package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/diff"
	"github.com/sheetdefect/triage/internal/triage/recipe"
	"github.com/sheetdefect/triage/internal/triagetest"
)

func TestRunOnIdenticalArchivesYieldsEmptyDiffAndNoPatterns(t *testing.T) {
	data := triagetest.BuildZip(triagetest.MinimalWorkbook()...)

	result, err := Run(context.Background(), "candidate.xlsx", data, data, "1", config.Default())
	require.NoError(t, err)

	assert.Empty(t, result.Patterns)
	assert.Equal(t, len(triagetest.MinimalWorkbook()), result.DiffReport.Summary[diff.StatusUnchanged])
	assert.Equal(t, recipe.SchemaVersion, result.Recipe.SchemaVersion)
	assert.Equal(t, "candidate.xlsx", result.Recipe.SourceFile)
}

func TestRunSurfacesCalcChainDropAsADeletePartOp(t *testing.T) {
	candidateEntries := append(triagetest.MinimalWorkbook(), triagetest.ZipEntry{
		Path: "xl/calcChain.xml", Content: `<?xml version="1.0"?><calcChain xmlns="ns"><c r="A1" i="1"/></calcChain>`,
	})
	candidate := triagetest.BuildZip(candidateEntries...)
	repaired := triagetest.BuildZip(triagetest.MinimalWorkbook()...)

	result, err := Run(context.Background(), "candidate.xlsx", candidate, repaired, "1", config.Default())
	require.NoError(t, err)

	require.Len(t, result.Recipe.Patches, 1)
	assert.Equal(t, recipe.OpDeletePart, result.Recipe.Patches[0].Operation)
	assert.Equal(t, "xl/calcChain.xml", result.Recipe.Patches[0].Part)
}

func TestRunReturnsArchiveErrorForMalformedCandidate(t *testing.T) {
	repaired := triagetest.BuildZip(triagetest.MinimalWorkbook()...)

	_, err := Run(context.Background(), "candidate.xlsx", []byte("not a zip"), repaired, "1", config.Default())
	require.Error(t, err)
}
