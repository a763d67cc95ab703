package gate

import (
	"testing"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/scan"
	"github.com/sheetdefect/triage/internal/triagetest"
	"github.com/stretchr/testify/require"
)

func buildPartMap(t *testing.T, entries ...triagetest.ZipEntry) *scan.PartMap {
	t.Helper()
	m, err := scan.Scan(triagetest.BuildZip(entries...))
	require.NoError(t, err)
	return m
}

func defaultCfg() config.TriageConfig {
	return config.Default()
}

func withEntry(base []triagetest.ZipEntry, path, content string) []triagetest.ZipEntry {
	out := make([]triagetest.ZipEntry, 0, len(base))
	replaced := false
	for _, e := range base {
		if e.Path == path {
			out = append(out, triagetest.ZipEntry{Path: path, Content: content})
			replaced = true
			continue
		}
		out = append(out, e)
	}
	if !replaced {
		out = append(out, triagetest.ZipEntry{Path: path, Content: content})
	}
	return out
}
