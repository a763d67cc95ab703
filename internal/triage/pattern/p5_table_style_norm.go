package pattern

import (
	"bytes"

	"github.com/sheetdefect/triage/internal/triage/diff"
	"github.com/sheetdefect/triage/internal/triage/scan"
	"github.com/sheetdefect/triage/internal/triage/xmlutil"
)

func classifyTableStyleNorm(candidate, repaired *scan.PartMap, report diff.DiffReport) *Pattern {
	var evidence []string

	for _, path := range changedPathsWithPrefix(report, "xl/tables/") {
		before, ok := candidate.Get(path)
		if !ok {
			continue
		}
		after, ok := repaired.Get(path)
		if !ok {
			continue
		}
		if !onlyTableStyleInfoDiffers(before.Bytes, after.Bytes) {
			continue
		}
		evidence = append(evidence, path+": only <tableStyleInfo> attributes differ")
	}

	if len(evidence) == 0 {
		return nil
	}
	return &Pattern{
		Name:       TableStyleNorm,
		Confidence: Low,
		Evidence:   evidence,
		Hint:       "cosmetic table style normalization; likely no functional repair needed",
	}
}

// onlyTableStyleInfoDiffers reports whether before and after become
// byte-identical once every <tableStyleInfo .../> element is stripped out,
// meaning the diff is confined entirely to that element's attributes.
func onlyTableStyleInfoDiffers(before, after []byte) bool {
	strippedBefore := stripElements(before, "tableStyleInfo")
	strippedAfter := stripElements(after, "tableStyleInfo")
	if bytes.Equal(strippedBefore, strippedAfter) {
		return !bytes.Equal(before, after)
	}
	return false
}

func stripElements(data []byte, tag string) []byte {
	elems := xmlutil.FindElements(data, tag)
	if len(elems) == 0 {
		return data
	}
	var out []byte
	last := 0
	for _, e := range elems {
		out = append(out, data[last:e.Start]...)
		last = e.End
	}
	out = append(out, data[last:]...)
	return out
}
