package pattern

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/sheetdefect/triage/internal/triage/diff"
	"github.com/sheetdefect/triage/internal/triage/scan"
	"github.com/sheetdefect/triage/internal/triage/xmlutil"
)

var refRowRE = regexp.MustCompile(`^[A-Z]+(\d+)$`)

func classifySharedRefTrim(candidate, repaired *scan.PartMap, report diff.DiffReport) *Pattern {
	if !anyWorksheetChanged(report) {
		return nil
	}

	var evidence []string
	var matches []ByteMatch
	for _, path := range changedPathsWithPrefix(report, "xl/worksheets/") {
		before, ok := candidate.Get(path)
		if !ok {
			continue
		}
		after, ok := repaired.Get(path)
		if !ok {
			continue
		}

		beforeRefs := sharedRefsBySI(before.Bytes)
		afterRefs := sharedRefsBySI(after.Bytes)
		for si, beforeRef := range beforeRefs {
			afterRef, ok := afterRefs[si]
			if !ok || afterRef == beforeRef {
				continue
			}
			beforeSpan, ok1 := rowSpan(beforeRef)
			afterSpan, ok2 := rowSpan(afterRef)
			if !ok1 || !ok2 || afterSpan >= beforeSpan {
				continue
			}
			evidence = append(evidence, fmt.Sprintf("%s si=%s ref: %q → %q", path, si, beforeRef, afterRef))
			matches = append(matches, ByteMatch{
				Part:        path,
				Match:       fmt.Sprintf(`ref="%s"`, beforeRef),
				Replacement: fmt.Sprintf(`ref="%s"`, afterRef),
			})
		}
	}

	if len(evidence) == 0 {
		return nil
	}
	return &Pattern{
		Name:       SharedRefTrim,
		Confidence: Medium,
		Evidence:   evidence,
		Hint:       "shrink the shared formula's ref rectangle to match the repaired copy",
		Matches:    matches,
	}
}

func sharedRefsBySI(sheetXML []byte) map[string]string {
	out := map[string]string{}
	for _, f := range xmlutil.FindElements(sheetXML, "f") {
		t, _ := xmlutil.Attr(f.Raw, "t")
		if string(t) != "shared" {
			continue
		}
		si, ok := xmlutil.Attr(f.Raw, "si")
		if !ok {
			continue
		}
		ref, ok := xmlutil.Attr(f.Raw, "ref")
		if !ok {
			continue
		}
		out[string(si)] = string(ref)
	}
	return out
}

func rowSpan(ref string) (int, bool) {
	parts := []string{ref}
	for i, c := range ref {
		if c == ':' {
			parts = []string{ref[:i], ref[i+1:]}
			break
		}
	}
	if len(parts) == 1 {
		row, ok := refRow(parts[0])
		if !ok {
			return 0, false
		}
		return row, true
	}
	r1, ok1 := refRow(parts[0])
	r2, ok2 := refRow(parts[1])
	if !ok1 || !ok2 {
		return 0, false
	}
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	return r2 - r1 + 1, true
}

func refRow(ref string) (int, bool) {
	m := refRowRE.FindStringSubmatch(ref)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
