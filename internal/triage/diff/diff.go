// Package diff computes a part-by-part comparison between two PartMaps: a
// candidate archive and its host-repaired counterpart.
package diff

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/sheetdefect/triage/internal/triage/scan"
)

// Status is one part's classification relative to the other archive.
type Status string

const (
	StatusAdded     Status = "added"
	StatusRemoved   Status = "removed"
	StatusChanged   Status = "changed"
	StatusUnchanged Status = "unchanged"
)

// PartDiff is one path's comparison result.
type PartDiff struct {
	Path        string
	Status      Status
	SizeBefore  int
	SizeAfter   int
	UnifiedDiff string // only populated for StatusChanged
}

// DiffReport is the full comparison between a candidate and repaired
// PartMap, ordered by path.
type DiffReport struct {
	Entries []PartDiff
	Summary map[Status]int
}

// Compute diffs candidate against repaired. The path set is the union of
// both PartMaps' keys, sorted for deterministic output.
func Compute(candidate, repaired *scan.PartMap) DiffReport {
	pathSet := make(map[string]struct{})
	for _, p := range candidate.Paths() {
		pathSet[p] = struct{}{}
	}
	for _, p := range repaired.Paths() {
		pathSet[p] = struct{}{}
	}

	paths := make([]string, 0, len(pathSet))
	for p := range pathSet {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	summary := map[Status]int{
		StatusAdded:     0,
		StatusRemoved:   0,
		StatusChanged:   0,
		StatusUnchanged: 0,
	}
	entries := make([]PartDiff, 0, len(paths))

	for _, p := range paths {
		before, hasBefore := candidate.Get(p)
		after, hasAfter := repaired.Get(p)

		switch {
		case !hasBefore && hasAfter:
			entries = append(entries, PartDiff{Path: p, Status: StatusAdded, SizeAfter: len(after.Bytes)})
			summary[StatusAdded]++
		case hasBefore && !hasAfter:
			entries = append(entries, PartDiff{Path: p, Status: StatusRemoved, SizeBefore: len(before.Bytes)})
			summary[StatusRemoved]++
		case before.Digest == after.Digest:
			entries = append(entries, PartDiff{
				Path: p, Status: StatusUnchanged,
				SizeBefore: len(before.Bytes), SizeAfter: len(after.Bytes),
			})
			summary[StatusUnchanged]++
		default:
			entries = append(entries, PartDiff{
				Path:        p,
				Status:      StatusChanged,
				SizeBefore:  len(before.Bytes),
				SizeAfter:   len(after.Bytes),
				UnifiedDiff: unifiedDiff(p, before.Bytes, after.Bytes),
			})
			summary[StatusChanged]++
		}
	}

	return DiffReport{Entries: entries, Summary: summary}
}

// unifiedDiff decodes both byte slices as UTF-8, replacing invalid
// sequences with U+FFFD, and computes a line diff with 3 lines of
// context.
func unifiedDiff(path string, before, after []byte) string {
	a := strings.ToValidUTF8(string(before), "�")
	b := strings.ToValidUTF8(string(after), "�")

	ud := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	}
	text, err := difflib.GetUnifiedDiffString(ud)
	if err != nil {
		return fmt.Sprintf("diff error: %v", err)
	}
	return text
}
