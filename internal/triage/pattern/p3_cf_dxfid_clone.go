package pattern

import (
	"fmt"

	"github.com/sheetdefect/triage/internal/triage/diff"
	"github.com/sheetdefect/triage/internal/triage/scan"
	"github.com/sheetdefect/triage/internal/triage/xmlutil"
)

// cfRuleKey is the canonical identity used to equate a <cfRule> across the
// candidate/repaired pair. The source material equates by sheet + rule
// index, which produces spurious matches if rule order differs; this
// tuple survives reordering since sqref+type+priority together identify a
// rule's intent rather than its position.
type cfRuleKey struct {
	Sqref    string
	Type     string
	Priority string
}

func classifyCfDxfIDClone(candidate, repaired *scan.PartMap, report diff.DiffReport) *Pattern {
	stylesEntry, ok := diffEntry(report, stylesPath)
	if !ok || stylesEntry.Status != diff.StatusChanged {
		return nil
	}
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

		beforeRules := cfRulesByKey(before.Bytes)
		afterRules := cfRulesByKey(after.Bytes)
		for key, beforeRule := range beforeRules {
			afterRule, ok := afterRules[key]
			if !ok || afterRule.DxfID == beforeRule.DxfID {
				continue
			}
			evidence = append(evidence, fmt.Sprintf(
				"%s sqref=%s type=%s priority=%s dxfId: %s → %s",
				path, key.Sqref, key.Type, key.Priority, beforeRule.DxfID, afterRule.DxfID))
			matches = append(matches, ByteMatch{
				Part:        path,
				Match:       string(beforeRule.Raw),
				Replacement: string(afterRule.Raw),
			})
		}
	}

	if len(evidence) == 0 {
		return nil
	}
	return &Pattern{
		Name:       CfDxfIDClone,
		Confidence: Medium,
		Evidence:   evidence,
		Hint:       "rewrite the affected cfRule@dxfId attribute(s) to match the repaired copy",
		Matches:    matches,
	}
}

type cfRuleRecord struct {
	DxfID string
	Raw   []byte
}

func cfRulesByKey(sheetXML []byte) map[cfRuleKey]cfRuleRecord {
	out := map[cfRuleKey]cfRuleRecord{}
	for _, cf := range xmlutil.FindElements(sheetXML, "conditionalFormatting") {
		sqref, _ := xmlutil.Attr(cf.Raw, "sqref")
		body := xmlutil.ElementBody(sheetXML, cf, "conditionalFormatting")
		if body == nil {
			continue
		}
		for _, rule := range xmlutil.FindElements(body, "cfRule") {
			typ, _ := xmlutil.Attr(rule.Raw, "type")
			priority, _ := xmlutil.Attr(rule.Raw, "priority")
			dxfID, ok := xmlutil.Attr(rule.Raw, "dxfId")
			if !ok {
				continue
			}
			key := cfRuleKey{Sqref: string(sqref), Type: string(typ), Priority: string(priority)}
			out[key] = cfRuleRecord{DxfID: string(dxfID), Raw: rule.Raw}
		}
	}
	return out
}
