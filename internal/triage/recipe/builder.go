package recipe

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sheetdefect/triage/internal/triage/gate"
	"github.com/sheetdefect/triage/internal/triage/pattern"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

type dedupeKey struct {
	Part      string
	Operation Operation
	Match     string
}

// Build assembles gate findings and classified patterns into one ordered
// PatchRecipe. report and patterns may be nil/empty independently — a
// gate-only or diff-only caller still gets a valid, possibly empty,
// recipe.
func Build(sourceFile string, candidate *scan.PartMap, report gate.Report, patterns []pattern.Pattern, version string) PatchRecipe {
	var ops []PatchOp
	seen := map[dedupeKey]bool{}

	add := func(op PatchOp) {
		key := dedupeKey{Part: op.Part, Operation: op.Operation, Match: op.Match}
		if seen[key] {
			return
		}
		seen[key] = true
		op.ID = uuid.NewString()
		ops = append(ops, op)
	}

	findPattern := func(name pattern.Name) (pattern.Pattern, bool) {
		for _, p := range patterns {
			if p.Name == name {
				return p, true
			}
		}
		return pattern.Pattern{}, false
	}

	// Rule 1: CALCCHAIN_DROP or G4 CalcChainInvalid -> delete_part.
	_, dropFires := findPattern(pattern.CalcChainDrop)
	g4Fires := len(report.Findings[gate.G4CalcChainInvalid]) > 0
	if dropFires || g4Fires {
		add(PatchOp{
			Part:        "xl/calcChain.xml",
			Operation:   OpDeletePart,
			Description: "remove invalid calculation chain",
		})
	}

	// Rule 2: G7 dxfs declared-count mismatch -> literal_replace on
	// xl/styles.xml.
	for _, f := range report.Findings[gate.G7StylesDxfIntegrity] {
		for _, s := range f.Sample {
			declared, ok1 := s["declaredCount"]
			actual, ok2 := s["actualCount"]
			if !ok1 || !ok2 {
				continue
			}
			add(PatchOp{
				Part:        "xl/styles.xml",
				Operation:   OpLiteralReplace,
				Description: "correct dxfs declared count to match actual dxf children",
				Match:       fmt.Sprintf(`count="%v"`, declared),
				Replacement: fmt.Sprintf(`count="%v"`, actual),
				Occurrence:  IntPtr(1),
			})
		}
	}

	// Rule 3: DXFS_INSERTION -> append_block placeholder, since the exact
	// inserted <dxf> block cannot be inferred from a count mismatch alone.
	if _, ok := findPattern(pattern.DxfsInsertion); ok {
		add(PatchOp{
			Part:        "xl/styles.xml",
			Operation:   OpAppendBlock,
			Description: "insert the dxf block(s) the repaired copy added",
			Anchor:      "</dxfs>",
			Block:       PlaceholderBlock,
			Position:    PositionBefore,
		})
	}

	// Rule 4: G3 line-feed table column names.
	for _, f := range report.Findings[gate.G3TableColumnLineFeed] {
		for _, s := range f.Sample {
			part, _ := s["part"].(string)
			raw, ok := s["match"].(string)
			if !ok || part == "" {
				continue
			}
			stripped := strings.NewReplacer("\n", "", "&#10;", "").Replace(raw)
			if stripped == raw {
				continue
			}
			add(PatchOp{
				Part:        part,
				Operation:   OpLiteralReplace,
				Description: "strip line feed from table column name",
				Match:       raw,
				Replacement: stripped,
				Occurrence:  IntPtr(1),
			})
		}
	}

	// Rule 5: G10 relationships with a missing target.
	for _, f := range report.Findings[gate.G10RelationshipsMissingTargets] {
		for _, s := range f.Sample {
			part, _ := s["part"].(string)
			raw, ok := s["raw"].(string)
			if !ok || part == "" {
				continue
			}
			add(PatchOp{
				Part:        part,
				Operation:   OpLiteralReplace,
				Description: "remove relationship with a missing target",
				Match:       raw,
				Replacement: "",
				Occurrence:  IntPtr(1),
			})
		}
	}

	// Rule 6: SHARED_REF_TRIM and CF_DXFID_CLONE -> literal_replace using
	// the precise byte strings the classifier already extracted from the
	// diff.
	for _, name := range []pattern.Name{pattern.SharedRefTrim, pattern.CfDxfIDClone} {
		p, ok := findPattern(name)
		if !ok {
			continue
		}
		for _, m := range p.Matches {
			add(PatchOp{
				Part:        m.Part,
				Operation:   OpLiteralReplace,
				Description: string(name) + " correction",
				Match:       m.Match,
				Replacement: m.Replacement,
				Occurrence:  IntPtr(1),
			})
		}
	}

	// Rule 7: RELS_CLEANUP -> set_part with the repaired .rels content
	// verbatim.
	if p, ok := findPattern(pattern.RelsCleanup); ok {
		for _, m := range p.Matches {
			add(PatchOp{
				Part:        m.Part,
				Operation:   OpSetPart,
				Description: "replace relationships part with the repaired copy verbatim",
				Content:     m.Replacement,
			})
		}
	}

	return PatchRecipe{
		SchemaVersion: SchemaVersion,
		ID:            uuid.NewString(),
		Created:       time.Now().UTC().Format(time.RFC3339),
		SourceFile:    sourceFile,
		Version:       version,
		Patches:       ops,
	}
}
