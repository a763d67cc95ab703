// Package gate implements the ten hazard checks ("gates") that look for
// known defect fingerprints in an OOXML workbook's PartMap.
// Each gate is a deterministic, order-independent predicate; none raises
// on malformed input — a check that cannot run on a given part emits a
// Finding describing the impediment instead.
package gate

// ID identifies one of the ten gate checks.
type ID int

const (
	G1StopshipTokens ID = iota + 1
	G2CondFormatBrokenRef
	G3TableColumnLineFeed
	G4CalcChainInvalid
	G5SharedFormulaOutOfBounds
	G6SharedFormulaBBoxMismatch
	G7StylesDxfIntegrity
	G8XMLWellFormedness
	G9IllegalControlChars
	G10RelationshipsMissingTargets
)

func (id ID) String() string {
	switch id {
	case G1StopshipTokens:
		return "G1_stopship_tokens"
	case G2CondFormatBrokenRef:
		return "G2_cf_broken_ref"
	case G3TableColumnLineFeed:
		return "G3_table_column_linefeed"
	case G4CalcChainInvalid:
		return "G4_calcchain_invalid"
	case G5SharedFormulaOutOfBounds:
		return "G5_shared_formula_oob"
	case G6SharedFormulaBBoxMismatch:
		return "G6_shared_formula_bbox_mismatch"
	case G7StylesDxfIntegrity:
		return "G7_styles_dxf_integrity"
	case G8XMLWellFormedness:
		return "G8_xml_wellformedness"
	case G9IllegalControlChars:
		return "G9_illegal_control_chars"
	case G10RelationshipsMissingTargets:
		return "G10_rels_missing_targets"
	default:
		return "unknown"
	}
}

// Finding is one observation produced by a gate check.
type Finding struct {
	GateID  ID
	Message string
	// Sample holds the first K offenders (K = TriageConfig.SampleSize),
	// each a JSON-serializable object describing one occurrence.
	Sample []map[string]any
}

// Report is the accumulated result of running every gate over a PartMap.
type Report struct {
	Findings map[ID][]Finding
}

// PassAll reports whether every gate's finding list is empty.
func (r Report) PassAll() bool {
	for _, findings := range r.Findings {
		if len(findings) > 0 {
			return false
		}
	}
	return true
}
