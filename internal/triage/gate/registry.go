package gate

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

// checkFunc is the signature every gate check implements.
type checkFunc func(m *scan.PartMap, cfg config.TriageConfig) []Finding

// registry is the fixed, order-independent set of gate checks. It is
// closed: adding a new gate means adding a new ID, a new checkFunc, and a
// new entry here, never a dynamic plugin registration.
var registry = map[ID]checkFunc{
	G1StopshipTokens:               checkStopshipTokens,
	G2CondFormatBrokenRef:          checkCondFormatBrokenRef,
	G3TableColumnLineFeed:          checkTableColumnLineFeed,
	G4CalcChainInvalid:             checkCalcChainInvalid,
	G5SharedFormulaOutOfBounds:     checkSharedFormulaOutOfBounds,
	G6SharedFormulaBBoxMismatch:    checkSharedFormulaBBoxMismatch,
	G7StylesDxfIntegrity:           checkStylesDxfIntegrity,
	G8XMLWellFormedness:            checkXMLWellFormedness,
	G9IllegalControlChars:          checkIllegalControlChars,
	G10RelationshipsMissingTargets: checkRelationshipsMissingTargets,
}

// RunAll executes every gate check concurrently and merges the results
// into a single Report. Gates are pure and independent of one another, so
// an errgroup fans them out without any shared mutable state beyond each
// goroutine's own slot in the results map.
func RunAll(ctx context.Context, m *scan.PartMap, cfg config.TriageConfig) (Report, error) {
	results := make(map[ID][]Finding, len(registry))
	var mu sync.Mutex

	g, _ := errgroup.WithContext(ctx)
	for id, fn := range registry {
		id, fn := id, fn
		g.Go(func() error {
			findings := fn(m, cfg)
			mu.Lock()
			results[id] = findings
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	return Report{Findings: results}, nil
}
