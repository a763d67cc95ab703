// Package pipeline composes the triage engine's stages into the single
// convenience entry point cmd/triage's "run" and "recipe" subcommands
// drive: Scanner -> (GateChecks || Diff -> PatternClassifier) ->
// RecipeBuilder.
package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/log"
	"github.com/sheetdefect/triage/internal/triage/diff"
	"github.com/sheetdefect/triage/internal/triage/gate"
	"github.com/sheetdefect/triage/internal/triage/pattern"
	"github.com/sheetdefect/triage/internal/triage/recipe"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

// Result bundles every intermediate artifact a caller might want to report
// alongside the final recipe.
type Result struct {
	GateReport gate.Report
	DiffReport diff.DiffReport
	Patterns   []pattern.Pattern
	Recipe     recipe.PatchRecipe
}

// Run scans candidate and repaired, then fans out GateChecks over the
// candidate concurrently with Diff+Classify over the pair, joining both
// before handing their outputs to RecipeBuilder. gate.RunAll in turn runs
// its ten checks concurrently, keyed by gate ID.
func Run(ctx context.Context, sourceFile string, candidate, repaired []byte, version string, cfg config.TriageConfig) (Result, error) {
	candidateParts, err := scan.Scan(candidate)
	if err != nil {
		return Result{}, err
	}
	repairedParts, err := scan.Scan(repaired)
	if err != nil {
		return Result{}, err
	}

	var report gate.Report
	var diffReport diff.DiffReport
	var patterns []pattern.Pattern

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		r, err := gate.RunAll(gctx, candidateParts, cfg)
		if err != nil {
			return err
		}
		report = r
		return nil
	})
	g.Go(func() error {
		diffReport = diff.Compute(candidateParts, repairedParts)
		patterns = pattern.Classify(candidateParts, repairedParts, diffReport)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	log.Default().Info("triage pipeline finished",
		"gate_findings", countFindings(report),
		"diff_entries", len(diffReport.Entries),
		"patterns", len(patterns))

	r := recipe.Build(sourceFile, candidateParts, report, patterns, version)

	return Result{
		GateReport: report,
		DiffReport: diffReport,
		Patterns:   patterns,
		Recipe:     r,
	}, nil
}

func countFindings(r gate.Report) int {
	n := 0
	for _, findings := range r.Findings {
		n += len(findings)
	}
	return n
}
