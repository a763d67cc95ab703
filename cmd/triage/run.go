package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/gate"
	"github.com/sheetdefect/triage/internal/triage/pattern"
	"github.com/sheetdefect/triage/internal/triage/patch"
	"github.com/sheetdefect/triage/internal/triage/pipeline"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

var runCmd = &cobra.Command{
	Use:   "run <candidate> <repaired>",
	Short: "Build a recipe from a candidate/repaired pair and apply it to the candidate",
	Long: `run is the full pipeline in one step: it derives a PatchRecipe from
candidate and repaired, then immediately applies that recipe to candidate,
writing the result to --out (default stdout). With --manifest it also
prints a human-readable triage summary.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("out")
		version, _ := cmd.Flags().GetString("version")
		withManifest, _ := cmd.Flags().GetBool("manifest")

		candidate := readArchive(args[0])
		repaired := readArchive(args[1])

		result, err := pipeline.Run(globalCtx, args[0], candidate, repaired, version, config.Default())
		if err != nil {
			exitForErr(err)
			return
		}

		patched, skipped, err := patch.Apply(candidate, result.Recipe)
		if err != nil {
			exitForErr(err)
			return
		}

		if len(skipped) > 0 {
			printInfo("Skipped operations:")
			for _, s := range skipped {
				printInfof("  - %s: %s field held a placeholder (%s)\n", s.OpID, s.Field, s.Reason)
			}
		}

		if withManifest {
			parts, err := scan.Scan(candidate)
			if err != nil {
				exitForErr(err)
				return
			}
			printManifest(buildManifest(args[0], parts.Len(), result))
		}

		if out == "" {
			os.Stdout.Write(patched)
			return
		}
		if err := os.WriteFile(out, patched, 0o644); err != nil {
			printError(err)
			exitWithCode(ExitGeneral)
		}
		printInfof("Wrote %s (%d patches, %d skipped)\n", out, len(result.Recipe.Patches), len(skipped))
	},
}

func init() {
	runCmd.Flags().String("out", "", "Write the patched archive to this file instead of stdout")
	runCmd.Flags().String("version", "1", "Value stored in the recipe's version field")
	runCmd.Flags().Bool("manifest", false, "Print a human-readable triage summary")
}

// Manifest is an optional side artifact summarizing one triage run; it is
// never consumed by the pipeline itself.
type Manifest struct {
	SourceFile  string            `json:"source_file"`
	ScannedAt   time.Time         `json:"scanned_at"`
	PartCount   int               `json:"part_count"`
	GateSummary map[gate.ID]int   `json:"gate_summary"`
	Patterns    []pattern.Pattern `json:"patterns"`
}

func buildManifest(sourceFile string, partCount int, result pipeline.Result) Manifest {
	summary := make(map[gate.ID]int, len(result.GateReport.Findings))
	for id, findings := range result.GateReport.Findings {
		summary[id] = len(findings)
	}
	return Manifest{
		SourceFile:  sourceFile,
		ScannedAt:   time.Now().UTC(),
		PartCount:   partCount,
		GateSummary: summary,
		Patterns:    result.Patterns,
	}
}

func printManifest(m Manifest) {
	printInfof("Manifest for %s (scanned %s)\n", m.SourceFile, m.ScannedAt.Format(time.RFC3339))
	printInfof("  Parts examined: %d\n", m.PartCount)
	for id, n := range m.GateSummary {
		if n > 0 {
			printInfof("  %s: %d finding(s)\n", id, n)
		}
	}
	for _, p := range m.Patterns {
		printInfof("  pattern: %s [%s]\n", p.Name, p.Confidence)
	}
}
