package main

import (
	"github.com/spf13/cobra"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/gate"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

var gateCmd = &cobra.Command{
	Use:   "gate <archive>",
	Short: "Run all ten gate checks against an archive",
	Long: `gate scans the archive and runs every hazard check concurrently,
printing a GateReport of the findings each check produced.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		data := readArchive(args[0])
		m, err := scan.Scan(data)
		if err != nil {
			exitForErr(err)
			return
		}

		report, err := gate.RunAll(globalCtx, m, config.Default())
		if err != nil {
			exitForErr(err)
			return
		}

		if jsonOutput {
			printJSON(report)
			return
		}

		printGateReport(report)
	},
}

func init() {
	gateCmd.Flags().Bool("json", false, "Output in JSON format")
}

func printGateReport(report gate.Report) {
	if report.PassAll() {
		printInfo("All gates passed.")
		return
	}

	for id := gate.G1StopshipTokens; id <= gate.G10RelationshipsMissingTargets; id++ {
		findings := report.Findings[id]
		if len(findings) == 0 {
			continue
		}
		printInfof("%s:\n", id)
		for _, f := range findings {
			printInfof("  - %s (%d sampled)\n", f.Message, len(f.Sample))
		}
	}
}
