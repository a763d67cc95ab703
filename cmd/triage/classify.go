package main

import (
	"github.com/spf13/cobra"

	"github.com/sheetdefect/triage/internal/triage/diff"
	"github.com/sheetdefect/triage/internal/triage/pattern"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <candidate> <repaired>",
	Short: "Classify a diff into named repair patterns",
	Long: `classify diffs the two archives and runs the seven fixed pattern
rules against the result, printing every pattern that fires with its
confidence and evidence.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		candidate, err := scan.Scan(readArchive(args[0]))
		if err != nil {
			exitForErr(err)
			return
		}
		repaired, err := scan.Scan(readArchive(args[1]))
		if err != nil {
			exitForErr(err)
			return
		}

		diffReport := diff.Compute(candidate, repaired)
		patterns := pattern.Classify(candidate, repaired, diffReport)

		if jsonOutput {
			printJSON(patterns)
			return
		}

		if len(patterns) == 0 {
			printInfo("No patterns matched.")
			return
		}
		for _, p := range patterns {
			printInfof("%s [%s]\n", p.Name, p.Confidence)
			for _, e := range p.Evidence {
				printInfof("  - %s\n", e)
			}
		}
	},
}

func init() {
	classifyCmd.Flags().Bool("json", false, "Output in JSON format")
}
