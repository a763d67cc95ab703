package main

import (
	"github.com/spf13/cobra"

	"github.com/sheetdefect/triage/internal/triage/diff"
	"github.com/sheetdefect/triage/internal/triage/scan"
)

var diffCmd = &cobra.Command{
	Use:   "diff <candidate> <repaired>",
	Short: "Compare a candidate archive against its host-repaired copy",
	Long: `diff scans both archives and reports, part by part, which were
added, removed, changed, or left unchanged, with a unified diff for
changed text parts.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		report, err := computeDiff(args[0], args[1])
		if err != nil {
			exitForErr(err)
			return
		}

		if jsonOutput {
			printJSON(report)
			return
		}

		printDiffReport(report)
	},
}

func init() {
	diffCmd.Flags().Bool("json", false, "Output in JSON format")
}

func computeDiff(candidatePath, repairedPath string) (diff.DiffReport, error) {
	candidate, err := scan.Scan(readArchive(candidatePath))
	if err != nil {
		return diff.DiffReport{}, err
	}
	repaired, err := scan.Scan(readArchive(repairedPath))
	if err != nil {
		return diff.DiffReport{}, err
	}
	return diff.Compute(candidate, repaired), nil
}

func printDiffReport(report diff.DiffReport) {
	for _, e := range report.Entries {
		if e.Status == diff.StatusUnchanged {
			continue
		}
		printInfof("%s  %s\n", e.Status, e.Path)
		if e.UnifiedDiff != "" {
			printInfo(e.UnifiedDiff)
		}
	}
	printInfof("added=%d removed=%d changed=%d unchanged=%d\n",
		report.Summary[diff.StatusAdded], report.Summary[diff.StatusRemoved],
		report.Summary[diff.StatusChanged], report.Summary[diff.StatusUnchanged])
}
