package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/sheetdefect/triage/internal/triage/patch"
	"github.com/sheetdefect/triage/internal/triage/recipe"
)

var applyCmd = &cobra.Command{
	Use:   "apply <archive> <recipe.json>",
	Short: "Apply a patch recipe to an archive",
	Long: `apply reads a PatchRecipe from disk and runs its operations against
the archive in list order. Parts the recipe does not touch come out
bit-identical to the input. Use --out to write the patched archive
somewhere other than stdout.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("out")

		archive := readArchive(args[0])
		r := readRecipe(args[1])

		patched, skipped, err := patch.Apply(archive, r)
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

		if out == "" {
			os.Stdout.Write(patched)
			return
		}
		if err := os.WriteFile(out, patched, 0o644); err != nil {
			printError(err)
			exitWithCode(ExitGeneral)
		}
		printInfof("Wrote %s\n", out)
	},
}

func init() {
	applyCmd.Flags().String("out", "", "Write the patched archive to this file instead of stdout")
}

func readRecipe(path string) recipe.PatchRecipe {
	data, err := os.ReadFile(path)
	if err != nil {
		printError(err)
		exitWithCode(ExitGeneral)
	}
	var r recipe.PatchRecipe
	if err := json.Unmarshal(data, &r); err != nil {
		printError(err)
		exitWithCode(ExitGeneral)
	}
	return r
}
