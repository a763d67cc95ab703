package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/sheetdefect/triage/internal/config"
	"github.com/sheetdefect/triage/internal/triage/pipeline"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe <candidate> <repaired>",
	Short: "Build a patch recipe from a candidate and its repaired copy",
	Long: `recipe runs GateChecks, Diff, and PatternClassifier over the pair
and assembles their findings into one ordered PatchRecipe. By default the
recipe is printed to stdout; use --out to write it to a file instead.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		out, _ := cmd.Flags().GetString("out")
		version, _ := cmd.Flags().GetString("version")

		candidate := readArchive(args[0])
		repaired := readArchive(args[1])

		result, err := pipeline.Run(globalCtx, args[0], candidate, repaired, version, config.Default())
		if err != nil {
			exitForErr(err)
			return
		}

		if out == "" {
			printJSON(result.Recipe)
			return
		}

		writeJSONFile(out, result.Recipe)
		printInfof("Wrote %s (%d patches)\n", out, len(result.Recipe.Patches))
	},
}

func init() {
	recipeCmd.Flags().String("out", "", "Write the recipe to this file instead of stdout")
	recipeCmd.Flags().String("version", "1", "Value stored in the recipe's version field")
}

func writeJSONFile(path string, v interface{}) {
	f, err := os.Create(path)
	if err != nil {
		printError(err)
		exitWithCode(ExitGeneral)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		printError(err)
		exitWithCode(ExitGeneral)
	}
}
