package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sheetdefect/triage/internal/triage/scan"
)

var scanCmd = &cobra.Command{
	Use:   "scan <archive>",
	Short: "List the parts inside an OOXML archive",
	Long: `scan opens an archive's ZIP container and prints every part's path,
size, and content digest, without parsing any XML.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		data := readArchive(args[0])
		m, err := scan.Scan(data)
		if err != nil {
			exitForErr(err)
			return
		}

		if jsonOutput {
			printJSON(scanPartsJSON(m))
			return
		}

		for _, p := range m.Paths() {
			part, _ := m.Get(p)
			printInfof("%-60s %10d bytes  %x\n", part.Path, len(part.Bytes), part.Digest[:8])
		}
	},
}

func init() {
	scanCmd.Flags().Bool("json", false, "Output in JSON format")
}

type partJSON struct {
	Path   string `json:"path"`
	Size   int    `json:"size"`
	Digest string `json:"digest"`
}

func scanPartsJSON(m *scan.PartMap) []partJSON {
	paths := m.Paths()
	out := make([]partJSON, 0, len(paths))
	for _, p := range paths {
		part, _ := m.Get(p)
		out = append(out, partJSON{
			Path:   part.Path,
			Size:   len(part.Bytes),
			Digest: fmt.Sprintf("%x", part.Digest),
		})
	}
	return out
}
