package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sheetdefect/triage/internal/errmsg"
)

// printInfo prints an informational message unless quiet mode is enabled.
func printInfo(a ...interface{}) {
	if !quietFlag {
		fmt.Println(a...)
	}
}

// printInfof prints a formatted informational message unless quiet mode is
// enabled.
func printInfof(format string, a ...interface{}) {
	if !quietFlag {
		fmt.Printf(format, a...)
	}
}

// printJSON marshals v to JSON and prints it to stdout.
func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		exitWithCode(ExitGeneral)
	}
}

// printError prints an error to stderr with possible causes and
// suggestions, via the errmsg package.
func printError(err error) {
	errmsg.Fprint(os.Stderr, err)
}

// readArchive reads path from disk, exiting with ExitGeneral on failure:
// a missing or unreadable input file is not an archive-format error, since
// its bytes were never read.
func readArchive(path string) []byte {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitWithCode(ExitGeneral)
	}
	return data
}

// exitForErr prints err and exits with the code its triageerr.ErrorType
// maps to.
func exitForErr(err error) {
	printError(err)
	exitWithCode(exitCodeFor(err))
}
