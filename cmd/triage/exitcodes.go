package main

import (
	"errors"
	"os"

	"github.com/sheetdefect/triage/internal/triageerr"
)

// Exit codes for different failure modes. These enable scripts to
// distinguish a malformed archive from an unsatisfiable patch without
// parsing stderr text.
const (
	ExitSuccess       = 0
	ExitGeneral       = 1
	ExitUsage         = 2
	ExitArchive       = 3
	ExitGateOrRecipe  = 4
	ExitPatchNotFound = 5
	ExitPatchPart     = 6
)

// exitWithCode exits with the specified exit code.
func exitWithCode(code int) {
	os.Exit(code)
}

// exitCodeFor maps a triageerr.TriageError to the exit code a script
// should see; errors outside that family fall back to ExitGeneral.
func exitCodeFor(err error) int {
	var terr *triageerr.TriageError
	if !errors.As(err, &terr) {
		return ExitGeneral
	}

	switch terr.Type {
	case triageerr.ErrArchive:
		return ExitArchive
	case triageerr.ErrGate, triageerr.ErrRecipe:
		return ExitGateOrRecipe
	case triageerr.ErrPatchMatchNotFound, triageerr.ErrPatchAnchorNotFound:
		return ExitPatchNotFound
	case triageerr.ErrPatchPartMissing, triageerr.ErrPatchDuplicatePart:
		return ExitPatchPart
	default:
		return ExitGeneral
	}
}
