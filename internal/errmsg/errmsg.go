// Package errmsg provides enhanced error message formatting with actionable
// suggestions for triageerr.TriageError values.
package errmsg

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sheetdefect/triage/internal/triageerr"
)

// ErrorContext provides additional context for error formatting.
type ErrorContext struct {
	SourceFile string // the candidate archive path, for suggestion text
}

// Format returns a formatted error message with possible causes and
// suggestions. The context parameter is optional; pass nil for generic
// formatting.
func Format(err error, ctx *ErrorContext) string {
	if err == nil {
		return ""
	}

	var terr *triageerr.TriageError
	if errors.As(err, &terr) {
		return formatTriageError(terr, ctx)
	}

	return err.Error()
}

// Fprint writes err's formatted message to w using generic context. It is
// the convenience entry point cmd/triage's printError calls.
func Fprint(w io.Writer, err error) {
	fmt.Fprintln(w, Format(err, nil))
}

func formatTriageError(err *triageerr.TriageError, ctx *ErrorContext) string {
	var sb strings.Builder
	sb.WriteString(err.Error())
	sb.WriteString("\n")

	switch err.Type {
	case triageerr.ErrArchive:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - The file is not a valid ZIP container\n")
		sb.WriteString("  - The archive has duplicate entry names\n")
		sb.WriteString("  - The archive is truncated or was partially downloaded\n")
		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Re-download or re-export the workbook and retry\n")

	case triageerr.ErrPatchMatchNotFound:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - The recipe was built against a different candidate archive\n")
		sb.WriteString("  - A prior operation in the recipe already rewrote this byte range\n")
		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Re-run 'triage recipe' against the current candidate to regenerate match strings\n")
		if ctx != nil && ctx.SourceFile != "" {
			sb.WriteString(fmt.Sprintf("  - Inspect %s with 'triage scan' to confirm the part's current bytes\n", ctx.SourceFile))
		}

	case triageerr.ErrPatchAnchorNotFound:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - The anchor string is missing from the target part\n")
		sb.WriteString("  - The part was already patched by an earlier operation in this recipe\n")
		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Re-run 'triage recipe' to regenerate the anchor from the current candidate\n")

	case triageerr.ErrPatchPartMissing:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - The part was already removed by an earlier delete_part operation\n")
		sb.WriteString("  - The recipe targets a part name that never existed in this archive\n")
		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Check the recipe's operation order for an earlier delete_part on the same part\n")

	case triageerr.ErrPatchDuplicatePart:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - Two set_part operations in the recipe target the same new part\n")
		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Remove the duplicate operation from the recipe\n")

	case triageerr.ErrRecipe:
		sb.WriteString("\nPossible causes:\n")
		sb.WriteString("  - The recipe JSON is malformed\n")
		sb.WriteString("  - The recipe uses an operation name this engine does not recognize\n")
		sb.WriteString("  - A required field is missing or an occurrence value is invalid\n")
		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Validate the recipe's schema_version and operation names against the recipe package's PatchRecipe type\n")

	default:
		sb.WriteString("\nSuggestions:\n")
		sb.WriteString("  - Re-run the pipeline stage that produced this error\n")
	}

	return sb.String()
}
