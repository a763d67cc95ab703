package errmsg

import (
	"bytes"
	"errors"
	"testing"

	"github.com/sheetdefect/triage/internal/triageerr"
	"github.com/stretchr/testify/assert"
)

func TestFormatNilError(t *testing.T) {
	assert.Equal(t, "", Format(nil, nil))
}

func TestFormatGenericError(t *testing.T) {
	err := errors.New("something went wrong")
	assert.Equal(t, "something went wrong", Format(err, nil))
}

func TestFormatArchiveError(t *testing.T) {
	err := triageerr.New(triageerr.ErrArchive, "scan", "", errors.New("zip: not a valid zip file"))
	result := Format(err, nil)

	assert.Contains(t, result, "not a valid zip file")
	assert.Contains(t, result, "Possible causes:")
	assert.Contains(t, result, "Suggestions:")
}

func TestFormatMatchNotFoundWithContext(t *testing.T) {
	err := triageerr.New(triageerr.ErrPatchMatchNotFound, "op-1", "xl/styles.xml", nil)
	ctx := &ErrorContext{SourceFile: "candidate.xlsx"}

	result := Format(err, ctx)

	assert.Contains(t, result, "candidate.xlsx")
	assert.Contains(t, result, "triage scan")
}

func TestFormatRecipeError(t *testing.T) {
	err := triageerr.New(triageerr.ErrRecipe, "", "", errors.New("unknown operation: frobnicate"))
	result := Format(err, nil)

	assert.Contains(t, result, "unknown operation")
	assert.Contains(t, result, "PatchRecipe")
}

func TestFprintWritesFormattedMessageWithTrailingNewline(t *testing.T) {
	err := triageerr.New(triageerr.ErrArchive, "scan", "", errors.New("zip: not a valid zip file"))

	var buf bytes.Buffer
	Fprint(&buf, err)

	assert.Contains(t, buf.String(), "not a valid zip file")
	assert.Contains(t, buf.String(), "Suggestions:")
	assert.Equal(t, Format(err, nil)+"\n", buf.String())
}
