// Package patch applies a recipe.PatchRecipe to a candidate archive,
// byte-for-byte: parts the recipe does not name come out bit-identical to
// the input, and no part is ever re-serialized through an XML encoder.
package patch

import (
	"archive/zip"
	"bytes"
	"fmt"

	"github.com/sheetdefect/triage/internal/triage/recipe"
	"github.com/sheetdefect/triage/internal/triage/scan"
	"github.com/sheetdefect/triage/internal/triageerr"
)

// SkippedOp records one patch operation that was not applied because a
// required field held a placeholder.
type SkippedOp struct {
	OpID   string
	Field  string
	Reason string
}

// SkipLog is the ordered record of skipped operations, returned alongside
// the patched archive.
type SkipLog []SkippedOp

type workingPart struct {
	bytes  []byte
	method uint16
}

// workingSet is the Patcher's own ordered, mutable part map. It is
// deliberately distinct from scan.PartMap, whose parts are immutable and
// whose role is read-only input to GateChecks and Diff.
type workingSet struct {
	order []string
	parts map[string]workingPart

	// originalPaths and createdByRecipe distinguish a set_part overwriting
	// a pre-existing part (always allowed) from one targeting a path that
	// did not exist in the candidate, which may only be created once per
	// recipe.
	originalPaths   map[string]bool
	createdByRecipe map[string]bool
}

func newWorkingSet(m *scan.PartMap) *workingSet {
	ws := &workingSet{
		parts:           make(map[string]workingPart, m.Len()),
		originalPaths:   make(map[string]bool, m.Len()),
		createdByRecipe: make(map[string]bool),
	}
	for _, p := range m.Paths() {
		part, _ := m.Get(p)
		ws.order = append(ws.order, p)
		ws.parts[p] = workingPart{bytes: part.Bytes, method: part.Method}
		ws.originalPaths[p] = true
	}
	return ws
}

func (ws *workingSet) get(path string) (workingPart, bool) {
	p, ok := ws.parts[path]
	return p, ok
}

// set overwrites an existing part in place or appends a new one at the end
// of iteration order, matching the Patcher's "new entries are appended"
// rule for set_part.
func (ws *workingSet) set(path string, content []byte, method uint16) {
	if _, exists := ws.parts[path]; !exists {
		ws.order = append(ws.order, path)
	}
	ws.parts[path] = workingPart{bytes: content, method: method}
}

// delete removes a part, reporting whether it was present.
func (ws *workingSet) delete(path string) bool {
	if _, ok := ws.parts[path]; !ok {
		return false
	}
	delete(ws.parts, path)
	for i, p := range ws.order {
		if p == path {
			ws.order = append(ws.order[:i], ws.order[i+1:]...)
			break
		}
	}
	return true
}

// Apply runs every operation in r against candidate in list order and
// re-emits the archive. Unchanged parts are bit-identical (same
// uncompressed bytes, same compression method) to the input. On any
// non-skippable error, Apply returns the error and no output bytes.
func Apply(candidate []byte, r recipe.PatchRecipe) ([]byte, SkipLog, error) {
	if err := validate(r); err != nil {
		return nil, nil, err
	}

	m, err := scan.Scan(candidate)
	if err != nil {
		return nil, nil, err
	}
	ws := newWorkingSet(m)

	var skipped SkipLog
	for _, op := range r.Patches {
		skip, err := applyOne(ws, op)
		if err != nil {
			return nil, nil, err
		}
		if skip != nil {
			skipped = append(skipped, *skip)
		}
	}

	out, err := writeArchive(ws)
	if err != nil {
		return nil, nil, triageerr.New(triageerr.ErrArchive, "apply", "", err)
	}
	return out, skipped, nil
}

// validate rejects malformed recipes before any mutation, per the
// "RecipeError is fatal before any mutation occurs" rule.
func validate(r recipe.PatchRecipe) error {
	if !recipe.CompatibleSchemaVersion(r.SchemaVersion) {
		return triageerr.New(triageerr.ErrRecipe, r.ID, "",
			fmt.Errorf("unsupported schema_version %q, this Patcher understands %s.x", r.SchemaVersion, recipe.SchemaVersion))
	}
	for _, op := range r.Patches {
		switch op.Operation {
		case recipe.OpDeletePart, recipe.OpAppendBlock, recipe.OpSetPart:
			// no occurrence field to validate
		case recipe.OpLiteralReplace:
			if op.Occurrence != nil && *op.Occurrence <= 0 {
				return triageerr.New(triageerr.ErrRecipe, op.ID, op.Part,
					fmt.Errorf("literal_replace occurrence must be a positive 1-based index, got %d", *op.Occurrence))
			}
		default:
			return triageerr.New(triageerr.ErrRecipe, op.ID, op.Part,
				fmt.Errorf("unknown operation %q", op.Operation))
		}
	}
	return nil
}

func applyOne(ws *workingSet, op recipe.PatchOp) (*SkippedOp, error) {
	switch op.Operation {
	case recipe.OpDeletePart:
		if !ws.delete(op.Part) {
			return nil, triageerr.New(triageerr.ErrPatchPartMissing, op.ID, op.Part, nil)
		}
		return nil, nil

	case recipe.OpLiteralReplace:
		if recipe.IsPlaceholder(op.Match) {
			return &SkippedOp{OpID: op.ID, Field: "match", Reason: "placeholder not filled in"}, nil
		}
		if recipe.IsPlaceholder(op.Replacement) {
			return &SkippedOp{OpID: op.ID, Field: "replacement", Reason: "placeholder not filled in"}, nil
		}
		part, ok := ws.get(op.Part)
		if !ok {
			return nil, triageerr.New(triageerr.ErrPatchPartMissing, op.ID, op.Part, nil)
		}
		occurrence := 1
		if op.Occurrence != nil {
			occurrence = *op.Occurrence
		}
		next, err := literalReplace(part.bytes, []byte(op.Match), []byte(op.Replacement), occurrence)
		if err != nil {
			return nil, triageerr.New(triageerr.ErrPatchMatchNotFound, op.ID, op.Part, err)
		}
		ws.set(op.Part, next, part.method)
		return nil, nil

	case recipe.OpAppendBlock:
		if recipe.IsPlaceholder(op.Anchor) {
			return &SkippedOp{OpID: op.ID, Field: "anchor", Reason: "placeholder not filled in"}, nil
		}
		if recipe.IsPlaceholder(op.Block) {
			return &SkippedOp{OpID: op.ID, Field: "block", Reason: "placeholder not filled in"}, nil
		}
		part, ok := ws.get(op.Part)
		if !ok {
			return nil, triageerr.New(triageerr.ErrPatchPartMissing, op.ID, op.Part, nil)
		}
		next, err := appendBlock(part.bytes, []byte(op.Anchor), []byte(op.Block), op.Position)
		if err != nil {
			return nil, triageerr.New(triageerr.ErrPatchAnchorNotFound, op.ID, op.Part, err)
		}
		ws.set(op.Part, next, part.method)
		return nil, nil

	case recipe.OpSetPart:
		if recipe.IsPlaceholder(op.Content) {
			return &SkippedOp{OpID: op.ID, Field: "content", Reason: "placeholder not filled in"}, nil
		}
		method := uint16(zip.Deflate)
		existing, existed := ws.get(op.Part)
		if existed {
			method = existing.method
		} else if !ws.originalPaths[op.Part] {
			if ws.createdByRecipe[op.Part] {
				return nil, triageerr.New(triageerr.ErrPatchDuplicatePart, op.ID, op.Part, nil)
			}
			ws.createdByRecipe[op.Part] = true
		}
		ws.set(op.Part, []byte(op.Content), method)
		return nil, nil

	default:
		// validate rejects this before applyOne is ever reached.
		return nil, triageerr.New(triageerr.ErrRecipe, op.ID, op.Part, fmt.Errorf("unknown operation %q", op.Operation))
	}
}

// literalReplace splices replacement in place of the occurrence-th
// (1-based) non-overlapping occurrence of match in data.
func literalReplace(data, match, replacement []byte, occurrence int) ([]byte, error) {
	idx := -1
	rest := data
	base := 0
	for i := 0; i < occurrence; i++ {
		pos := bytes.Index(rest, match)
		if pos < 0 {
			return nil, fmt.Errorf("fewer than %d occurrence(s) of match string found", occurrence)
		}
		idx = base + pos
		base = idx + len(match)
		rest = data[base:]
	}

	out := make([]byte, 0, len(data)-len(match)+len(replacement))
	out = append(out, data[:idx]...)
	out = append(out, replacement...)
	out = append(out, data[idx+len(match):]...)
	return out, nil
}

// appendBlock inserts block immediately before or after the first
// occurrence of anchor.
func appendBlock(data, anchor, block []byte, position recipe.Position) ([]byte, error) {
	idx := bytes.Index(data, anchor)
	if idx < 0 {
		return nil, fmt.Errorf("anchor not found")
	}

	splice := idx
	if position == recipe.PositionAfter {
		splice = idx + len(anchor)
	}

	out := make([]byte, 0, len(data)+len(block))
	out = append(out, data[:splice]...)
	out = append(out, block...)
	out = append(out, data[splice:]...)
	return out, nil
}

// writeArchive re-emits ws as a ZIP archive, preserving the compression
// method recorded for each part. The archive is fully rewritten (not a
// central-directory-only patch) so the central directory stays consistent
// with the new entry set.
func writeArchive(ws *workingSet) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, path := range ws.order {
		part := ws.parts[path]
		hdr := &zip.FileHeader{
			Name:   path,
			Method: part.method,
		}
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return nil, err
		}
		if _, err := w.Write(part.bytes); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
