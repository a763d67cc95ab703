// Package recipe assembles gate findings and classified patterns into a
// single ordered PatchRecipe, and models the recipe's wire format.
package recipe

import (
	"encoding/json"

	"github.com/Masterminds/semver/v3"
)

// Operation is one of the four patch operation kinds, modeled as a closed
// tagged union: adding a fifth kind is a compile-time change here, not a
// runtime registration.
type Operation string

const (
	OpDeletePart     Operation = "delete_part"
	OpLiteralReplace Operation = "literal_replace"
	OpAppendBlock    Operation = "append_block"
	OpSetPart        Operation = "set_part"
)

// Position is where an append_block's block is spliced relative to its
// anchor.
type Position string

const (
	PositionBefore Position = "before"
	PositionAfter  Position = "after"
)

// Placeholder marks a value RecipeBuilder could not infer; the caller must
// fill it in before Patcher will apply the containing op.
const (
	PlaceholderMatch       = "<FILL_IN_MATCH>"
	PlaceholderReplacement = "<FILL_IN_REPLACEMENT>"
	PlaceholderBlock       = "<FILL_IN_BLOCK>"
)

// IsPlaceholder reports whether s is one of the reserved <FILL_IN_*>
// strings.
func IsPlaceholder(s string) bool {
	return len(s) > 9 && s[:9] == "<FILL_IN_" && s[len(s)-1] == '>'
}

// PatchOp is one patch operation. Only the fields relevant to Operation
// are populated.
type PatchOp struct {
	ID          string    `json:"id"`
	Part        string    `json:"part"`
	Operation   Operation `json:"operation"`
	Description string    `json:"description"`

	// literal_replace. Occurrence is a pointer so a recipe can distinguish
	// "not specified" (nil, defaults to 1) from an explicit zero, which is
	// invalid.
	Match       string `json:"match,omitempty"`
	Replacement string `json:"replacement,omitempty"`
	Occurrence  *int   `json:"occurrence,omitempty"`

	// append_block
	Anchor   string   `json:"anchor,omitempty"`
	Block    string   `json:"block,omitempty"`
	Position Position `json:"position,omitempty"`

	// set_part
	Content string `json:"content,omitempty"`

	// Extra carries any fields present in the source JSON that this
	// version of PatchOp does not model, e.g. from a newer schema minor
	// version or a hand-edited recipe. They round-trip unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

var patchOpKnownFields = map[string]bool{
	"id": true, "part": true, "operation": true, "description": true,
	"match": true, "replacement": true, "occurrence": true,
	"anchor": true, "block": true, "position": true, "content": true,
}

// MarshalJSON re-emits the PatchOp's known fields alongside any preserved
// Extra fields.
func (p PatchOp) MarshalJSON() ([]byte, error) {
	type alias PatchOp
	base, err := json.Marshal(alias(p))
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}
	for k, v := range p.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON populates the PatchOp's known fields and stashes anything
// else in Extra so it survives a decode-then-re-encode round trip.
func (p *PatchOp) UnmarshalJSON(data []byte) error {
	type alias PatchOp
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*p = PatchOp(a)

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for k, v := range m {
		if patchOpKnownFields[k] {
			continue
		}
		if p.Extra == nil {
			p.Extra = map[string]json.RawMessage{}
		}
		p.Extra[k] = v
	}
	return nil
}

// PatchRecipe is the top-level recipe document, serializable to JSON and
// re-consumable after hand-editing.
type PatchRecipe struct {
	SchemaVersion string    `json:"schema_version"`
	ID            string    `json:"id"`
	Created       string    `json:"created"`
	SourceFile    string    `json:"source_file"`
	Version       string    `json:"version"`
	Patches       []PatchOp `json:"patches"`

	// Extra carries any top-level fields this version of PatchRecipe does
	// not model. They round-trip unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

var patchRecipeKnownFields = map[string]bool{
	"schema_version": true, "id": true, "created": true,
	"source_file": true, "version": true, "patches": true,
}

// MarshalJSON re-emits the PatchRecipe's known fields alongside any
// preserved Extra fields.
func (r PatchRecipe) MarshalJSON() ([]byte, error) {
	type alias PatchRecipe
	base, err := json.Marshal(alias(r))
	if err != nil {
		return nil, err
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}
	for k, v := range r.Extra {
		m[k] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON populates the PatchRecipe's known fields and stashes
// anything else in Extra so it survives a decode-then-re-encode round
// trip.
func (r *PatchRecipe) UnmarshalJSON(data []byte) error {
	type alias PatchRecipe
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*r = PatchRecipe(a)

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	for k, v := range m {
		if patchRecipeKnownFields[k] {
			continue
		}
		if r.Extra == nil {
			r.Extra = map[string]json.RawMessage{}
		}
		r.Extra[k] = v
	}
	return nil
}

const SchemaVersion = "1.0"

// supportedSchemaVersion is the parsed form of SchemaVersion, compared
// against a recipe's schema_version by major component only: this
// Patcher understands any 1.x recipe and rejects anything from a future
// breaking wire-format change.
var supportedSchemaVersion = semver.MustParse(SchemaVersion)

// CompatibleSchemaVersion reports whether v is a schema_version this
// engine's Patcher can apply. An unparsable version is never compatible.
func CompatibleSchemaVersion(v string) bool {
	parsed, err := semver.NewVersion(v)
	if err != nil {
		return false
	}
	return parsed.Major() == supportedSchemaVersion.Major()
}

// IntPtr is a small helper for populating PatchOp.Occurrence, which must be
// a pointer to distinguish an omitted field from an explicit zero.
func IntPtr(n int) *int {
	return &n
}
