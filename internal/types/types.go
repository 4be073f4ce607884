// Package types provides domain models shared across regroup components.
//
// Zero-dependency design: types.go and errors.go use only the standard
// library so the engine packages stay embeddable in host pipelines. ID
// utilities in ids.go import uuid but are isolated for selective inclusion.
//
// Separation from storage: persisted ruleset rows live in
// internal/core/store. This package contains hand-written types for the
// in-memory rename model the engine operates on.
package types

// Direction selects which way a compiled index resolves names.
type Direction int

const (
	// DirectionApply resolves rule source names to target names.
	DirectionApply Direction = iota
	// DirectionReverse resolves rule target names back to source names.
	DirectionReverse
)

// String returns the CLI spelling of the direction.
func (d Direction) String() string {
	if d == DirectionReverse {
		return "reverse"
	}
	return "apply"
}

// Rule is a single source-to-target rename mapping. Stateless; a rule with
// an empty Source or Target is invalid and skipped during compilation.
type Rule struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Ruleset is an ordered collection of rules sharing an optional object-name
// prefix filter. Rule order is preserved for display and editing; during
// compilation a later rule for the same source overwrites an earlier one.
type Ruleset struct {
	ID     RulesetID `json:"-"`
	Name   string    `json:"name"`
	Prefix string    `json:"prefix"`
	Rules  []Rule    `json:"rules"`
}

// Preset is a named, ordered collection of rulesets. The unit of JSON
// import/export and the unit a user selects before applying renames.
type Preset struct {
	ID       PresetID
	Name     string
	Rulesets []Ruleset
}

// Weights maps element identifiers (vertex indices in the mesh case) to
// normalized weights. Element identity is opaque to the engine; it only
// uses the keys to line up weights during a merge.
type Weights map[int]float64

// Clone returns an independent copy of the weight map.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for elem, weight := range w {
		out[elem] = weight
	}
	return out
}

// WeightMap is one named, weight-bearing group on an object.
type WeightMap struct {
	Name    string
	Weights Weights
}

// ObjectWeightData is the full named-group state of one object. Group
// order is significant: hosts recreate groups in slice order, and the
// merge transform preserves first appearance of each destination name.
// Group names are unique within one ObjectWeightData.
type ObjectWeightData struct {
	ObjectName string
	Groups     []WeightMap
}

// Weight domain and host name limits.
const (
	// MaxWeight is the ceiling of the normalized weight domain. Merged
	// weights are clamped here so output never leaves the host's range.
	MaxWeight = 1.0

	// MaxNameLength bounds group, bone, ruleset, and preset names.
	// 63 bytes matches the tightest host name limit we target.
	MaxNameLength = 63

	// DefaultLeftMarker and DefaultRightMarker are the mirror markers
	// used when a host configures none.
	DefaultLeftMarker  = "L_"
	DefaultRightMarker = "R_"

	// DefaultPresetName is created on first use and cannot be deleted.
	DefaultPresetName = "Default"
)
