package types

import "errors"

// Sentinel errors for regroup operations.
var (
	// ErrEmptyName indicates a rule, group, or bone with an empty name.
	ErrEmptyName = errors.New("name is empty")

	// ErrNameTooLong indicates a name exceeds MaxNameLength.
	ErrNameTooLong = errors.New("name exceeds maximum length")

	// ErrDuplicateGroupName indicates two groups share a name within one object.
	ErrDuplicateGroupName = errors.New("duplicate group name in object")

	// ErrWeightOutOfRange indicates a weight outside [0, MaxWeight].
	ErrWeightOutOfRange = errors.New("weight outside normalized range")

	// ErrInvalidMarkers indicates mirror markers that cannot round-trip
	// (empty, equal, or one a prefix of the other).
	ErrInvalidMarkers = errors.New("invalid mirror markers")

	// ErrPresetNotFound indicates a preset name with no stored preset.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrPresetExists indicates a create/rename collision on preset name.
	ErrPresetExists = errors.New("preset already exists")

	// ErrDefaultPresetImmutable indicates an attempt to rename or delete
	// the Default preset.
	ErrDefaultPresetImmutable = errors.New("the Default preset cannot be renamed or deleted")

	// ErrLastPreset indicates an attempt to delete the only preset.
	ErrLastPreset = errors.New("cannot delete the last remaining preset")

	// ErrRulesetNotFound indicates a ruleset ID with no stored ruleset.
	ErrRulesetNotFound = errors.New("ruleset not found")

	// ErrRulesetExists indicates a duplicate ruleset name within one preset.
	ErrRulesetExists = errors.New("ruleset already exists in preset")

	// ErrRuleExists indicates a duplicate source name within one ruleset.
	ErrRuleExists = errors.New("rule for source name already exists in ruleset")

	// ErrRuleNotFound indicates a source name with no rule in the ruleset.
	ErrRuleNotFound = errors.New("rule not found in ruleset")
)
