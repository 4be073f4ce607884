package types

import (
	"time"

	"github.com/google/uuid"
)

// PresetID represents a UUIDv7 preset identifier.
// String alias enables type safety while maintaining JSON string serialization.
// UUIDv7 time-ordering ensures sequential IDs cluster in B-tree indexes.
type PresetID string

// RulesetID represents a UUIDv7 ruleset identifier.
// String alias enables type safety while maintaining JSON string serialization.
type RulesetID string

// NewPresetID generates a UUIDv7 preset identifier.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewPresetID() PresetID {
	return PresetID(uuid.Must(uuid.NewV7()).String())
}

// NewRulesetID generates a UUIDv7 ruleset identifier.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewRulesetID() RulesetID {
	return RulesetID(uuid.Must(uuid.NewV7()).String())
}

// ParsePresetID validates and converts a string to PresetID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the store.
func ParsePresetID(s string) (PresetID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return PresetID(s), nil
}

// ParseRulesetID validates and converts a string to RulesetID.
// Rejects malformed UUIDs to prevent invalid IDs from entering the store.
func ParseRulesetID(s string) (RulesetID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return RulesetID(s), nil
}

// RulesetIDTime extracts the timestamp embedded in a UUIDv7 ID.
// Enables creation-order queries without a database lookup.
// Returns zero time for invalid UUIDs; caller should check IsZero().
func RulesetIDTime(id RulesetID) time.Time {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return time.Time{}
	}
	sec, nsec := u.Time().UnixTime()
	return time.Unix(sec, nsec)
}
