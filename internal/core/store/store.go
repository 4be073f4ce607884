// Package store persists presets and their rulesets.
//
// A preset is the unit a user selects before applying renames; each preset
// owns an ordered list of rulesets, and each ruleset row carries its rules
// as one JSON array column. Rules are always read and written as a unit
// with their ruleset, so per-rule rows would only add join traffic.
//
// All lookups go through named queries in internal/core/db/queries; the
// store works unchanged against SQLite (local preset file) and PostgreSQL
// (shared team store).
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rigtools/regroup/internal/core/db"
	"github.com/rigtools/regroup/internal/core/logging"
	"github.com/rigtools/regroup/internal/types"
	"github.com/rs/zerolog"
)

// Store provides preset and ruleset persistence over a Queries instance.
type Store struct {
	queries *db.Queries
	log     zerolog.Logger
}

// New creates a store over loaded queries.
func New(queries *db.Queries) *Store {
	return &Store{
		queries: queries,
		log:     logging.GetLogger("store"),
	}
}

type presetRow struct {
	PresetID string `db:"preset_id"`
	Name     string `db:"name"`
}

type rulesetRow struct {
	RulesetID string `db:"ruleset_id"`
	PresetID  string `db:"preset_id"`
	Name      string `db:"name"`
	Prefix    string `db:"prefix"`
	Position  int    `db:"position"`
	Rules     string `db:"rules"`
}

// validateName enforces the shared name constraints for presets, rulesets,
// and rule source/target names.
func validateName(name string) error {
	if name == "" {
		return types.ErrEmptyName
	}
	if len(name) > types.MaxNameLength {
		return types.ErrNameTooLong
	}
	return nil
}

func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// EnsureDefault creates the Default preset when the store is empty.
// Idempotent; called on every store open.
func (s *Store) EnsureDefault() error {
	var count int
	if err := s.queries.Get("count-presets", &count); err != nil {
		return fmt.Errorf("failed to count presets: %w", err)
	}
	if count > 0 {
		return nil
	}
	_, err := s.CreatePreset(types.DefaultPresetName)
	return err
}

// ListPresets returns all preset names in alphabetical order.
func (s *Store) ListPresets() ([]string, error) {
	var rows []presetRow
	if err := s.queries.Select("list-presets", &rows); err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		names = append(names, row.Name)
	}
	return names, nil
}

// GetPreset loads a preset with its rulesets in position order.
func (s *Store) GetPreset(name string) (types.Preset, error) {
	row, err := s.getPresetRow(name)
	if err != nil {
		return types.Preset{}, err
	}

	var rsRows []rulesetRow
	if err := s.queries.Select("list-rulesets-by-preset", &rsRows, row.PresetID); err != nil {
		return types.Preset{}, fmt.Errorf("failed to list rulesets: %w", err)
	}

	preset := types.Preset{
		ID:   types.PresetID(row.PresetID),
		Name: row.Name,
	}
	for _, rs := range rsRows {
		var rules []types.Rule
		if err := json.Unmarshal([]byte(rs.Rules), &rules); err != nil {
			return types.Preset{}, fmt.Errorf("malformed rules for ruleset %s: %w", rs.RulesetID, err)
		}
		preset.Rulesets = append(preset.Rulesets, types.Ruleset{
			ID:     types.RulesetID(rs.RulesetID),
			Name:   rs.Name,
			Prefix: rs.Prefix,
			Rules:  rules,
		})
	}
	return preset, nil
}

// CreatePreset creates an empty preset.
func (s *Store) CreatePreset(name string) (types.PresetID, error) {
	if err := validateName(name); err != nil {
		return "", err
	}
	if _, err := s.getPresetRow(name); err == nil {
		return "", types.ErrPresetExists
	} else if !errors.Is(err, types.ErrPresetNotFound) {
		return "", err
	}

	id := types.NewPresetID()
	if _, err := s.queries.Exec("insert-preset", string(id), name, nowUTC()); err != nil {
		return "", fmt.Errorf("failed to create preset: %w", err)
	}
	s.log.Info().Str("preset", name).Msg("preset created")
	return id, nil
}

// DuplicatePreset copies a preset with all rulesets under a new name.
func (s *Store) DuplicatePreset(srcName, dstName string) error {
	src, err := s.GetPreset(srcName)
	if err != nil {
		return err
	}
	dstID, err := s.CreatePreset(dstName)
	if err != nil {
		return err
	}
	for i, rs := range src.Rulesets {
		rules, err := json.Marshal(rs.Rules)
		if err != nil {
			return fmt.Errorf("failed to encode rules: %w", err)
		}
		_, err = s.queries.Exec("insert-ruleset",
			string(types.NewRulesetID()), string(dstID), rs.Name, rs.Prefix, i, string(rules), nowUTC())
		if err != nil {
			return fmt.Errorf("failed to copy ruleset %q: %w", rs.Name, err)
		}
	}
	s.log.Info().Str("from", srcName).Str("to", dstName).Msg("preset duplicated")
	return nil
}

// RenamePreset changes a preset's name. The Default preset keeps its name
// so EnsureDefault stays meaningful across installs.
func (s *Store) RenamePreset(oldName, newName string) error {
	if oldName == types.DefaultPresetName {
		return types.ErrDefaultPresetImmutable
	}
	if err := validateName(newName); err != nil {
		return err
	}
	row, err := s.getPresetRow(oldName)
	if err != nil {
		return err
	}
	if _, err := s.getPresetRow(newName); err == nil {
		return types.ErrPresetExists
	} else if !errors.Is(err, types.ErrPresetNotFound) {
		return err
	}
	if _, err := s.queries.Exec("rename-preset", newName, row.PresetID); err != nil {
		return fmt.Errorf("failed to rename preset: %w", err)
	}
	s.log.Info().Str("from", oldName).Str("to", newName).Msg("preset renamed")
	return nil
}

// DeletePreset removes a preset and its rulesets. The Default preset and
// the last remaining preset are kept.
func (s *Store) DeletePreset(name string) error {
	if name == types.DefaultPresetName {
		return types.ErrDefaultPresetImmutable
	}
	row, err := s.getPresetRow(name)
	if err != nil {
		return err
	}
	var count int
	if err := s.queries.Get("count-presets", &count); err != nil {
		return fmt.Errorf("failed to count presets: %w", err)
	}
	if count <= 1 {
		return types.ErrLastPreset
	}
	if err := s.deletePresetRow(row.PresetID); err != nil {
		return err
	}
	s.log.Info().Str("preset", name).Msg("preset deleted")
	return nil
}

// AddRuleset appends an empty ruleset to a preset. Ruleset names are
// unique within a preset; rulesets are addressed by name, so a shadowed
// duplicate would be uneditable while still affecting compilation.
func (s *Store) AddRuleset(presetName, rulesetName, prefix string) (types.RulesetID, error) {
	if err := validateName(rulesetName); err != nil {
		return "", err
	}
	row, err := s.getPresetRow(presetName)
	if err != nil {
		return "", err
	}
	var existing []rulesetRow
	if err := s.queries.Select("list-rulesets-by-preset", &existing, row.PresetID); err != nil {
		return "", fmt.Errorf("failed to list rulesets: %w", err)
	}
	for _, rs := range existing {
		if rs.Name == rulesetName {
			return "", fmt.Errorf("%w: %s", types.ErrRulesetExists, rulesetName)
		}
	}
	var maxPos int
	if err := s.queries.Get("max-ruleset-position", &maxPos, row.PresetID); err != nil {
		return "", fmt.Errorf("failed to read ruleset positions: %w", err)
	}

	id := types.NewRulesetID()
	_, err = s.queries.Exec("insert-ruleset",
		string(id), row.PresetID, rulesetName, prefix, maxPos+1, "[]", nowUTC())
	if err != nil {
		return "", fmt.Errorf("failed to add ruleset: %w", err)
	}
	s.log.Info().Str("preset", presetName).Str("ruleset", rulesetName).Str("prefix", prefix).Msg("ruleset added")
	return id, nil
}

// RemoveRuleset deletes a ruleset and its rules.
func (s *Store) RemoveRuleset(presetName, rulesetName string) error {
	row, err := s.getRulesetRow(presetName, rulesetName)
	if err != nil {
		return err
	}
	if _, err := s.queries.Exec("delete-ruleset", row.RulesetID); err != nil {
		return fmt.Errorf("failed to delete ruleset: %w", err)
	}
	s.log.Info().Str("preset", presetName).Str("ruleset", rulesetName).Msg("ruleset removed")
	return nil
}

// SetRulesetPrefix changes the object-name prefix a ruleset is scoped to.
// An empty prefix scopes the ruleset to every object.
func (s *Store) SetRulesetPrefix(presetName, rulesetName, prefix string) error {
	row, err := s.getRulesetRow(presetName, rulesetName)
	if err != nil {
		return err
	}
	if _, err := s.queries.Exec("update-ruleset", row.Name, prefix, row.Rules, row.RulesetID); err != nil {
		return fmt.Errorf("failed to update ruleset: %w", err)
	}
	return nil
}

// AddRule appends a source-to-target rule to a ruleset. A second rule for
// the same source is rejected at edit time; edits are where users can
// still see what they meant (the engine would silently last-write-win).
func (s *Store) AddRule(presetName, rulesetName, source, target string) error {
	if err := validateName(source); err != nil {
		return err
	}
	if err := validateName(target); err != nil {
		return err
	}
	row, rules, err := s.getRulesetRules(presetName, rulesetName)
	if err != nil {
		return err
	}
	for _, rule := range rules {
		if rule.Source == source {
			return types.ErrRuleExists
		}
	}
	rules = append(rules, types.Rule{Source: source, Target: target})
	if err := s.writeRules(row, rules); err != nil {
		return err
	}
	s.log.Info().Str("ruleset", rulesetName).Str("source", source).Str("target", target).Msg("rule added")
	return nil
}

// RemoveRule deletes the rule for a source name, preserving the order of
// the remaining rules.
func (s *Store) RemoveRule(presetName, rulesetName, source string) error {
	row, rules, err := s.getRulesetRules(presetName, rulesetName)
	if err != nil {
		return err
	}
	kept := rules[:0]
	for _, rule := range rules {
		if rule.Source != source {
			kept = append(kept, rule)
		}
	}
	if len(kept) == len(rules) {
		return types.ErrRuleNotFound
	}
	if err := s.writeRules(row, kept); err != nil {
		return err
	}
	s.log.Info().Str("ruleset", rulesetName).Str("source", source).Msg("rule removed")
	return nil
}

func (s *Store) getPresetRow(name string) (presetRow, error) {
	var row presetRow
	err := s.queries.Get("get-preset-by-name", &row, name)
	if errors.Is(err, sql.ErrNoRows) {
		return presetRow{}, fmt.Errorf("%w: %s", types.ErrPresetNotFound, name)
	}
	if err != nil {
		return presetRow{}, fmt.Errorf("failed to load preset: %w", err)
	}
	return row, nil
}

func (s *Store) getRulesetRow(presetName, rulesetName string) (rulesetRow, error) {
	preset, err := s.getPresetRow(presetName)
	if err != nil {
		return rulesetRow{}, err
	}
	var rows []rulesetRow
	if err := s.queries.Select("list-rulesets-by-preset", &rows, preset.PresetID); err != nil {
		return rulesetRow{}, fmt.Errorf("failed to list rulesets: %w", err)
	}
	for _, row := range rows {
		if row.Name == rulesetName {
			return row, nil
		}
	}
	return rulesetRow{}, fmt.Errorf("%w: %s", types.ErrRulesetNotFound, rulesetName)
}

func (s *Store) getRulesetRules(presetName, rulesetName string) (rulesetRow, []types.Rule, error) {
	row, err := s.getRulesetRow(presetName, rulesetName)
	if err != nil {
		return rulesetRow{}, nil, err
	}
	var rules []types.Rule
	if err := json.Unmarshal([]byte(row.Rules), &rules); err != nil {
		return rulesetRow{}, nil, fmt.Errorf("malformed rules for ruleset %s: %w", row.RulesetID, err)
	}
	return row, rules, nil
}

func (s *Store) writeRules(row rulesetRow, rules []types.Rule) error {
	encoded, err := json.Marshal(rules)
	if err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	if _, err := s.queries.Exec("update-ruleset", row.Name, row.Prefix, string(encoded), row.RulesetID); err != nil {
		return fmt.Errorf("failed to update ruleset: %w", err)
	}
	return nil
}

// deletePresetRow removes a preset and its rulesets. The explicit ruleset
// delete keeps SQLite correct when foreign keys are off (the default).
func (s *Store) deletePresetRow(presetID string) error {
	if _, err := s.queries.Exec("delete-rulesets-by-preset", presetID); err != nil {
		return fmt.Errorf("failed to delete rulesets: %w", err)
	}
	if _, err := s.queries.Exec("delete-preset", presetID); err != nil {
		return fmt.Errorf("failed to delete preset: %w", err)
	}
	return nil
}
