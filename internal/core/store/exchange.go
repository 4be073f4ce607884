package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rigtools/regroup/internal/types"
)

/*
   Preset exchange format

   Presets travel between installs as a single JSON document. On import,
   an incoming preset whose name already exists in the store replaces the
   stored one wholesale; rulesets are never merged rule-by-rule, because a
   half-old half-new ruleset is worse than either version. Presets absent
   from the document are left untouched.
*/

// ExchangeDocument is the root of the preset exchange format.
type ExchangeDocument struct {
	Presets []PresetDocument `json:"presets"`
}

// PresetDocument is one preset in the exchange format.
type PresetDocument struct {
	Name     string            `json:"name"`
	Rulesets []RulesetDocument `json:"rulesets"`
}

// RulesetDocument is one ruleset in the exchange format. Rules keep their
// document order, which is the order the engine folds them in.
type RulesetDocument struct {
	Name   string       `json:"name"`
	Prefix string       `json:"prefix,omitempty"`
	Rules  []types.Rule `json:"rules"`
}

// Export writes the named presets as an exchange document. With no names
// given, every preset is exported.
func (s *Store) Export(w io.Writer, names ...string) error {
	if len(names) == 0 {
		all, err := s.ListPresets()
		if err != nil {
			return err
		}
		names = all
	}

	doc := ExchangeDocument{Presets: make([]PresetDocument, 0, len(names))}
	for _, name := range names {
		preset, err := s.GetPreset(name)
		if err != nil {
			return err
		}
		doc.Presets = append(doc.Presets, presetToDocument(preset))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// Import reads an exchange document and stores its presets, replacing any
// stored preset with the same name. Returns the number of presets imported.
func (s *Store) Import(r io.Reader) (int, error) {
	var doc ExchangeDocument
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return 0, fmt.Errorf("failed to decode exchange document: %w", err)
	}

	imported := 0
	for _, pd := range doc.Presets {
		if err := validateName(pd.Name); err != nil {
			return imported, fmt.Errorf("preset %q: %w", pd.Name, err)
		}
		if err := s.replacePreset(pd); err != nil {
			return imported, fmt.Errorf("preset %q: %w", pd.Name, err)
		}
		imported++
	}
	s.log.Info().Int("presets", imported).Msg("presets imported")
	return imported, nil
}

func presetToDocument(preset types.Preset) PresetDocument {
	pd := PresetDocument{
		Name:     preset.Name,
		Rulesets: make([]RulesetDocument, 0, len(preset.Rulesets)),
	}
	for _, rs := range preset.Rulesets {
		rules := rs.Rules
		if rules == nil {
			rules = []types.Rule{}
		}
		pd.Rulesets = append(pd.Rulesets, RulesetDocument{
			Name:   rs.Name,
			Prefix: rs.Prefix,
			Rules:  rules,
		})
	}
	return pd
}

// replacePreset swaps a stored preset for its incoming document. The
// document is validated and encoded in full before anything is written,
// and the delete+insert runs in one transaction, so a bad document never
// costs the user the preset they already had.
func (s *Store) replacePreset(pd PresetDocument) error {
	encoded := make([]string, len(pd.Rulesets))
	seen := make(map[string]struct{}, len(pd.Rulesets))
	for i, rsd := range pd.Rulesets {
		if err := validateName(rsd.Name); err != nil {
			return fmt.Errorf("ruleset %q: %w", rsd.Name, err)
		}
		if _, dup := seen[rsd.Name]; dup {
			return fmt.Errorf("%w: %s", types.ErrRulesetExists, rsd.Name)
		}
		seen[rsd.Name] = struct{}{}
		rules := rsd.Rules
		if rules == nil {
			rules = []types.Rule{}
		}
		buf, err := json.Marshal(rules)
		if err != nil {
			return fmt.Errorf("failed to encode rules: %w", err)
		}
		encoded[i] = string(buf)
	}

	existing, err := s.getPresetRow(pd.Name)
	replace := false
	switch {
	case err == nil:
		replace = true
	case errors.Is(err, types.ErrPresetNotFound):
		// fresh import
	default:
		return err
	}

	tx, err := s.queries.DB().Beginx()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if replace {
		if _, err := s.queries.ExecTx(tx, "delete-rulesets-by-preset", existing.PresetID); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to delete rulesets: %w", err)
		}
		if _, err := s.queries.ExecTx(tx, "delete-preset", existing.PresetID); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to delete preset: %w", err)
		}
	}

	id := types.NewPresetID()
	if _, err := s.queries.ExecTx(tx, "insert-preset", string(id), pd.Name, nowUTC()); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create preset: %w", err)
	}
	for i, rsd := range pd.Rulesets {
		_, err := s.queries.ExecTx(tx, "insert-ruleset",
			string(types.NewRulesetID()), string(id), rsd.Name, rsd.Prefix, i, encoded[i], nowUTC())
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to store ruleset %q: %w", rsd.Name, err)
		}
	}
	return tx.Commit()
}
