// Package hostio reads and writes object weight documents, the JSON
// format host tools use to hand vertex groups and bone lists to the
// engine and receive them back after a transform.
package hostio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rigtools/regroup/internal/types"
)

// GroupDocument is one vertex group: a name plus sparse per-element
// weights keyed by element index.
type GroupDocument struct {
	Name    string        `json:"name"`
	Weights types.Weights `json:"weights"`
}

// Document is the weight document for one object. Bones is optional and
// carries the armature bone names when the caller wants them renamed in
// step with the groups.
type Document struct {
	ObjectName string          `json:"object_name"`
	Groups     []GroupDocument `json:"groups"`
	Bones      []string        `json:"bones,omitempty"`
}

// Read decodes and validates a weight document.
func Read(r io.Reader) (Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("failed to decode weight document: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// Load reads a weight document from a file.
func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open weight document: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Write encodes a weight document.
func Write(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode weight document: %w", err)
	}
	return nil
}

// Save writes a weight document to a file.
func Save(path string, doc Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create weight document: %w", err)
	}
	if err := Write(f, doc); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Validate checks the document invariants the engine relies on: non-empty
// unique group names within length bounds, and weights inside [0, 1].
func (d Document) Validate() error {
	seen := make(map[string]struct{}, len(d.Groups))
	for _, g := range d.Groups {
		if g.Name == "" {
			return fmt.Errorf("%w: group in object %q", types.ErrEmptyName, d.ObjectName)
		}
		if len(g.Name) > types.MaxNameLength {
			return fmt.Errorf("%w: group %q", types.ErrNameTooLong, g.Name)
		}
		if _, dup := seen[g.Name]; dup {
			return fmt.Errorf("%w: %q", types.ErrDuplicateGroupName, g.Name)
		}
		seen[g.Name] = struct{}{}
		for idx, w := range g.Weights {
			if w < 0 || w > types.MaxWeight {
				return fmt.Errorf("%w: group %q element %d weight %v", types.ErrWeightOutOfRange, g.Name, idx, w)
			}
		}
	}
	return nil
}

// ToWeightData converts a document into the engine's input shape.
func (d Document) ToWeightData() types.ObjectWeightData {
	data := types.ObjectWeightData{
		ObjectName: d.ObjectName,
		Groups:     make([]types.WeightMap, 0, len(d.Groups)),
	}
	for _, g := range d.Groups {
		data.Groups = append(data.Groups, types.WeightMap{
			Name:    g.Name,
			Weights: g.Weights,
		})
	}
	return data
}

// FromWeightData builds a document from an engine result, carrying the
// bone list through unchanged unless the caller replaces it.
func FromWeightData(data types.ObjectWeightData, bones []string) Document {
	doc := Document{
		ObjectName: data.ObjectName,
		Groups:     make([]GroupDocument, 0, len(data.Groups)),
		Bones:      bones,
	}
	for _, g := range data.Groups {
		doc.Groups = append(doc.Groups, GroupDocument{
			Name:    g.Name,
			Weights: g.Weights,
		})
	}
	return doc
}
