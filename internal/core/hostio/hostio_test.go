package hostio

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rigtools/regroup/internal/types"
)

func TestReadValidDocument(t *testing.T) {
	doc, err := Read(strings.NewReader(`{
	  "object_name": "Char1_Body",
	  "groups": [
	    {"name": "Thigh_L", "weights": {"0": 0.4, "12": 1.0}},
	    {"name": "Shin_L", "weights": {"0": 0.6}}
	  ],
	  "bones": ["Thigh_L", "Shin_L"]
	}`))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if doc.ObjectName != "Char1_Body" {
		t.Errorf("ObjectName = %q, want %q", doc.ObjectName, "Char1_Body")
	}
	if len(doc.Groups) != 2 {
		t.Fatalf("len(Groups) = %d, want 2", len(doc.Groups))
	}
	if got := doc.Groups[0].Weights[12]; got != 1.0 {
		t.Errorf("Groups[0].Weights[12] = %v, want 1.0", got)
	}
	if len(doc.Bones) != 2 {
		t.Errorf("len(Bones) = %d, want 2", len(doc.Bones))
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		doc     Document
		wantErr error
	}{
		{
			name: "valid",
			doc: Document{
				ObjectName: "Body",
				Groups: []GroupDocument{
					{Name: "A", Weights: types.Weights{0: 0.5}},
					{Name: "B", Weights: types.Weights{0: 0.5}},
				},
			},
			wantErr: nil,
		},
		{
			name: "empty group name",
			doc: Document{
				ObjectName: "Body",
				Groups:     []GroupDocument{{Name: ""}},
			},
			wantErr: types.ErrEmptyName,
		},
		{
			name: "name too long",
			doc: Document{
				ObjectName: "Body",
				Groups:     []GroupDocument{{Name: strings.Repeat("x", types.MaxNameLength+1)}},
			},
			wantErr: types.ErrNameTooLong,
		},
		{
			name: "duplicate group names",
			doc: Document{
				ObjectName: "Body",
				Groups: []GroupDocument{
					{Name: "A"},
					{Name: "A"},
				},
			},
			wantErr: types.ErrDuplicateGroupName,
		},
		{
			name: "negative weight",
			doc: Document{
				ObjectName: "Body",
				Groups:     []GroupDocument{{Name: "A", Weights: types.Weights{3: -0.1}}},
			},
			wantErr: types.ErrWeightOutOfRange,
		},
		{
			name: "weight above max",
			doc: Document{
				ObjectName: "Body",
				Groups:     []GroupDocument{{Name: "A", Weights: types.Weights{3: 1.1}}},
			},
			wantErr: types.ErrWeightOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadRejectsInvalidJSON(t *testing.T) {
	if _, err := Read(strings.NewReader("{oops")); err == nil {
		t.Error("Read() error = nil, want decode error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weights.json")
	doc := Document{
		ObjectName: "Char2_Body",
		Groups: []GroupDocument{
			{Name: "Thigh_L", Weights: types.Weights{0: 0.25, 7: 0.75}},
		},
		Bones: []string{"Thigh_L"},
	}

	if err := Save(path, doc); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got.ObjectName != doc.ObjectName {
		t.Errorf("ObjectName = %q, want %q", got.ObjectName, doc.ObjectName)
	}
	if len(got.Groups) != 1 || got.Groups[0].Weights[7] != 0.75 {
		t.Errorf("Groups = %+v, want %+v", got.Groups, doc.Groups)
	}
}

func TestWeightDataConversion(t *testing.T) {
	doc := Document{
		ObjectName: "Body",
		Groups: []GroupDocument{
			{Name: "A", Weights: types.Weights{0: 0.4}},
			{Name: "B", Weights: types.Weights{1: 0.6}},
		},
		Bones: []string{"A", "B"},
	}

	data := doc.ToWeightData()
	if data.ObjectName != "Body" {
		t.Errorf("ObjectName = %q, want %q", data.ObjectName, "Body")
	}
	if len(data.Groups) != 2 || data.Groups[1].Name != "B" {
		t.Fatalf("Groups = %+v, want two groups A, B", data.Groups)
	}

	back := FromWeightData(data, doc.Bones)
	if len(back.Groups) != 2 || back.Groups[0].Weights[0] != 0.4 {
		t.Errorf("FromWeightData() groups = %+v, want %+v", back.Groups, doc.Groups)
	}
	if len(back.Bones) != 2 {
		t.Errorf("len(Bones) = %d, want 2", len(back.Bones))
	}
}
