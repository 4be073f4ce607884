// internal/rules/merge_test.go
package rules

import (
	"math"
	"testing"

	"github.com/rigtools/regroup/internal/types"
)

func applyIndex(rules []types.Rule, objectName string) *Index {
	return Compile(
		[]types.Ruleset{{Name: "test", Rules: rules}},
		objectName,
		types.DirectionApply,
	)
}

func TestTransform_MergeScenario(t *testing.T) {
	// Two sources collapse onto C; non-overlapping elements keep their
	// weights, overlapping element 0 sums.
	idx := applyIndex([]types.Rule{
		{Source: "A", Target: "C"},
		{Source: "B", Target: "C"},
	}, "Mesh")

	data := types.ObjectWeightData{
		ObjectName: "Mesh",
		Groups: []types.WeightMap{
			{Name: "A", Weights: types.Weights{0: 0.4, 1: 0.1}},
			{Name: "B", Weights: types.Weights{0: 0.3, 2: 0.2}},
		},
	}

	out := Transform(data, idx)
	if len(out.Groups) != 1 {
		t.Fatalf("len(Groups) = %v, want 1", len(out.Groups))
	}
	got := out.Groups[0]
	if got.Name != "C" {
		t.Errorf("Name = %v, want C", got.Name)
	}
	want := types.Weights{0: 0.7, 1: 0.1, 2: 0.2}
	if len(got.Weights) != len(want) {
		t.Fatalf("len(Weights) = %v, want %v", len(got.Weights), len(want))
	}
	for elem, w := range want {
		if math.Abs(got.Weights[elem]-w) > 1e-9 {
			t.Errorf("Weights[%d] = %v, want %v", elem, got.Weights[elem], w)
		}
	}
}

func TestTransform_WeightClamp(t *testing.T) {
	idx := applyIndex([]types.Rule{
		{Source: "A", Target: "C"},
		{Source: "B", Target: "C"},
	}, "Mesh")

	data := types.ObjectWeightData{
		ObjectName: "Mesh",
		Groups: []types.WeightMap{
			{Name: "A", Weights: types.Weights{0: 0.8}},
			{Name: "B", Weights: types.Weights{0: 0.9}},
		},
	}

	out := Transform(data, idx)
	if got := out.Groups[0].Weights[0]; got != types.MaxWeight {
		t.Errorf("Weights[0] = %v, want clamped to %v", got, types.MaxWeight)
	}
}

func TestTransform_PreservesFirstAppearanceOrder(t *testing.T) {
	idx := applyIndex([]types.Rule{
		{Source: "R_Hand", Target: "Hand"},
		{Source: "L_Hand", Target: "Hand"},
	}, "Mesh")

	data := types.ObjectWeightData{
		ObjectName: "Mesh",
		Groups: []types.WeightMap{
			{Name: "Head", Weights: types.Weights{0: 1.0}},
			{Name: "R_Hand", Weights: types.Weights{1: 0.5}},
			{Name: "Spine", Weights: types.Weights{2: 0.5}},
			{Name: "L_Hand", Weights: types.Weights{3: 0.5}},
		},
	}

	out := Transform(data, idx)
	wantOrder := []string{"Head", "Hand", "Spine"}
	if len(out.Groups) != len(wantOrder) {
		t.Fatalf("len(Groups) = %v, want %v", len(out.Groups), len(wantOrder))
	}
	for i, name := range wantOrder {
		if out.Groups[i].Name != name {
			t.Errorf("Groups[%d].Name = %v, want %v", i, out.Groups[i].Name, name)
		}
	}
}

func TestTransform_MergeIntoExistingUnmappedGroup(t *testing.T) {
	// Destination name already present in the input without a rule of its
	// own: the renamed group merges into it at its original position.
	idx := applyIndex([]types.Rule{{Source: "A", Target: "B"}}, "Mesh")

	data := types.ObjectWeightData{
		ObjectName: "Mesh",
		Groups: []types.WeightMap{
			{Name: "B", Weights: types.Weights{0: 0.5}},
			{Name: "A", Weights: types.Weights{0: 0.7}},
		},
	}

	out := Transform(data, idx)
	if len(out.Groups) != 1 {
		t.Fatalf("len(Groups) = %v, want 1", len(out.Groups))
	}
	if got := out.Groups[0].Weights[0]; got != 1.0 {
		t.Errorf("Weights[0] = %v, want 1.0 (0.5 + 0.7 clamped)", got)
	}
}

func TestTransform_NoRulesIsIdentity(t *testing.T) {
	idx := applyIndex(nil, "Mesh")
	data := types.ObjectWeightData{
		ObjectName: "Mesh",
		Groups: []types.WeightMap{
			{Name: "A", Weights: types.Weights{0: 0.5}},
			{Name: "B", Weights: nil},
		},
	}

	out := Transform(data, idx)
	if len(out.Groups) != 2 {
		t.Fatalf("len(Groups) = %v, want 2", len(out.Groups))
	}
	for i, g := range data.Groups {
		if out.Groups[i].Name != g.Name {
			t.Errorf("Groups[%d].Name = %v, want %v", i, out.Groups[i].Name, g.Name)
		}
	}
}

func TestTransform_DoesNotMutateInput(t *testing.T) {
	idx := applyIndex([]types.Rule{
		{Source: "A", Target: "C"},
		{Source: "B", Target: "C"},
	}, "Mesh")

	a := types.Weights{0: 0.4}
	b := types.Weights{0: 0.5}
	data := types.ObjectWeightData{
		ObjectName: "Mesh",
		Groups: []types.WeightMap{
			{Name: "A", Weights: a},
			{Name: "B", Weights: b},
		},
	}

	out := Transform(data, idx)
	out.Groups[0].Weights[7] = 0.25

	if a[0] != 0.4 || b[0] != 0.5 {
		t.Errorf("input weights mutated: a = %v, b = %v", a, b)
	}
	if _, leaked := a[7]; leaked {
		t.Error("output shares storage with input")
	}
}

func TestRenameBones(t *testing.T) {
	idx := applyIndex([]types.Rule{
		{Source: "L_Thigh", Target: "Leg_L"},
		{Source: "L_Shin", Target: "Leg_L"},
	}, "Rig")

	bones := []string{"Hips", "L_Thigh", "L_Shin", "Head"}
	out := RenameBones(bones, idx)

	want := []string{"Hips", "Leg_L", "Head"}
	if len(out) != len(want) {
		t.Fatalf("len = %v, want %v (%v)", len(out), len(want), out)
	}
	for i, name := range want {
		if out[i] != name {
			t.Errorf("out[%d] = %v, want %v", i, out[i], name)
		}
	}
}
