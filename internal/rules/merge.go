// internal/rules/merge.go
package rules

import "github.com/rigtools/regroup/internal/types"

/*
 * Merge transform.
 *
 * Applies a compiled index to an object's weight data, renaming groups
 * and merging those whose destinations coincide.
 *
 * Transform flow, per input group in original order:
 *   1. Resolve the group name; an unresolvable name passes through unchanged
 *   2. First group for a destination seeds a fresh accumulator and records
 *      insertion order
 *   3. Later groups for the same destination merge element-wise: the
 *      accumulated weight is min(MaxWeight, existing + incoming), an
 *      element missing from one side contributes 0
 *
 * Output order is first appearance of each destination name, and output
 * names are unique; merging is exactly what prevents duplicates.
 *
 * The transform is pure: input weight maps are never mutated and the
 * output shares no storage with the input, so callers may discard or
 * mutate either independently.
 *
 * Apply followed by reverse does not reproduce the original data when a
 * merge occurred. Two sources became one group and the reverse index is
 * single-valued, so one of the original groupings is unrecoverable. This
 * is an inherent property of merging, surfaced here rather than hidden.
 */

// Transform returns data with idx applied: groups renamed, same-destination
// groups merged by clamped weight summation.
func Transform(data types.ObjectWeightData, idx *Index) types.ObjectWeightData {
	order := make([]string, 0, len(data.Groups))
	accumulated := make(map[string]types.Weights, len(data.Groups))

	for _, group := range data.Groups {
		dest, ok := idx.Resolve(group.Name)
		if !ok {
			dest = group.Name
		}

		acc, exists := accumulated[dest]
		if !exists {
			accumulated[dest] = group.Weights.Clone()
			order = append(order, dest)
			continue
		}
		for elem, incoming := range group.Weights {
			sum := acc[elem] + incoming
			if sum > types.MaxWeight {
				sum = types.MaxWeight
			}
			acc[elem] = sum
		}
	}

	out := types.ObjectWeightData{
		ObjectName: data.ObjectName,
		Groups:     make([]types.WeightMap, 0, len(order)),
	}
	for _, dest := range order {
		out.Groups = append(out.Groups, types.WeightMap{
			Name:    dest,
			Weights: accumulated[dest],
		})
	}
	return out
}

// RenameBones applies idx to an ordered bone name list. Bones carry no
// weights, so a post-rename collision collapses to the first appearance
// of the destination name.
func RenameBones(bones []string, idx *Index) []string {
	seen := make(map[string]struct{}, len(bones))
	out := make([]string, 0, len(bones))
	for _, bone := range bones {
		dest, ok := idx.Resolve(bone)
		if !ok {
			dest = bone
		}
		if _, dup := seen[dest]; dup {
			continue
		}
		seen[dest] = struct{}{}
		out = append(out, dest)
	}
	return out
}
