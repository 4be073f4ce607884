// internal/rules/compile.go
package rules

import (
	"strings"

	"github.com/rigtools/regroup/internal/types"
)

/*
 * Index compilation.
 *
 * Compiles an ordered sequence of rulesets into a flat name lookup for one
 * target object and one direction.
 *
 * Compilation workflow:
 *   1. Filter rulesets: keep those with an empty prefix or whose prefix
 *      matches the start of the object name (case-insensitive, matching
 *      host naming conventions where "char1_Arm" and "Char1_arm" are the
 *      same rig)
 *   2. Fold the filtered rulesets in list order into a single map
 *   3. apply direction: map[source] = target
 *      reverse direction: map[target] = source
 *
 * Last-write-wins: a later assignment for the same key overwrites an
 * earlier one, across the whole filtered sequence, not just within one
 * ruleset. This is the documented tie-break policy for both directions.
 *
 * Reverse is deliberately a separate single-valued fold rather than an
 * inversion of the forward map: several sources can collapse onto one
 * target under apply, so a literal inverse would be multi-valued. The
 * reverse index maps a merged destination back to whichever source was
 * written last during compilation. Lossy by design; see Transform.
 *
 * Rules with an empty source or target are skipped defensively rather
 * than failing the whole index; hosts are expected to reject them at
 * edit time.
 */

// Index is a compiled, ephemeral name lookup. Build one per operation with
// Compile; it holds no references to the rulesets it was built from.
type Index struct {
	direction types.Direction
	mapping   map[string]string
}

// Compile builds the lookup for objectName from rulesets in list order.
func Compile(rulesets []types.Ruleset, objectName string, direction types.Direction) *Index {
	idx := &Index{
		direction: direction,
		mapping:   make(map[string]string),
	}

	objectLower := strings.ToLower(objectName)
	for _, rs := range rulesets {
		if rs.Prefix != "" && !strings.HasPrefix(objectLower, strings.ToLower(rs.Prefix)) {
			continue
		}
		for _, rule := range rs.Rules {
			if rule.Source == "" || rule.Target == "" {
				continue
			}
			if direction == types.DirectionReverse {
				idx.mapping[rule.Target] = rule.Source
			} else {
				idx.mapping[rule.Source] = rule.Target
			}
		}
	}

	return idx
}

// Resolve returns the destination for name under the index's direction.
// The second return is false when no rule applies; callers leave the
// name unchanged in that case.
func (idx *Index) Resolve(name string) (string, bool) {
	dest, ok := idx.mapping[name]
	return dest, ok
}

// Direction returns the direction the index was compiled for.
func (idx *Index) Direction() types.Direction {
	return idx.direction
}

// Len returns the number of resolvable names in the index.
func (idx *Index) Len() int {
	return len(idx.mapping)
}
