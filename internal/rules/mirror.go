// internal/rules/mirror.go
package rules

import (
	"strings"

	"github.com/rigtools/regroup/internal/types"
)

// Mirror swaps a left/right marker prefix on a single name. The marker
// match is a case-sensitive exact prefix. Returns the swapped name and
// true, or the unchanged name and false when neither marker matches, so
// callers can tell the user nothing happened.
//
// Mirroring twice returns the original name, provided the markers pass
// ValidateMarkers (equal markers or markers that prefix each other would
// break the round trip).
func Mirror(name, left, right string) (string, bool) {
	if left == "" || right == "" {
		return name, false
	}
	switch {
	case strings.HasPrefix(name, left):
		return right + name[len(left):], true
	case strings.HasPrefix(name, right):
		return left + name[len(right):], true
	}
	return name, false
}

// ValidateMarkers rejects marker pairs that cannot round-trip under Mirror.
func ValidateMarkers(left, right string) error {
	if left == "" || right == "" {
		return types.ErrInvalidMarkers
	}
	if strings.HasPrefix(left, right) || strings.HasPrefix(right, left) {
		return types.ErrInvalidMarkers
	}
	return nil
}
