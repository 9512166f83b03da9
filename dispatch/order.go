package dispatch

import (
	"github.com/esimov/gesturecore/arbitration"
	"github.com/esimov/gesturecore/gesture"
)

// orderGestures returns candidates re-ordered so that, for any adjacent
// pair already linked by arbitration, the second moves ahead of the
// first when the engine's Pair hint for them is positive. Unrelated
// pairs and pairs with a hint of zero or less keep their relative
// order. The engine derives that hint from gesture identifiers, so the
// resulting order does not reflect which gesture cancels the other.
//
// This is a simple insertion pass rather than a general topological
// sort: the hint only orders pairs that have already been linked by a
// prior relationship-pairing call, and in practice only a handful of
// gestures ever share one actor.
func orderGestures(arbiter *arbitration.Engine, candidates []*gesture.Gesture) []*gesture.Gesture {
	if len(candidates) < 2 {
		return candidates
	}
	out := make([]*gesture.Gesture, len(candidates))
	copy(out, candidates)

	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			a, b := out[j-1], out[j]
			if !sharesRelationship(a, b) {
				break
			}
			if arbiter.Pair(a, b) <= 0 {
				break
			}
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

func sharesRelationship(a, b *gesture.Gesture) bool {
	for _, peer := range a.InRelationshipWith() {
		if peer == b {
			return true
		}
	}
	return false
}
