package htn

import "sort"

// decomposeUtilitySelector scores every child whose own condition currently
// holds, sorts them in descending-utility order (ties broken by declaration
// order, lowest index first), and decomposes the first candidate that can
// still beat LastMTR. That single attempt decides the result: if it fails,
// the UtilitySelector fails too, and lower-scored candidates are not tried.
func (t *CompoundTask) decomposeUtilitySelector(ctx *Context, plan *[]*PrimitiveTask) DecompositionStatus {
	type candidate struct {
		index   int
		utility float64
	}

	candidates := make([]candidate, 0, len(t.children))
	for i, child := range t.children {
		if !childConditionHolds(ctx, child) {
			continue
		}
		u := 0.0
		if i < len(t.utilities) && t.utilities[i] != nil {
			u = t.utilities[i](ctx)
		}
		candidates = append(candidates, candidate{index: i, utility: u})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		if candidates[a].utility != candidates[b].utility {
			return candidates[a].utility > candidates[b].utility
		}
		return candidates[a].index < candidates[b].index
	})

	for _, cand := range candidates {
		// Utility order need not track declaration-index order, so unlike
		// Selector a failed check here only rules out this one candidate,
		// not every later one in the sorted list.
		if len(ctx.lastMTR) > 0 && !canBeatLastMTR(ctx.mtr, cand.index, ctx.lastMTR) {
			continue
		}
		child := t.children[cand.index]
		return attemptChild(ctx, child, cand.index, plan)
	}
	// Mirrors Selector's end-of-loop outcome - exhausting the sorted
	// candidate list is an ordinary "nothing fit" result for whoever picked
	// this UtilitySelector as one of their own candidates, not a structural
	// Rejected.
	return Failed
}
