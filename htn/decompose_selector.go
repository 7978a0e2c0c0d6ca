package htn

// decomposeSelector tries each child in declaration order and commits to the
// first one whose own condition holds and whose decomposition succeeds (or
// pauses). Every attempt is a genuine choice point, so each one pushes and,
// on failure, pops its own MTR entry.
func (t *CompoundTask) decomposeSelector(ctx *Context, plan *[]*PrimitiveTask) DecompositionStatus {
	for i, child := range t.children {
		// Children are tried in ascending index order, and canBeatLastMTR is
		// monotonically non-increasing in the candidate index at a fixed
		// depth, so the first index that can no longer beat LastMTR means
		// every later sibling can't either: stop here rather than trying
		// (and rolling back) every remaining candidate in a plan that is
		// doomed to be Rejected by Domain.FindPlan's own guard anyway.
		if len(ctx.lastMTR) > 0 && !canBeatLastMTR(ctx.mtr, i, ctx.lastMTR) {
			return Rejected
		}
		if !childConditionHolds(ctx, child) {
			continue
		}
		switch status := attemptChild(ctx, child, i, plan); status {
		case Succeeded, Partial:
			return status
		case Rejected:
			// A Compound child's Rejected means this whole path can never
			// win (e.g. it can no longer beat LastMTR); propagate rather
			// than waste time trying later siblings that would just be
			// rejected the same way.
			return Rejected
		}
	}
	// Every sibling was either invalid or failed - this is a normal,
	// try-the-next-option outcome for whoever is decomposing this Selector
	// as one of their own children, not the "can never work" signal
	// Rejected carries.
	return Failed
}
