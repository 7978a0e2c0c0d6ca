package htn

// decomposeSequenceFrom decomposes every child from start onward, in order,
// requiring each to succeed against the world-state left behind by its
// predecessors' effects. A PausePlan child stops the walk, queues a resume
// bookmark pointing just past it, and reports Partial. Any child failing
// fails the whole sequence - the caller (a Selector's attemptChild, or
// Domain.FindPlan at the root) is responsible for rolling the plan and
// change-stack back to before this sequence was tried.
//
// Sequence is not itself a choice point: unlike Selector and UtilitySelector
// it never pushes an MTR entry, since it doesn't choose among alternatives -
// it runs its children unconditionally in the one order they were declared.
func (t *CompoundTask) decomposeSequenceFrom(ctx *Context, plan *[]*PrimitiveTask, start int) DecompositionStatus {
	for i := start; i < len(t.children); i++ {
		child := t.children[i]

		if child.Kind() == KindPausePlan {
			ctx.partialPlanQueue = append(ctx.partialPlanQueue, PartialPlanEntry{
				Task:        t,
				ResumeIndex: i + 1,
			})
			ctx.hasPausedPartialPlan = true
			return Partial
		}

		status := decomposeTask(ctx, child, plan)
		switch {
		case status == Succeeded:
			continue
		case status == Partial:
			// The child (a nested Sequence reached through a Compound,
			// typically) already queued its own resume bookmark. If
			// later siblings remain in this sequence, they still need to
			// run once that inner pause resumes, so queue this
			// sequence's own continuation behind it.
			if i+1 < len(t.children) {
				ctx.partialPlanQueue = append(ctx.partialPlanQueue, PartialPlanEntry{
					Task:        t,
					ResumeIndex: i + 1,
				})
				ctx.hasPausedPartialPlan = true
			}
			return Partial
		case status == Rejected && child.Kind() != KindPrimitive:
			// Propagate rather than collapse to Failed: a Compound (or Slot)
			// child's Rejected means this whole sequence
			// - and anything trying it as one option among several - can
			// never win, not merely that this particular attempt didn't pan
			// out. A Primitive's own invalid-precondition Rejected is the
			// ordinary "this step doesn't hold right now" case and still
			// just fails the sequence.
			return Rejected
		default:
			return Failed
		}
	}
	return Succeeded
}
