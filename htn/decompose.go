package htn

// decomposeTask dispatches a single child task to the decomposition logic
// for its Kind. It is the common entry point every compound decomposer
// calls for each child it considers, so compound nesting (a Selector inside
// a Sequence inside a UtilitySelector, and so on) just falls out of mutual
// recursion.
func decomposeTask(ctx *Context, task Task, plan *[]*PrimitiveTask) DecompositionStatus {
	switch task.Kind() {
	case KindPrimitive:
		p := task.(*PrimitiveTask)
		if !p.isValid(ctx) {
			if ctx.callbacks.OnNewTaskConditionFailed != nil {
				ctx.callbacks.OnNewTaskConditionFailed(p)
			}
			return Rejected
		}
		p.applyEffects(ctx)
		*plan = append(*plan, p)
		return Succeeded

	case KindSlot:
		s := task.(*Slot)
		if !s.isValid() {
			return Rejected
		}
		return decomposeTask(ctx, s.subtask, plan)

	case KindPausePlan:
		// Meaningful only as a direct Sequence child; Sequence special-cases
		// it before ever calling decomposeTask. Encountered any other way,
		// there is nowhere to queue a resume bookmark, so treat it as
		// unsatisfiable.
		return Rejected

	default:
		c := task.(*CompoundTask)
		if !c.isValid(ctx) {
			// A condition that doesn't hold right now is an ordinary
			// failure, not the structural "can never work" Rejected.
			return Failed
		}
		return c.decompose(ctx, plan)
	}
}

// decompose dispatches to the algorithm matching this CompoundTask's Kind.
func (t *CompoundTask) decompose(ctx *Context, plan *[]*PrimitiveTask) DecompositionStatus {
	switch t.kind {
	case KindSelector:
		return t.decomposeSelector(ctx, plan)
	case KindSequence:
		return t.decomposeSequenceFrom(ctx, plan, 0)
	case KindUtilitySelector:
		return t.decomposeUtilitySelector(ctx, plan)
	case KindGoapSequence:
		return t.decomposeGoap(ctx, plan)
	default:
		return Rejected
	}
}

// childConditionHolds checks a candidate's own gating condition without
// performing (or undoing) any decomposition - the cheap pre-check a compound
// decomposer uses to decide whether a child is even worth the cost of an
// MTR push and a full attemptChild call.
func childConditionHolds(ctx *Context, task Task) bool {
	switch task.Kind() {
	case KindPrimitive:
		return task.(*PrimitiveTask).isValid(ctx)
	case KindSlot:
		return task.(*Slot).isValid()
	case KindPausePlan:
		return true
	default:
		return task.(*CompoundTask).isValid(ctx)
	}
}

// attemptChild tries a single compound's candidate child at MTR choice-point
// index i, rolling back the plan and the change-stack if the attempt doesn't
// produce a Succeeded or Partial result. It is shared by Selector and
// UtilitySelector, whose backtracking semantics are otherwise identical -
// only candidate ordering differs.
//
// The returned status on a non-success attempt is the child's own status,
// not collapsed to Rejected: a Compound child's Rejected must propagate out
// of the whole Selector/UtilitySelector (the path can never win), while
// Failed only rules out this one candidate. The
// MTR entry this call pushed is popped only on Failed - a propagating
// Rejected is about to unwind all the way to Domain.FindPlan, which clears
// the MTR itself, so there is nothing left to look at it first.
func attemptChild(ctx *Context, child Task, index int, plan *[]*PrimitiveTask) DecompositionStatus {
	depthCheckpoint := ctx.GetChangeDepth()
	planCheckpoint := len(*plan)

	ctx.mtr = append(ctx.mtr, index)
	if ctx.debugEnabled {
		ctx.debugMTR = append(ctx.debugMTR, child.Name())
	}

	status := decomposeTask(ctx, child, plan)
	if status == Succeeded || status == Partial {
		return status
	}

	*plan = (*plan)[:planCheckpoint]
	ctx.TrimToDepth(depthCheckpoint)

	if status == Rejected {
		return Rejected
	}

	ctx.mtr = ctx.mtr[:len(ctx.mtr)-1]
	if ctx.debugEnabled && len(ctx.debugMTR) > 0 {
		ctx.debugMTR = ctx.debugMTR[:len(ctx.debugMTR)-1]
	}
	return Failed
}
