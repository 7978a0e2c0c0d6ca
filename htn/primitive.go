package htn

// OperatorFunc is the work a PrimitiveTask performs once it is the task
// currently executing in a plan. It is invoked once per tick until it
// returns Success or Failure.
type OperatorFunc func(ctx *Context) TaskStatus

// StopFunc is invoked when a primitive's operator is abandoned mid-run
// because a higher-priority plan replaced it, or because the agent was
// reset. It gives the operator a chance to release whatever it was holding
// (a resource lock, an in-flight request).
type StopFunc func(ctx *Context)

// AbortFunc is invoked when a primitive's operator is abandoned mid-run
// because of an explicit failure - its executing condition stopped holding,
// or the operator itself returned Failure - as opposed to being calmly
// superseded by a better plan. Distinct from StopFunc per the Stop/Abort
// cancellation split: a plan replacement is routine, a failure may need to
// unwind differently (e.g. release a lock AND log the failure reason).
type AbortFunc func(ctx *Context)

// PrimitiveTask is a leaf action: a set of preconditions that gate whether
// it may enter a plan, an executing condition re-checked every tick while it
// is running, the operator that does the work, and the effects applied on
// success.
type PrimitiveTask struct {
	baseTask

	conditions         []Predicate
	executingCondition Predicate
	operator           OperatorFunc
	stop               StopFunc
	abort              AbortFunc
	effects            []Effect
}

// NewPrimitiveTask builds a named PrimitiveTask with no conditions, operator,
// or effects configured yet; use the With* setters to fill it in.
func NewPrimitiveTask(name string) *PrimitiveTask {
	return &PrimitiveTask{baseTask: baseTask{name: name}}
}

func (t *PrimitiveTask) Kind() Kind { return KindPrimitive }

// WithCondition appends a precondition that must hold for this task to be
// selected during decomposition.
func (t *PrimitiveTask) WithCondition(p Predicate) *PrimitiveTask {
	t.conditions = append(t.conditions, p)
	return t
}

// WithExecutingCondition sets the condition re-checked every tick while this
// task is the one currently executing. A failure here aborts the task and
// forces a replan without running the operator that tick.
func (t *PrimitiveTask) WithExecutingCondition(p Predicate) *PrimitiveTask {
	t.executingCondition = p
	return t
}

// WithOperator sets the work performed while this task executes.
func (t *PrimitiveTask) WithOperator(op OperatorFunc) *PrimitiveTask {
	t.operator = op
	return t
}

// WithStop sets the cleanup hook run when this task's operator is abandoned
// by a replan that supersedes it with a new plan.
func (t *PrimitiveTask) WithStop(stop StopFunc) *PrimitiveTask {
	t.stop = stop
	return t
}

// WithAbort sets the cleanup hook run when this task's operator is abandoned
// because of an explicit failure (executing-condition or operator failure),
// as opposed to being superseded by a better plan. Falls back to the Stop
// hook if no Abort hook was configured, so a task that only cares about
// "I'm being abandoned, not why" can set just one.
func (t *PrimitiveTask) WithAbort(abort AbortFunc) *PrimitiveTask {
	t.abort = abort
	return t
}

// WithEffect appends an effect applied when this task's operator succeeds.
func (t *PrimitiveTask) WithEffect(e Effect) *PrimitiveTask {
	t.effects = append(t.effects, e)
	return t
}

// isValid reports whether every precondition holds against ctx. It is the
// sole gate a decomposer consults when deciding whether this primitive may
// be appended to the plan being built.
func (t *PrimitiveTask) isValid(ctx *Context) bool {
	for _, p := range t.conditions {
		if !evalPredicate(p, ctx) {
			return false
		}
	}
	return true
}

// checkExecutingCondition reports whether this task may continue executing
// this tick.
func (t *PrimitiveTask) checkExecutingCondition(ctx *Context) bool {
	return evalPredicate(t.executingCondition, ctx)
}

// applyEffects runs every configured effect against ctx, in order. While
// Planning, every effect runs unconditionally (that's how the change-stack
// ends up holding a PlanOnly/PlanAndExecute/Permanent entry for each one).
// While Executing - the Planner re-applying a just-succeeded task's effects
// - only PlanAndExecute effects actually run: Permanent effects were already
// committed into WorldState by Domain.FindPlan and need no re-write, and
// PlanOnly effects are planning-only decoration that must never reach
// WorldState at all.
func (t *PrimitiveTask) applyEffects(ctx *Context) {
	for _, e := range t.effects {
		if ctx.state == StateExecuting && e.Scope != ScopePlanAndExecute {
			continue
		}
		if e.Apply != nil {
			e.Apply(ctx)
		}
		if ctx.callbacks.OnApplyEffect != nil {
			ctx.callbacks.OnApplyEffect(e)
		}
	}
}

// Operator exposes the configured operator so the Planner can invoke it;
// nil means the task was never wired with one (an ErrOperatorMissing
// condition the Planner surfaces when it tries to run it).
func (t *PrimitiveTask) Operator() OperatorFunc {
	return t.operator
}

// Stop exposes the configured stop hook, if any.
func (t *PrimitiveTask) Stop() StopFunc {
	return t.stop
}

// Abort exposes the configured abort hook. If none was set, it falls back
// to the Stop hook (nil if neither was configured) so callers can always
// invoke "whatever cleanup this task has" without a nil check of their own.
func (t *PrimitiveTask) Abort() AbortFunc {
	if t.abort != nil {
		return t.abort
	}
	return AbortFunc(t.stop)
}
