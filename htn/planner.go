package htn

import "fmt"

// Callbacks is the fixed set of observability hooks a Planner invokes as it
// runs. Every field is optional; a nil field is simply never called. These
// exist purely for observation - nothing in the planning or execution
// algorithm depends on a callback's return value or even on it being set.
type Callbacks struct {
	OnNewPlan                             func(plan []*PrimitiveTask)
	OnReplacePlan                         func(oldPlan, newPlan []*PrimitiveTask)
	OnNewTask                             func(task *PrimitiveTask)
	OnNewTaskConditionFailed              func(task *PrimitiveTask)
	OnStopCurrentTask                     func(task *PrimitiveTask)
	OnCurrentTaskCompletedSuccessfully    func(task *PrimitiveTask)
	OnApplyEffect                         func(effect Effect)
	OnCurrentTaskFailed                   func(task *PrimitiveTask)
	OnCurrentTaskContinues                func(task *PrimitiveTask)
	OnCurrentTaskExecutingConditionFailed func(task *PrimitiveTask)
}

// Stats accumulates simple counters over a Planner's lifetime, surfaced for
// diagnostics and monitoring.
type Stats struct {
	TotalTicks          int
	TotalReplans        int
	TotalTasksSucceeded int
	TotalTasksFailed    int
}

// Planner drives a Domain/Context pair forward one tick at a time: it
// replans when the world has gone dirty or the current plan has run out,
// then advances whatever primitive is at the head of the plan.
type Planner struct {
	domain *Domain
	ctx    *Context

	plan  []*PrimitiveTask
	index int

	lastAnnounced  *PrimitiveTask
	lastErr        error
	lastPlanStatus DecompositionStatus

	// LastStatus is the outcome of the most recent task advance or replan
	// attempt: Success once a task completes, Failure once a task is
	// aborted (condition failure, operator failure) or a tick ends with
	// nothing running, nothing queued, and the last planning attempt was
	// Failed/Rejected, Continue while a task is still running.
	LastStatus TaskStatus

	stats Stats
}

// NewPlanner builds a Planner over domain and ctx, installing callbacks onto
// ctx so the decomposer can reach them too (OnApplyEffect and
// OnNewTaskConditionFailed fire from inside decomposition as well as from
// Tick).
func NewPlanner(domain *Domain, ctx *Context, callbacks Callbacks) *Planner {
	ctx.SetCallbacks(callbacks)
	return &Planner{domain: domain, ctx: ctx}
}

// Context returns the Planner's underlying Context.
func (p *Planner) Context() *Context {
	return p.ctx
}

// Plan returns every primitive task of the current plan, in execution
// order, and the index of the one about to run; entries before that index
// have already completed.
func (p *Planner) Plan() ([]*PrimitiveTask, int) {
	return p.plan, p.index
}

// CurrentTask returns the primitive task that would run on the next Tick,
// or nil if the planner is idle.
func (p *Planner) CurrentTask() *PrimitiveTask {
	if p.index >= len(p.plan) {
		return nil
	}
	return p.plan[p.index]
}

// Stats returns a snapshot of the Planner's run counters.
func (p *Planner) Stats() Stats {
	return p.stats
}

// LastError returns the last fatal error FindPlan surfaced (a not-initialized
// or missing-MTR-buffer condition), if any.
func (p *Planner) LastError() error {
	return p.lastErr
}

// Reset drops the current plan and every planning artifact on the Context,
// returning the Planner to a blank slate against the same Domain.
func (p *Planner) Reset() {
	if current := p.CurrentTask(); current != nil {
		if stop := current.Stop(); stop != nil {
			stop(p.ctx)
		}
	}
	p.plan = nil
	p.index = 0
	p.lastAnnounced = nil
	p.lastErr = nil
	p.lastPlanStatus = Rejected
	p.LastStatus = Continue
	p.ctx.ClearMTR()
	p.ctx.ClearLastMTR()
	p.ctx.ClearPartialPlanQueue()
}

// Tick advances the planner by one step with immediate-replan enabled. Use
// TickWithOptions to suppress the immediate-replan recursion.
func (p *Planner) Tick() error {
	return p.tick(true)
}

// TickWithOptions advances the planner by one step, with explicit control
// over whether an abort within this call may immediately attempt one more
// replan before returning.
func (p *Planner) TickWithOptions(allowImmediateReplan bool) error {
	return p.tick(allowImmediateReplan)
}

// tick does the actual work described on Tick/TickWithOptions: it first
// checks whether a replan is due (the world went dirty, or the current plan
// is empty/exhausted), then - if a primitive is queued up to run - re-checks
// its preconditions (if newly dequeued) or executing condition (if already
// running) and advances its operator by one step. allowImmediateReplan lets
// a tick that aborts a task immediately attempt one more replan in the same
// call rather than waiting for the next external Tick; the inner recursion
// always passes false so a pathological domain can't recurse more than once
// per call.
func (p *Planner) tick(allowImmediateReplan bool) error {
	p.stats.TotalTicks++
	replanned, err := p.maybeReplan()
	if err != nil {
		return err
	}

	if p.index >= len(p.plan) {
		if !replanned && (p.lastPlanStatus == Failed || p.lastPlanStatus == Rejected) {
			p.LastStatus = Failure
		}
		return nil
	}

	task := p.plan[p.index]
	if task != p.lastAnnounced {
		p.lastAnnounced = task
		if cb := p.ctx.callbacks.OnNewTask; cb != nil {
			cb(task)
		}
		if !task.isValid(p.ctx) {
			if cb := p.ctx.callbacks.OnNewTaskConditionFailed; cb != nil {
				cb(task)
			}
			p.abortCurrentPlan(task)
			p.LastStatus = Failure
			return nil
		}
	}

	if !task.checkExecutingCondition(p.ctx) {
		if cb := p.ctx.callbacks.OnCurrentTaskExecutingConditionFailed; cb != nil {
			cb(task)
		}
		p.abortCurrentPlan(task)
		p.LastStatus = Failure
		if allowImmediateReplan {
			return p.tick(false)
		}
		return nil
	}

	op := task.Operator()
	if op == nil {
		p.abortCurrentPlan(task)
		p.LastStatus = Failure
		return fmt.Errorf("htn: task %q: %w", task.Name(), ErrOperatorMissing)
	}

	switch status := op(p.ctx); status {
	case Success:
		task.applyEffects(p.ctx)
		p.stats.TotalTasksSucceeded++
		p.LastStatus = Success
		if cb := p.ctx.callbacks.OnCurrentTaskCompletedSuccessfully; cb != nil {
			cb(task)
		}
		p.index++
		p.lastAnnounced = nil
		if p.index >= len(p.plan) {
			p.plan = nil
			p.index = 0
			p.ctx.ClearLastMTR()
			p.ctx.SetDirty(false)
			// An immediate same-tick replan here too would let a trivially
			// always-succeeding task (a no-op "idle" leaf, say) re-select
			// and re-run itself indefinitely within one external Tick call
			// whenever nothing else protects it via a non-empty MTR. The
			// executing-condition-failure and operator-Failure branches
			// below don't share that risk (an aborted task doesn't
			// immediately re-qualify the same way), so they still recurse;
			// a freshly-exhausted plan instead waits for the next external
			// Tick, at the cost of one tick of latency.
		}
	case Failure:
		p.stats.TotalTasksFailed++
		p.LastStatus = Failure
		if cb := p.ctx.callbacks.OnCurrentTaskFailed; cb != nil {
			cb(task)
		}
		p.abortCurrentPlan(task)
		if allowImmediateReplan {
			return p.tick(false)
		}
	default: // Continue
		p.LastStatus = Continue
		if cb := p.ctx.callbacks.OnCurrentTaskContinues; cb != nil {
			cb(task)
		}
	}
	return nil
}

// abortCurrentPlan invokes task's Abort hook (condition/operator failure -
// as opposed to Stop, which fires only when a replan supersedes a plan that
// was otherwise running fine) and clears the plan, LastMTR, and any pending
// partial-plan bookmark. It deliberately leaves IsDirty untouched: the next
// tick's replan gate already fires because the plan is now empty, and this
// was not a world-state change, so it must not be mistaken for one by the
// dirty-while-paused stash logic in maybeReplan.
func (p *Planner) abortCurrentPlan(task *PrimitiveTask) {
	if task != nil {
		if abort := task.Abort(); abort != nil {
			abort(p.ctx)
		}
	}
	p.plan = nil
	p.index = 0
	p.lastAnnounced = nil
	p.ctx.ClearLastMTR()
	p.ctx.ClearPartialPlanQueue()
}

// maybeReplan runs a planning pass if the world has gone dirty or the
// current plan ran out, and reports whether a new plan was adopted, along
// with any fatal error FindPlan returned (also kept for LastError). If the
// world went dirty while a partial plan was paused, it stashes the paused
// queue and shifts the in-progress MTR up as LastMTR first, so the fresh
// decomposition this triggers is held to the same replan-stability
// discipline as any other replan: it must produce an MTR that beats the
// paused plan's priority, or the stash is restored unchanged.
func (p *Planner) maybeReplan() (bool, error) {
	shouldReplan := p.ctx.IsDirty() || p.index >= len(p.plan)
	if !shouldReplan {
		return false, nil
	}

	stashed := false
	var stashedQueue []PartialPlanEntry
	if p.ctx.IsDirty() && p.ctx.HasPausedPartialPlan() {
		stashedQueue = p.ctx.PartialPlanQueue()
		stashed = true
		p.ctx.ClearPartialPlanQueue()
		p.ctx.ShiftMTR()
	}
	p.ctx.SetDirty(false)

	newPlan, status, err := p.domain.FindPlan(p.ctx)
	if err != nil {
		p.lastErr = err
		if stashed {
			p.ctx.restorePartialPlan(stashedQueue)
			p.ctx.RestoreMTR()
		}
		return false, err
	}
	p.lastPlanStatus = status

	if status != Succeeded && status != Partial {
		if stashed {
			p.ctx.restorePartialPlan(stashedQueue)
			p.ctx.RestoreMTR()
		}
		return false, nil
	}

	p.stats.TotalReplans++
	old := p.plan
	oldCurrent := p.CurrentTask()
	p.plan = newPlan
	p.index = 0
	p.ctx.ShiftMTR()

	if oldCurrent != nil {
		if stop := oldCurrent.Stop(); stop != nil {
			stop(p.ctx)
		}
		if cb := p.ctx.callbacks.OnStopCurrentTask; cb != nil {
			cb(oldCurrent)
		}
	}
	p.lastAnnounced = nil

	if len(old) == 0 && oldCurrent == nil {
		if cb := p.ctx.callbacks.OnNewPlan; cb != nil {
			cb(newPlan)
		}
	} else if cb := p.ctx.callbacks.OnReplacePlan; cb != nil {
		cb(old, newPlan)
	}
	return true, nil
}
