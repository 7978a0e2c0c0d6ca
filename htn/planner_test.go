package htn

import "testing"

func buildGuardDomain() (*Domain, *Context) {
	ctx := NewContext(map[string]interface{}{"hp": 100, "enemyVisible": false})
	ctx.Init()

	flee := NewPrimitiveTask("flee").
		WithCondition(key("hp", func(v interface{}) bool { return v.(int) < 20 })).
		WithOperator(func(ctx *Context) TaskStatus { return Success })

	attack := NewPrimitiveTask("attack").
		WithCondition(key("enemyVisible", func(v interface{}) bool { return v.(bool) })).
		WithOperator(func(ctx *Context) TaskStatus { return Success }).
		WithEffect(NewEffect("enemyDown", "enemyVisible", false, ScopePermanent))

	patrol := NewPrimitiveTask("patrol").
		WithOperator(func(ctx *Context) TaskStatus { return Success })

	root := NewSelector("guard")
	root.AddChild(flee)
	root.AddChild(attack)
	root.AddChild(patrol)

	return NewDomain("guard", root), ctx
}

func TestPlannerProducesAndRunsAPlan(t *testing.T) {
	domain, ctx := buildGuardDomain()
	var ran []string
	planner := NewPlanner(domain, ctx, Callbacks{
		OnNewTask: func(task *PrimitiveTask) { ran = append(ran, task.Name()) },
	})

	if err := planner.Tick(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ran) != 1 || ran[0] != "patrol" {
		t.Fatalf("expected patrol selected with no enemy visible, got %v", ran)
	}
}

func TestPlannerReplansWhenWorldGoesDirty(t *testing.T) {
	domain, ctx := buildGuardDomain()
	var ran []string
	planner := NewPlanner(domain, ctx, Callbacks{
		OnNewTask: func(task *PrimitiveTask) { ran = append(ran, task.Name()) },
	})

	if err := planner.Tick(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ran) != 1 || ran[0] != "patrol" {
		t.Fatalf("expected patrol first, got %v", ran)
	}

	ctx.Set("enemyVisible", true, true, ScopePermanent)
	if err := planner.Tick(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ran) != 2 || ran[1] != "attack" {
		t.Fatalf("expected replan to attack once an enemy appears, got %v", ran)
	}
}

func TestPlannerReplanStabilityRejectsEqualOrWorseMTR(t *testing.T) {
	ctx := NewContext(map[string]interface{}{})
	ctx.Init()

	ticks := 0
	stopped := false
	longRunning := NewPrimitiveTask("longRunning").
		WithOperator(func(ctx *Context) TaskStatus {
			ticks++
			if ticks < 3 {
				return Continue
			}
			return Success
		}).
		WithStop(func(ctx *Context) { stopped = true })

	root := NewSelector("guard")
	root.AddChild(longRunning)
	domain := NewDomain("guard", root)
	planner := NewPlanner(domain, ctx, Callbacks{})

	if err := planner.Tick(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	initialStats := planner.Stats()
	if initialStats.TotalReplans != 1 {
		t.Fatalf("expected exactly one replan to adopt the initial plan, got %+v", initialStats)
	}

	// Mark the world dirty without changing anything the domain's
	// condition actually depends on: the only candidate decomposition is
	// the same longRunning task at the same MTR, so the replan-stability
	// guard must reject the redundant replan and leave the in-flight task
	// running untouched.
	ctx.SetDirty(true)
	if err := planner.Tick(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if planner.Stats().TotalReplans != initialStats.TotalReplans {
		t.Errorf("expected the identical-MTR replan to be rejected, got %+v", planner.Stats())
	}
	if stopped {
		t.Error("expected the in-flight task to keep running, not be stopped by a rejected replan")
	}
	if ticks != 2 {
		t.Errorf("expected the operator to have been invoked exactly twice so far, got %d", ticks)
	}
}

func TestPlannerSurfacesOperatorFailure(t *testing.T) {
	ctx := NewContext(map[string]interface{}{})
	ctx.Init()

	failing := NewPrimitiveTask("failing").WithOperator(func(ctx *Context) TaskStatus { return Failure })
	root := NewSequence("root")
	root.AddChild(failing)
	domain := NewDomain("failing-domain", root)

	var failed bool
	planner := NewPlanner(domain, ctx, Callbacks{
		OnCurrentTaskFailed: func(task *PrimitiveTask) { failed = true },
	})

	if err := planner.Tick(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := planner.Tick(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !failed {
		t.Error("expected OnCurrentTaskFailed to fire")
	}
	if planner.Stats().TotalTasksFailed == 0 {
		t.Error("expected TotalTasksFailed to be incremented")
	}
}

func TestPlannerContinueOperatorDoesNotAdvance(t *testing.T) {
	ctx := NewContext(map[string]interface{}{})
	ctx.Init()

	ticks := 0
	longRunning := NewPrimitiveTask("longRunning").WithOperator(func(ctx *Context) TaskStatus {
		ticks++
		if ticks < 3 {
			return Continue
		}
		return Success
	})
	root := NewSequence("root")
	root.AddChild(longRunning)
	domain := NewDomain("long-domain", root)
	planner := NewPlanner(domain, ctx, Callbacks{})

	for i := 0; i < 3; i++ {
		if err := planner.Tick(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ticks != 3 {
		t.Errorf("expected the operator invoked exactly 3 times before succeeding, got %d", ticks)
	}
	if planner.CurrentTask() != nil {
		t.Error("expected the plan to be exhausted once the operator succeeds")
	}
}

func TestPlannerPlanOnlyEffectNeverReachesWorldStateAtExecution(t *testing.T) {
	ctx := NewContext(map[string]interface{}{"marker": false})
	ctx.Init()

	mark := NewPrimitiveTask("mark").
		WithOperator(func(ctx *Context) TaskStatus { return Success }).
		WithEffect(NewEffect("setMarker", "marker", true, ScopePlanOnly))

	root := NewSequence("root")
	root.AddChild(mark)
	domain := NewDomain("plan-only-domain", root)
	planner := NewPlanner(domain, ctx, Callbacks{})

	if err := planner.Tick(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := planner.Tick(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if v := ctx.WorldStateSnapshot()["marker"]; v != false {
		t.Errorf("expected a PlanOnly effect to never reach WorldState at execution, got marker=%v", v)
	}
	if ctx.IsDirty() {
		t.Error("expected a discarded PlanOnly effect to not mark the context dirty")
	}
}

func TestDomainFindPlanErrorsWithoutInit(t *testing.T) {
	ctx := NewContext(map[string]interface{}{})
	root := NewSequence("root")
	domain := NewDomain("uninitialized", root)

	if _, _, err := domain.FindPlan(ctx); err != ErrContextNotInitialized {
		t.Errorf("expected ErrContextNotInitialized, got %v", err)
	}
}

func TestDomainFindPlanErrorsWithMissingMTRBuffer(t *testing.T) {
	ctx := NewContext(map[string]interface{}{})
	ctx.Init()
	ctx.NullifyMTRBuffer()

	root := NewSequence("root")
	domain := NewDomain("nulled", root)

	if _, _, err := domain.FindPlan(ctx); err != ErrMTRBufferMissing {
		t.Errorf("expected ErrMTRBufferMissing, got %v", err)
	}
}
