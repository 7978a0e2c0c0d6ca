package htn

// EffectFunc mutates a key in the Context's world-state (speculatively while
// Planning, directly while Executing) to reflect what a primitive task is
// expected to accomplish.
type EffectFunc func(ctx *Context)

// Effect is a single named world-state mutation attached to a PrimitiveTask.
// Name exists purely for debug traces (decomposition logs, MTR traces) and
// plays no role in matching or equality. Scope governs whether this effect
// still runs once execution (as opposed to planning) reaches it: per the
// GLOSSARY, only PlanAndExecute effects are re-applied at execution time -
// Permanent was already committed to WorldState by Domain.FindPlan, and
// PlanOnly effects exist only during planning and must never reach
// WorldState at all.
type Effect struct {
	Name  string
	Scope Scope
	Apply EffectFunc
}

// NewEffect builds an Effect that sets a single world-state key to a fixed
// value under the given scope. This covers the common case; Effects with
// more elaborate logic can be built directly from an EffectFunc.
func NewEffect(name, key string, value interface{}, scope Scope) Effect {
	return Effect{
		Name:  name,
		Scope: scope,
		Apply: func(ctx *Context) {
			ctx.Set(key, value, true, scope)
		},
	}
}
