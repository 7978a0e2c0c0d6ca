package htn

// Predicate is a read-only guard evaluated against a Context during
// decomposition or replanning. A nil Predicate is vacuously true: tasks that
// don't need a condition simply omit one.
type Predicate func(ctx *Context) bool

// evalPredicate treats a nil Predicate as satisfied, so callers never need to
// nil-check before evaluating.
func evalPredicate(p Predicate, ctx *Context) bool {
	if p == nil {
		return true
	}
	return p(ctx)
}
