package htn

// UtilityFunc scores how desirable a UtilitySelector child is right now;
// higher wins.
type UtilityFunc func(ctx *Context) float64

// GoapCostFunc reports the step cost of taking a GoapSequence action from
// whatever state the search has reached.
type GoapCostFunc func(ctx *Context) float64

// GoapHeuristicFunc estimates the remaining cost to the goal from the
// current state. Used only when a GoapSequence is configured with a
// heuristic weight of at least 1 (an admissible-heuristic best-first
// search); otherwise the search runs pure Dijkstra/uniform-cost.
type GoapHeuristicFunc func(ctx *Context) float64

// GoapGenerator produces additional candidate actions on demand, dynamically,
// given the current search state - for cases where the action set cannot be
// enumerated statically (e.g. "craft any item the recipe book knows about").
type GoapGenerator func(ctx *Context) []Task

// CompoundTask is the single struct backing all four decomposer tags
// (Selector, Sequence, UtilitySelector, GoapSequence); Kind says which
// algorithm CompoundTask.decompose dispatches to. This mirrors the
// tagged-union style the rest of the package uses instead of one type per
// tag.
type CompoundTask struct {
	baseTask
	kind      Kind
	condition Predicate
	children  []Task

	// UtilitySelector only.
	utilities []UtilityFunc

	// GoapSequence only.
	goal            []Predicate
	costs           []GoapCostFunc
	generators      []GoapGenerator
	heuristic       GoapHeuristicFunc
	heuristicWeight float64
	maxGoapNodes    int
}

func newCompound(kind Kind, name string) *CompoundTask {
	return &CompoundTask{baseTask: baseTask{name: name}, kind: kind}
}

// NewSelector builds a Selector: tries each child in order, committing to
// the first whose condition holds and whose decomposition succeeds.
func NewSelector(name string) *CompoundTask {
	return newCompound(KindSelector, name)
}

// NewSequence builds a Sequence: decomposes every child in order, requiring
// every condition to hold with the prior siblings' effects applied, and
// failing (discarding the whole partial plan) if any child fails.
func NewSequence(name string) *CompoundTask {
	return newCompound(KindSequence, name)
}

// NewUtilitySelector builds a UtilitySelector: scores every eligible child
// with its utility function and commits to the highest scorer, the lowest
// child index breaking ties.
func NewUtilitySelector(name string) *CompoundTask {
	return newCompound(KindUtilitySelector, name)
}

// NewGoapSequence builds a GoapSequence: a goal-oriented-action-planning
// search over its children (and any dynamically generated candidates) that
// produces a sub-plan reaching the configured goal at minimum cost.
func NewGoapSequence(name string) *CompoundTask {
	return newCompound(KindGoapSequence, name)
}

func (t *CompoundTask) Kind() Kind { return t.kind }

// WithCondition sets the precondition gating whether this compound task may
// be considered at all.
func (t *CompoundTask) WithCondition(p Predicate) *CompoundTask {
	t.condition = p
	return t
}

func (t *CompoundTask) isValid(ctx *Context) bool {
	return evalPredicate(t.condition, ctx)
}

// AddChild appends a child task, rejecting an attempt to add a task as its
// own descendant-of-itself parent.
func (t *CompoundTask) AddChild(child Task) error {
	if child == t {
		return ErrSelfParent
	}
	child.setParent(t)
	t.children = append(t.children, child)
	return nil
}

// Children returns the child tasks in declaration order.
func (t *CompoundTask) Children() []Task {
	return t.children
}

// AddUtilityChild appends a child together with the utility function scoring
// it. Only meaningful on a UtilitySelector.
func (t *CompoundTask) AddUtilityChild(child Task, utility UtilityFunc) error {
	if err := t.AddChild(child); err != nil {
		return err
	}
	t.utilities = append(t.utilities, utility)
	return nil
}

// AddAction appends a GoapSequence candidate action together with its step
// cost function. Only meaningful on a GoapSequence.
func (t *CompoundTask) AddAction(child Task, cost GoapCostFunc) error {
	if err := t.AddChild(child); err != nil {
		return err
	}
	t.costs = append(t.costs, cost)
	return nil
}

// AddGenerator registers a dynamic candidate-action generator. Only
// meaningful on a GoapSequence.
func (t *CompoundTask) AddGenerator(g GoapGenerator) {
	t.generators = append(t.generators, g)
}

// SetGoal sets the goal test a GoapSequence search terminates on: every
// predicate must hold for a search node to be accepted as the goal.
func (t *CompoundTask) SetGoal(predicates ...Predicate) {
	t.goal = predicates
}

// SetHeuristic configures a heuristic best-first search for a GoapSequence.
// The heuristic is used only when weight >= 1: a weight of exactly 1 is
// plain A*, and a larger weight scales the heuristic (weighted A*), which
// may return a costlier plan. A weight below 1, including the zero default,
// runs a pure uniform-cost search instead. Non-finite or negative heuristic
// values are treated as 0.
func (t *CompoundTask) SetHeuristic(h GoapHeuristicFunc, weight float64) {
	t.heuristic = h
	t.heuristicWeight = weight
}

// SetMaxGoapNodes bounds how many search nodes a GoapSequence will expand
// before giving up and reporting Failed. Zero (the default) means
// unbounded.
func (t *CompoundTask) SetMaxGoapNodes(n int) {
	t.maxGoapNodes = n
}

func (t *CompoundTask) goalSatisfied(ctx *Context) bool {
	for _, p := range t.goal {
		if !evalPredicate(p, ctx) {
			return false
		}
	}
	return true
}
