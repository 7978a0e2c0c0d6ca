package htn

import (
	"container/heap"
	"fmt"
	"math"
	"sort"
)

// goapNode is one state reached during a GOAP search: the world-state it
// represents, the cumulative cost to reach it, the action that produced it
// (nil for the root), and a back-pointer for path reconstruction.
type goapNode struct {
	state    map[string]interface{}
	gCost    float64
	fCost    float64
	action   Task
	parent   *goapNode
	sequence int // insertion order, breaks cost ties deterministically
}

// goapFrontier is a min-cost priority queue ordered on fCost, with ties
// broken by insertion order so search order is deterministic.
type goapFrontier []*goapNode

func (f goapFrontier) Len() int { return len(f) }
func (f goapFrontier) Less(i, j int) bool {
	if f[i].fCost != f[j].fCost {
		return f[i].fCost < f[j].fCost
	}
	return f[i].sequence < f[j].sequence
}
func (f goapFrontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *goapFrontier) Push(x interface{}) { *f = append(*f, x.(*goapNode)) }
func (f *goapFrontier) Pop() interface{} {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

func stateSignature(state map[string]interface{}) string {
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	sig := ""
	for _, k := range keys {
		sig += fmt.Sprintf("%s=%v;", k, state[k])
	}
	return sig
}

func cloneState(state map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(state))
	for k, v := range state {
		out[k] = v
	}
	return out
}

// newVirtualContext builds a throwaway Context over a plain state snapshot,
// in the Planning state with an empty change-stack, so that actions'
// conditions and effects run exactly as they do in ordinary decomposition.
// The state an action leads to is read back with snapshot; the search
// explores states one at a time and never rolls a virtual context back.
func newVirtualContext(state map[string]interface{}) *Context {
	keys := make([]string, 0, len(state))
	for k := range state {
		keys = append(keys, k)
	}
	return &Context{
		declaredKeys: keys,
		worldState:   cloneState(state),
		changes:      newChangeStack(keys),
		state:        StatePlanning,
		initialized:  true,
	}
}

// goapCandidates returns every action currently worth expanding from ctx:
// the statically declared children (with their declared costs), followed by
// whatever the registered generators produce this state (cost defaults to
// 1.0 for generated actions, since they carry no declared GoapCostFunc).
func (t *CompoundTask) goapCandidates(ctx *Context) []struct {
	task Task
	cost float64
} {
	var out []struct {
		task Task
		cost float64
	}
	for i, child := range t.children {
		if !childConditionHolds(ctx, child) {
			continue
		}
		cost := 1.0
		if i < len(t.costs) && t.costs[i] != nil {
			cost = t.costs[i](ctx)
		}
		out = append(out, struct {
			task Task
			cost float64
		}{task: child, cost: cost})
	}
	for _, gen := range t.generators {
		for _, candidate := range gen(ctx) {
			if !childConditionHolds(ctx, candidate) {
				continue
			}
			out = append(out, struct {
				task Task
				cost float64
			}{task: candidate, cost: 1.0})
		}
	}
	return out
}

// decomposeGoap runs a best-first search (uniform-cost when no heuristic is
// configured, A*-style when one is and its weight is >= 1) over the
// candidate actions to find a minimum-cost sequence reaching the configured
// goal, then replays that sequence against the real planning context so its
// effects land on the change-stack exactly as any other decomposition would.
// A successful search contributes exactly one MTR entry (index 0): unlike
// Selector/UtilitySelector, GOAP doesn't choose among sibling alternatives at
// the HTN level, it searches internally, so it registers as a single choice.
func (t *CompoundTask) decomposeGoap(ctx *Context, plan *[]*PrimitiveTask) DecompositionStatus {
	// GOAP contributes a single MTR entry (index 0) on success, so it is
	// subject to the same beatsLastMTR pre-check every other choice point
	// applies: no sense running a whole best-first search whose only
	// possible outcome would be rejected by Domain.FindPlan's MTR guard.
	if len(ctx.lastMTR) > 0 && !canBeatLastMTR(ctx.mtr, 0, ctx.lastMTR) {
		return Rejected
	}

	root := &goapNode{state: ctx.snapshot()}

	frontier := &goapFrontier{root}
	heap.Init(frontier)
	closed := map[string]bool{}
	seq := 1
	expanded := 0

	var goalNode *goapNode
	aborted := false

search:
	for frontier.Len() > 0 {
		if t.maxGoapNodes > 0 && expanded >= t.maxGoapNodes {
			break
		}
		current := heap.Pop(frontier).(*goapNode)
		sig := stateSignature(current.state)
		if closed[sig] {
			continue
		}
		closed[sig] = true
		expanded++

		virtual := newVirtualContext(current.state)
		if t.goalSatisfied(virtual) {
			goalNode = current
			break
		}

		for _, cand := range t.goapCandidates(virtual) {
			nextCtx := newVirtualContext(current.state)
			status := decomposeTask(nextCtx, cand.task, &[]*PrimitiveTask{})
			if status == Rejected && cand.task.Kind() != KindPrimitive {
				// A Compound candidate's own Rejected aborts the whole GOAP
				// search with Rejected, rather than just ruling out this one
				// edge - it signals the candidate can never decompose, not
				// merely that it doesn't fit here.
				aborted = true
				break search
			}
			if status != Succeeded {
				continue
			}
			nextState := nextCtx.snapshot()
			nextSig := stateSignature(nextState)
			if closed[nextSig] {
				continue
			}
			g := current.gCost + cand.cost
			f := g
			if t.heuristic != nil && t.heuristicWeight >= 1 {
				h := t.heuristic(nextCtx)
				if math.IsNaN(h) || math.IsInf(h, 0) || h < 0 {
					h = 0
				}
				f = g + t.heuristicWeight*h
			}
			heap.Push(frontier, &goapNode{
				state:    nextState,
				gCost:    g,
				fCost:    f,
				action:   cand.task,
				parent:   current,
				sequence: seq,
			})
			seq++
		}
	}

	if aborted {
		return Rejected
	}
	if goalNode == nil {
		// Frontier exhausted without reaching the goal: this is Failed, not
		// Rejected - a sibling Selector branch should still get a chance,
		// it's not a structural "can never work".
		return Failed
	}

	var actions []Task
	for n := goalNode; n.action != nil; n = n.parent {
		actions = append([]Task{n.action}, actions...)
	}

	depthCheckpoint := ctx.GetChangeDepth()
	planCheckpoint := len(*plan)
	for _, action := range actions {
		if status := decomposeTask(ctx, action, plan); status != Succeeded {
			*plan = (*plan)[:planCheckpoint]
			ctx.TrimToDepth(depthCheckpoint)
			return Failed
		}
	}

	ctx.mtr = append(ctx.mtr, 0)
	if ctx.debugEnabled {
		ctx.debugMTR = append(ctx.debugMTR, t.name)
	}
	return Succeeded
}
