package htn

// TaskStatus is the result of advancing a primitive task's operator by one
// tick.
type TaskStatus int

const (
	// Continue means the operator is still running; the Planner calls it
	// again on the next tick without re-checking the task's preconditions
	// (its executing condition is still checked every tick).
	Continue TaskStatus = iota

	// Success means the operator finished; its PlanAndExecute effects are
	// re-applied to WorldState and the Planner advances to the next
	// primitive in the plan.
	Success

	// Failure means the operator could not complete; the Planner aborts the
	// remaining plan and forces a replan.
	Failure
)

// String renders a TaskStatus for debug traces.
func (s TaskStatus) String() string {
	switch s {
	case Continue:
		return "Continue"
	case Success:
		return "Success"
	case Failure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// DecompositionStatus is the result of decomposing a compound task (or an
// entire domain) into a plan.
type DecompositionStatus int

const (
	// Rejected means the path can never yield an acceptable plan (e.g. an
	// unbound Slot, or a choice point that can no longer beat LastMTR); it
	// propagates instead of letting sibling options be tried.
	Rejected DecompositionStatus = iota

	// Succeeded means a full plan was produced with no pending PausePlan.
	Succeeded

	// Partial means decomposition stopped at a PausePlan leaf; the plan
	// produced so far is usable and a resume bookmark has been queued.
	Partial

	// Failed means this task produced no plan this time (a condition did not
	// hold, every Selector option failed, a Sequence step failed, or a GOAP
	// search found no path); a parent Selector may still try a sibling.
	Failed
)

// String renders a DecompositionStatus for debug traces.
func (s DecompositionStatus) String() string {
	switch s {
	case Rejected:
		return "Rejected"
	case Succeeded:
		return "Succeeded"
	case Partial:
		return "Partial"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}
