package htn

// PausePlanTask is a marker leaf: placed inside a Sequence, it stops
// decomposition at that point, queues a resume bookmark on the Context, and
// reports Partial rather than Succeeded. It has no conditions, operator, or
// effects of its own - it never reaches execution as a primitive.
type PausePlanTask struct {
	baseTask
}

// NewPausePlan builds a named PausePlan marker.
func NewPausePlan(name string) *PausePlanTask {
	return &PausePlanTask{baseTask: baseTask{name: name}}
}

func (t *PausePlanTask) Kind() Kind { return KindPausePlan }
