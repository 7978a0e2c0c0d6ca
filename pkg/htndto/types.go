// Package htndto holds the wire-level request/response shapes for the
// planner's HTTP control plane, kept separate from htn itself so the core
// planning package carries no JSON-tag or transport concerns.
package htndto

// PlanResponse describes the plan the planner is currently (or most
// recently) running.
type PlanResponse struct {
	Tasks        []string `json:"tasks"`
	CurrentIndex int      `json:"currentIndex"`
	CurrentTask  string   `json:"currentTask,omitempty"`
}

// TickResponse reports what happened on one planner tick.
type TickResponse struct {
	Ticked      bool   `json:"ticked"`
	CurrentTask string `json:"currentTask,omitempty"`
	Error       string `json:"error,omitempty"`
}

// StatsResponse mirrors htn.Stats over the wire.
type StatsResponse struct {
	TotalTicks          int `json:"totalTicks"`
	TotalReplans        int `json:"totalReplans"`
	TotalTasksSucceeded int `json:"totalTasksSucceeded"`
	TotalTasksFailed    int `json:"totalTasksFailed"`
}

// WorldStateResponse is a snapshot of every tracked world-state key.
type WorldStateResponse struct {
	WorldState map[string]interface{} `json:"worldState"`
	Dirty      bool                   `json:"dirty"`
}

// SetWorldStateRequest patches a single world-state key, marking the
// context dirty so the next tick replans against it.
type SetWorldStateRequest struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// SlotBindRequest names which pre-registered subtask to bind into a slot.
type SlotBindRequest struct {
	TaskName string `json:"taskName"`
}

// ErrorResponse is the uniform error body the control plane returns.
type ErrorResponse struct {
	Error string `json:"error"`
}
