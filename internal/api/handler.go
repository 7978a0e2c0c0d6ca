// Package api exposes a running planner over HTTP: inspecting the current
// plan and world-state, advancing it tick by tick, and patching world-state
// or slot bindings from outside.
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Glavin001/gameplan-htn/htn"
	"github.com/Glavin001/gameplan-htn/pkg/htndto"
)

// Handler provides HTTP handlers over a single planner/domain pair.
type Handler struct {
	domain   *htn.Domain
	planner  *htn.Planner
	subtasks map[string]htn.Task
}

// NewHandler builds a Handler. subtasks is the set of named tasks available
// for binding into a domain's slots via PUT /slots/{id}.
func NewHandler(domain *htn.Domain, planner *htn.Planner, subtasks map[string]htn.Task) *Handler {
	return &Handler{domain: domain, planner: planner, subtasks: subtasks}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("api: error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, htndto.ErrorResponse{Error: msg})
}

// GetPlan handles GET /plan.
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	plan, index := h.planner.Plan()
	resp := htndto.PlanResponse{CurrentIndex: index}
	for _, task := range plan {
		resp.Tasks = append(resp.Tasks, task.Name())
	}
	if current := h.planner.CurrentTask(); current != nil {
		resp.CurrentTask = current.Name()
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetStats handles GET /stats.
func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := h.planner.Stats()
	writeJSON(w, http.StatusOK, htndto.StatsResponse{
		TotalTicks:          stats.TotalTicks,
		TotalReplans:        stats.TotalReplans,
		TotalTasksSucceeded: stats.TotalTasksSucceeded,
		TotalTasksFailed:    stats.TotalTasksFailed,
	})
}

// GetWorldState handles GET /world-state.
func (h *Handler) GetWorldState(w http.ResponseWriter, r *http.Request) {
	ctx := h.planner.Context()
	writeJSON(w, http.StatusOK, htndto.WorldStateResponse{
		WorldState: ctx.WorldStateSnapshot(),
		Dirty:      ctx.IsDirty(),
	})
}

// PatchWorldState handles POST /world-state - sets a single key and marks
// the context dirty so the next tick replans against it.
func (h *Handler) PatchWorldState(w http.ResponseWriter, r *http.Request) {
	var req htndto.SetWorldStateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}
	h.planner.Context().Set(req.Key, req.Value, true, htn.ScopePermanent)
	log.Printf("api: world-state key %q set to %v", req.Key, req.Value)
	w.WriteHeader(http.StatusNoContent)
}

// PostTick handles POST /tick - advances the planner by exactly one tick.
func (h *Handler) PostTick(w http.ResponseWriter, r *http.Request) {
	if err := h.planner.Tick(); err != nil {
		log.Printf("api: tick error: %v", err)
		writeJSON(w, http.StatusOK, htndto.TickResponse{Ticked: false, Error: err.Error()})
		return
	}
	resp := htndto.TickResponse{Ticked: true}
	if current := h.planner.CurrentTask(); current != nil {
		resp.CurrentTask = current.Name()
	}
	writeJSON(w, http.StatusOK, resp)
}

// PostReset handles POST /reset - drops the current plan and planning
// artifacts, returning the planner to a blank slate.
func (h *Handler) PostReset(w http.ResponseWriter, r *http.Request) {
	h.planner.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// PutSlot handles PUT /slots/{id} - binds a named subtask into a domain
// slot, looking it up in the Handler's known subtask registry.
func (h *Handler) PutSlot(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req htndto.SlotBindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	task, ok := h.subtasks[req.TaskName]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown task name: "+req.TaskName)
		return
	}

	if err := h.domain.ClearSlot(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err := h.domain.TrySetSlotDomain(id, task); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	log.Printf("api: bound task %q into slot %q", req.TaskName, id)
	w.WriteHeader(http.StatusNoContent)
}
