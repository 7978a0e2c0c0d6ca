package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Glavin001/gameplan-htn/htn"
	"github.com/Glavin001/gameplan-htn/pkg/htndto"
)

func newTestHandler(t *testing.T) (*Handler, *htn.Planner) {
	t.Helper()

	patrol := htn.NewPrimitiveTask("patrol").WithOperator(func(ctx *htn.Context) htn.TaskStatus { return htn.Success })
	root := htn.NewSelector("root")
	if err := root.AddChild(patrol); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	domain := htn.NewDomain("test-domain", root)

	ctx := htn.NewContext(map[string]interface{}{"hp": 100})
	ctx.Init()
	planner := htn.NewPlanner(domain, ctx, htn.Callbacks{})

	return NewHandler(domain, planner, map[string]htn.Task{"patrol": patrol}), planner
}

func TestGetPlanBeforeAnyTick(t *testing.T) {
	handler, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/plan/", nil)
	w := httptest.NewRecorder()
	handler.GetPlan(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp htndto.PlanResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Tasks) != 0 {
		t.Errorf("expected an empty plan before any tick, got %v", resp.Tasks)
	}
}

func TestPostTickRunsAPlan(t *testing.T) {
	handler, planner := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/tick", nil)
	w := httptest.NewRecorder()
	handler.PostTick(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp htndto.TickResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Ticked {
		t.Errorf("expected Ticked=true, got %+v", resp)
	}
	if planner.Stats().TotalReplans == 0 {
		t.Error("expected the first tick to trigger a replan")
	}
}

func TestPatchWorldStateMarksDirty(t *testing.T) {
	handler, planner := newTestHandler(t)

	body, _ := json.Marshal(htndto.SetWorldStateRequest{Key: "hp", Value: float64(5)})
	req := httptest.NewRequest(http.MethodPost, "/world-state/", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.PatchWorldState(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	v, ok := planner.Context().Get("hp")
	if !ok || v != float64(5) {
		t.Errorf("expected hp patched to 5, got %v", v)
	}
	if !planner.Context().IsDirty() {
		t.Error("expected world-state patch to mark the context dirty")
	}
}

func TestPutSlotRejectsUnknownTask(t *testing.T) {
	handler, _ := newTestHandler(t)

	body, _ := json.Marshal(htndto.SlotBindRequest{TaskName: "does-not-exist"})
	req := httptest.NewRequest(http.MethodPut, "/slots/idle-behavior", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.PutSlot(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for an unknown task name, got %d", w.Code)
	}
}
