package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Glavin001/gameplan-htn/htn"
	"github.com/Glavin001/gameplan-htn/pkg/htndto"
)

// TestWorldStatePatchTriggersReplanOnNextTick exercises the control-plane
// round trip end to end: patch a key, tick, and observe the planner switch
// to the branch that key now makes valid.
func TestWorldStatePatchTriggersReplanOnNextTick(t *testing.T) {
	flee := htn.NewPrimitiveTask("flee").
		WithCondition(func(ctx *htn.Context) bool {
			hp, ok := ctx.Get("hp")
			return ok && hp.(float64) < 20
		}).
		WithOperator(func(ctx *htn.Context) htn.TaskStatus { return htn.Success })
	patrol := htn.NewPrimitiveTask("patrol").
		WithOperator(func(ctx *htn.Context) htn.TaskStatus { return htn.Success })

	root := htn.NewSelector("root")
	require.NoError(t, root.AddChild(flee))
	require.NoError(t, root.AddChild(patrol))
	domain := htn.NewDomain("round-trip", root)

	var ran []string
	ctx := htn.NewContext(map[string]interface{}{"hp": 100.0})
	ctx.Init()
	planner := htn.NewPlanner(domain, ctx, htn.Callbacks{
		OnNewTask: func(task *htn.PrimitiveTask) { ran = append(ran, task.Name()) },
	})
	handler := NewHandler(domain, planner, nil)

	tick := func() htndto.TickResponse {
		req := httptest.NewRequest(http.MethodPost, "/tick", nil)
		w := httptest.NewRecorder()
		handler.PostTick(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var resp htndto.TickResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		return resp
	}

	tick()
	require.Len(t, ran, 1)
	assert.Equal(t, "patrol", ran[0])

	patchBody, err := json.Marshal(htndto.SetWorldStateRequest{Key: "hp", Value: 5.0})
	require.NoError(t, err)
	patchReq := httptest.NewRequest(http.MethodPost, "/world-state/", bytes.NewReader(patchBody))
	patchW := httptest.NewRecorder()
	handler.PatchWorldState(patchW, patchReq)
	require.Equal(t, http.StatusNoContent, patchW.Code)

	tick()
	require.Len(t, ran, 2)
	assert.Equal(t, "flee", ran[1])

	statsReq := httptest.NewRequest(http.MethodGet, "/stats", nil)
	statsW := httptest.NewRecorder()
	handler.GetStats(statsW, statsReq)
	var stats htndto.StatsResponse
	require.NoError(t, json.NewDecoder(statsW.Body).Decode(&stats))
	assert.GreaterOrEqual(t, stats.TotalReplans, 2)
}
