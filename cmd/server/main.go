// Package main is the entry point for the gameplan-htn planning server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Glavin001/gameplan-htn/htn"
	"github.com/Glavin001/gameplan-htn/internal/api"
	"github.com/Glavin001/gameplan-htn/internal/auth"
	"github.com/Glavin001/gameplan-htn/internal/config"
)

func main() {
	cfg := config.Load()

	domain, subtasks := subtaskRegistry()
	log.Printf("Built domain %q with %d bindable subtasks", domain.Name(), len(subtasks))

	ctx := htn.NewContext(initialWorldState(cfg))
	ctx.Init()
	ctx.SetLogDecomposition(true)

	planner := htn.NewPlanner(domain, ctx, plannerCallbacks())

	var authMiddleware *auth.Middleware
	if cfg.OIDC.ClientID != "" {
		authMiddleware = auth.NewMiddleware(&cfg.OIDC)
	}

	handler := api.NewHandler(domain, planner, subtasks)
	router := api.NewRouter(handler, authMiddleware, cfg.CORSAllowedOrigins)

	stopTicking := make(chan struct{})
	go runTickLoop(planner, cfg.TickInterval, stopTicking)

	addr := fmt.Sprintf(":%d", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("Server is shutting down...")
		close(stopTicking)

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Could not gracefully shutdown the server: %v\n", err)
		}
		close(done)
	}()

	log.Printf("Server is starting on %s", addr)
	log.Printf("Plan inspection available at http://localhost%s/plan/", addr)
	log.Printf("World-state inspection available at http://localhost%s/world-state/", addr)
	if authMiddleware != nil {
		log.Printf("OIDC authentication enabled for mutating routes")
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", addr, err)
	}

	<-done
	log.Println("Server stopped")
}

// runTickLoop advances the planner on a fixed interval until stop is closed.
// Most deployments will instead drive Tick from an external event loop
// (a game's per-frame update, a robot's control cycle); this exists so the
// server is independently useful for inspection and demos.
func runTickLoop(planner *htn.Planner, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := planner.Tick(); err != nil {
				log.Printf("planner: tick error: %v", err)
			}
		case <-stop:
			return
		}
	}
}

// initialWorldState seeds the example guard domain's starting conditions.
func initialWorldState(cfg *config.Config) map[string]interface{} {
	if len(cfg.Domain.WorldState) > 0 {
		return cfg.Domain.WorldState
	}
	return map[string]interface{}{
		"hp":           100,
		"enemyVisible": false,
		"fled":         false,
		"hasKey":       false,
		"hasMaterials": false,
		"doorUnlocked": false,
		"boredom":      1.0,
	}
}

// plannerCallbacks wires the planner's observability hooks to structured log
// lines so each planning step is visible the same way a request handler logs
// its own steps.
func plannerCallbacks() htn.Callbacks {
	return htn.Callbacks{
		OnNewPlan: func(plan []*htn.PrimitiveTask) {
			log.Printf("planner: new plan with %d step(s)", len(plan))
		},
		OnReplacePlan: func(oldPlan, newPlan []*htn.PrimitiveTask) {
			log.Printf("planner: replaced a %d-step plan with a %d-step plan", len(oldPlan), len(newPlan))
		},
		OnNewTask: func(task *htn.PrimitiveTask) {
			log.Printf("planner: now running %q", task.Name())
		},
		OnCurrentTaskFailed: func(task *htn.PrimitiveTask) {
			log.Printf("planner: task %q failed", task.Name())
		},
		OnCurrentTaskExecutingConditionFailed: func(task *htn.PrimitiveTask) {
			log.Printf("planner: task %q aborted, executing condition no longer holds", task.Name())
		},
	}
}
