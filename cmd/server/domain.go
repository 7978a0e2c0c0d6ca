package main

import (
	"log"

	"github.com/google/uuid"

	"github.com/Glavin001/gameplan-htn/htn"
)

// subtaskRegistry builds the guard domain and returns it together with the
// named tasks the slot-binding endpoint may bind into its slot.
func subtaskRegistry() (*htn.Domain, map[string]htn.Task) {
	flee := htn.NewPrimitiveTask("flee").
		WithCondition(func(ctx *htn.Context) bool {
			hp, ok := ctx.Get("hp")
			return ok && hp.(int) < 20
		}).
		WithOperator(func(ctx *htn.Context) htn.TaskStatus {
			log.Printf("guard: fleeing toward the nearest safe room")
			return htn.Success
		}).
		WithEffect(htn.NewEffect("markFled", "fled", true, htn.ScopePermanent))

	attack := htn.NewPrimitiveTask("attack").
		WithCondition(func(ctx *htn.Context) bool {
			visible, ok := ctx.Get("enemyVisible")
			return ok && visible.(bool)
		}).
		WithExecutingCondition(func(ctx *htn.Context) bool {
			hp, ok := ctx.Get("hp")
			return ok && hp.(int) >= 20
		}).
		WithOperator(func(ctx *htn.Context) htn.TaskStatus {
			log.Printf("guard: attacking the visible enemy")
			return htn.Success
		}).
		WithEffect(htn.NewEffect("enemyDown", "enemyVisible", false, htn.ScopePermanent))

	patrol := htn.NewPrimitiveTask("patrol").
		WithOperator(func(ctx *htn.Context) htn.TaskStatus {
			log.Printf("guard: patrolling the perimeter")
			return htn.Success
		})

	standWatch := htn.NewPrimitiveTask("stand-watch").
		WithOperator(func(ctx *htn.Context) htn.TaskStatus {
			log.Printf("guard: standing watch")
			return htn.Success
		})

	// craftKey/findKey/unlockDoor/waitForAllClear/passThrough model a small
	// GOAP-solved supply run gated by a paused handoff to a human operator.
	findKey := htn.NewPrimitiveTask("find-key").
		WithEffect(htn.NewEffect("gainKey", "hasKey", true, htn.ScopePermanent))
	craftKey := htn.NewPrimitiveTask("craft-key").
		WithCondition(func(ctx *htn.Context) bool {
			mats, ok := ctx.Get("hasMaterials")
			return ok && mats.(bool)
		}).
		WithEffect(htn.NewEffect("gainKey", "hasKey", true, htn.ScopePermanent))
	unlockDoor := htn.NewPrimitiveTask("unlock-door").
		WithCondition(func(ctx *htn.Context) bool {
			key, ok := ctx.Get("hasKey")
			return ok && key.(bool)
		}).
		WithEffect(htn.NewEffect("markUnlocked", "doorUnlocked", true, htn.ScopePermanent))

	supplyRun := htn.NewGoapSequence("reach-supply-room")
	supplyRun.AddAction(findKey, func(ctx *htn.Context) float64 { return 3 })
	supplyRun.AddAction(craftKey, func(ctx *htn.Context) float64 { return 1 })
	supplyRun.AddAction(unlockDoor, func(ctx *htn.Context) float64 { return 1 })
	supplyRun.SetGoal(func(ctx *htn.Context) bool {
		unlocked, ok := ctx.Get("doorUnlocked")
		return ok && unlocked.(bool)
	})

	waitForAllClear := htn.NewPausePlan("wait-for-all-clear")
	passThrough := htn.NewPrimitiveTask("pass-through").
		WithOperator(func(ctx *htn.Context) htn.TaskStatus {
			log.Printf("guard: passing through the supply room door")
			return htn.Success
		})

	supplyRunSequence := htn.NewSequence("supply-run")
	supplyRunSequence.AddChild(supplyRun)
	supplyRunSequence.AddChild(waitForAllClear)
	supplyRunSequence.AddChild(passThrough)

	idleChoice := htn.NewUtilitySelector("idle-choice")
	idleChoice.AddUtilityChild(patrol, func(ctx *htn.Context) float64 {
		boredom, _ := ctx.Get("boredom")
		if b, ok := boredom.(float64); ok {
			return b
		}
		return 1
	})
	idleChoice.AddUtilityChild(standWatch, func(ctx *htn.Context) float64 { return 0.5 })

	root := htn.NewSelector("guard-root")
	root.AddChild(flee)
	root.AddChild(attack)
	root.AddChild(supplyRunSequence)

	domain := htn.NewDomain("guard-"+uuid.NewString()[:8], root)

	// idle-behavior is a pluggable default: bound here to idleChoice at
	// boot, but rebindable via PUT /slots/idle-behavior once an operator
	// decides "idle" should mean something else for this deployment.
	if _, err := domain.NewSlot("idle-behavior", "idle behavior", root); err != nil {
		log.Fatalf("guard domain: failed to register idle-behavior slot: %v", err)
	}
	if err := domain.TrySetSlotDomain("idle-behavior", idleChoice); err != nil {
		log.Fatalf("guard domain: failed to bind default idle behavior: %v", err)
	}

	subtasks := map[string]htn.Task{
		"flee":        flee,
		"attack":      attack,
		"patrol":      patrol,
		"stand-watch": standWatch,
		"idle-choice": idleChoice,
	}

	return domain, subtasks
}
