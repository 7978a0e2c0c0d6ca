package htn

// Domain is a built, read-only task tree (aside from Slot late-binding)
// together with the registry of named Slots it contains. A Domain is shared
// across every Context that plans against it; it carries no per-agent
// state itself.
type Domain struct {
	name  string
	root  *CompoundTask
	slots map[string]*Slot
}

// NewDomain wraps a root compound task (almost always a Selector or
// Sequence) as a named, plannable Domain.
func NewDomain(name string, root *CompoundTask) *Domain {
	return &Domain{name: name, root: root, slots: map[string]*Slot{}}
}

// Name returns the domain's debug name.
func (d *Domain) Name() string {
	return d.name
}

// Root returns the domain's root compound task.
func (d *Domain) Root() *CompoundTask {
	return d.root
}

// NewSlot registers a new, empty Slot under id and wires it into the tree as
// a child of parent. It is rejected if id is already registered.
func (d *Domain) NewSlot(id, name string, parent *CompoundTask) (*Slot, error) {
	if _, exists := d.slots[id]; exists {
		return nil, ErrSlotIDTaken
	}
	slot := NewSlot(name, id)
	if err := parent.AddChild(slot); err != nil {
		return nil, err
	}
	d.slots[id] = slot
	return slot, nil
}

// TrySetSlotDomain binds task into the named slot.
func (d *Domain) TrySetSlotDomain(id string, task Task) error {
	slot, ok := d.slots[id]
	if !ok {
		return ErrSlotNotFound
	}
	return slot.SetSubtask(task)
}

// ClearSlot empties the named slot so it can be rebound.
func (d *Domain) ClearSlot(id string) error {
	slot, ok := d.slots[id]
	if !ok {
		return ErrSlotNotFound
	}
	slot.Clear()
	return nil
}

// FindPlan runs one decomposition pass: either resuming the queued
// partial-plan bookmarks in order, or decomposing the domain root from
// scratch. A resulting
// plan is only accepted if its MTR is strictly less than the Context's
// LastMTR (or there is no LastMTR yet) - the replan-stability rule that
// keeps the planner from thrashing between equally-preferred branches. On
// acceptance, Permanent-scoped effects are committed into WorldState and
// everything else is discarded; on rejection or an unplannable tree, every
// speculative change is discarded and the MTR buffer is cleared.
func (d *Domain) FindPlan(ctx *Context) ([]*PrimitiveTask, DecompositionStatus, error) {
	if !ctx.IsInitialized() {
		return nil, Rejected, ErrContextNotInitialized
	}
	if ctx.mtr == nil {
		return nil, Rejected, ErrMTRBufferMissing
	}

	ctx.state = StatePlanning
	defer func() { ctx.state = StateExecuting }()

	var plan []*PrimitiveTask
	var status DecompositionStatus

	if ctx.hasPausedPartialPlan && len(ctx.partialPlanQueue) > 0 && len(ctx.lastMTR) == 0 {
		// Resume branch: walk the queued bookmarks in order, concatenating
		// each resumed Sequence's contribution into plan. A fresh pause
		// mid-walk stops early (its own PartialPlanEntry is already queued
		// by decomposeSequenceFrom); any still-unprocessed bookmarks are
		// kept queued behind it.
		queue := ctx.partialPlanQueue
		ctx.partialPlanQueue = nil
		ctx.hasPausedPartialPlan = false

		depthCheckpoint := ctx.GetChangeDepth()
		status = Succeeded
		for i, entry := range queue {
			status = entry.Task.decomposeSequenceFrom(ctx, &plan, entry.ResumeIndex)
			if status == Partial {
				ctx.partialPlanQueue = append(ctx.partialPlanQueue, queue[i+1:]...)
				break
			}
			if status != Succeeded {
				break
			}
		}

		if status == Failed || status == Rejected {
			// A failed resume discards the stashed queue entirely (it
			// already proved unusable) and restarts decomposition fresh
			// from the Root.
			plan = nil
			ctx.partialPlanQueue = nil
			ctx.hasPausedPartialPlan = false
			ctx.TrimToDepth(depthCheckpoint)
			ctx.ClearMTR()
			status = decomposeTask(ctx, d.root, &plan)
		}
	} else {
		ctx.ClearMTR()
		status = decomposeTask(ctx, d.root, &plan)
	}

	switch status {
	case Succeeded, Partial:
		if len(ctx.lastMTR) > 0 && compareMTR(ctx.mtr, ctx.lastMTR) >= 0 {
			ctx.clearAllChangeStacks()
			ctx.ClearMTR()
			return nil, Rejected, nil
		}
		ctx.TrimForExecution()
		ctx.commitPermanentChanges()
		return plan, status, nil
	default:
		ctx.clearAllChangeStacks()
		ctx.ClearMTR()
		return nil, Rejected, nil
	}
}
