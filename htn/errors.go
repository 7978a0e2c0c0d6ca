package htn

import "errors"

// Fatal/programmer errors. These indicate the library was used incorrectly
// (a Context that was never initialized, an MTR buffer explicitly torn down)
// rather than a planning-time failure.
var (
	// ErrContextNotInitialized is returned when FindPlan or Tick is called on
	// a Context that has never had Init called on it (Tick returns the error
	// from the FindPlan it triggers).
	ErrContextNotInitialized = errors.New("htn: context not initialized")

	// ErrMTRBufferMissing is returned when the Context's MTR buffer has been
	// explicitly nullified (see Context.NullifyMTRBuffer) and a planning pass
	// is attempted before it is restored.
	ErrMTRBufferMissing = errors.New("htn: mtr buffer missing")

	// ErrChangeStackMutationWhileExecuting is returned by change-stack
	// operations (TrimToDepth, TrimForExecution) that are only valid while
	// the Context is in the Planning state.
	ErrChangeStackMutationWhileExecuting = errors.New("htn: change-stack operation invalid while executing")

	// ErrSlotAlreadyBound is returned by Slot.SetSubtask when the slot already
	// holds a subtask and has not been cleared first.
	ErrSlotAlreadyBound = errors.New("htn: slot already exists")

	// ErrSelfParent is returned when a task is added as its own child.
	ErrSelfParent = errors.New("htn: task cannot be its own parent")

	// ErrSlotIDTaken is returned by Domain.NewSlot when the id is already in use.
	ErrSlotIDTaken = errors.New("htn: slot id already registered")

	// ErrSlotNotFound is returned by Domain.TrySetSlotDomain / ClearSlot for an
	// unknown slot id.
	ErrSlotNotFound = errors.New("htn: slot not found")

	// ErrOperatorMissing is surfaced by the Planner when a primitive task
	// reaches execution with no operator configured.
	ErrOperatorMissing = errors.New("htn: primitive task has no operator")
)
