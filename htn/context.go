package htn

// ContextState is the two-state machine a Context moves through around a
// single Domain.FindPlan pass.
type ContextState int

const (
	// StateExecuting is the Context's steady state: Get reads WorldState
	// directly and Set writes WorldState directly.
	StateExecuting ContextState = iota

	// StatePlanning is entered for the duration of a decomposition pass:
	// writes go to the speculative change-stack instead of WorldState.
	StatePlanning
)

// PartialPlanEntry is a bookmark left by a PausePlan leaf: the Sequence task
// to resume, and the child index to resume it at.
type PartialPlanEntry struct {
	Task        *CompoundTask
	ResumeIndex int
}

// Context is the mutable, single-writer planning/execution state for one
// agent: its WorldState snapshot, the speculative change-stack used during
// planning, the Method Traversal Record discipline, and the partial-plan
// resume queue. A Context is constructed once with NewContext and then
// Init'd before any planning or ticking happens.
type Context struct {
	declaredKeys []string
	worldState   map[string]interface{}
	changes      changeStack

	state       ContextState
	initialized bool
	isDirty     bool

	mtr     []int
	lastMTR []int

	debugMTR     []string
	debugLastMTR []string
	debugEnabled bool

	logDecompositionEnabled bool
	decompositionLog        []string

	hasPausedPartialPlan bool
	partialPlanQueue     []PartialPlanEntry

	callbacks Callbacks
}

// SetCallbacks installs the observability hooks the Planner and decomposer
// invoke as they run. Any field left nil is simply never called.
func (c *Context) SetCallbacks(cb Callbacks) {
	c.callbacks = cb
}

// NewContext declares the fixed set of world-state keys this Context will
// ever carry and seeds their initial values. The key set cannot change for
// the lifetime of the Context.
func NewContext(initial map[string]interface{}) *Context {
	keys := make([]string, 0, len(initial))
	worldState := make(map[string]interface{}, len(initial))
	for k, v := range initial {
		keys = append(keys, k)
		worldState[k] = v
	}
	return &Context{
		declaredKeys: keys,
		worldState:   worldState,
		mtr:          []int{},
		lastMTR:      []int{},
	}
}

// Init allocates the change-stack for every declared world-state key and
// transitions the Context to Executing. It must be called once before the
// Context is used by a Domain or Planner.
func (c *Context) Init() {
	c.changes = newChangeStack(c.declaredKeys)
	c.state = StateExecuting
	c.initialized = true
}

// IsInitialized reports whether Init has been called.
func (c *Context) IsInitialized() bool {
	return c.initialized
}

// State returns the current Executing/Planning state.
func (c *Context) State() ContextState {
	return c.state
}

// SetDebugMTR enables or disables collection of a human-readable MTR trace
// alongside the numeric MTR.
func (c *Context) SetDebugMTR(enabled bool) {
	c.debugEnabled = enabled
}

// DebugMTREnabled reports whether human-readable MTR tracing is on.
func (c *Context) DebugMTREnabled() bool {
	return c.debugEnabled
}

// SetLogDecomposition enables or disables collection of a decomposition log
// (used to surface non-fatal errors such as a dynamic generator panicking).
func (c *Context) SetLogDecomposition(enabled bool) {
	c.logDecompositionEnabled = enabled
}

// DecompositionLog returns the accumulated decomposition log, if enabled.
func (c *Context) DecompositionLog() []string {
	return c.decompositionLog
}

func (c *Context) logDecomposition(msg string) {
	if c.logDecompositionEnabled {
		c.decompositionLog = append(c.decompositionLog, msg)
	}
}

// IsDirty reports whether WorldState has changed since the last time the
// dirty flag was reset (normally by the Planner at the start of a tick).
func (c *Context) IsDirty() bool {
	return c.isDirty
}

// SetDirty explicitly sets the dirty flag. The Planner uses this to reset it
// after consuming a dirty signal.
func (c *Context) SetDirty(dirty bool) {
	c.isDirty = dirty
}

// Get reads a world-state key. While Executing it reads WorldState directly.
// While Planning, if the key has any speculative writes this pass, it reads
// the most recent (top-of-stack) one; see DESIGN.md for why this resolves
// the "bottom" wording from the original description of Get in favor of the
// explicit top-of-stack ordering guarantee described elsewhere.
func (c *Context) Get(key string) (interface{}, bool) {
	if c.state == StatePlanning {
		if top, ok := c.changes.top(key); ok {
			return top.value, true
		}
	}
	v, ok := c.worldState[key]
	return v, ok
}

// Set writes a world-state key. While Executing, it writes WorldState
// directly when the value actually differs from the current one, and sets
// the dirty flag to the caller-supplied value. While Planning, it pushes a
// speculative change onto the key's change-stack; WorldState is never
// touched during planning.
func (c *Context) Set(key string, value interface{}, dirty bool, scope Scope) {
	if c.state == StatePlanning {
		c.changes.push(key, change{scope: scope, value: value})
		return
	}
	if cur, ok := c.worldState[key]; !ok || cur != value {
		c.worldState[key] = value
		c.isDirty = dirty
	}
}

// GetChangeDepth snapshots the current change-stack length for every
// declared key, for later use with TrimToDepth.
func (c *Context) GetChangeDepth() map[string]int {
	return c.changes.depths()
}

// TrimToDepth pops change-stack entries for every key in depths down to the
// recorded length. It is only valid while Planning.
func (c *Context) TrimToDepth(depths map[string]int) error {
	if c.state == StateExecuting {
		return ErrChangeStackMutationWhileExecuting
	}
	c.changes.trimTo(depths)
	return nil
}

// TrimForExecution drops every change-stack entry whose scope is not
// Permanent. It is only valid while Planning.
func (c *Context) TrimForExecution() error {
	if c.state == StateExecuting {
		return ErrChangeStackMutationWhileExecuting
	}
	c.changes.trimNonPermanent()
	return nil
}

// commitPermanentChanges pops the top remaining (Permanent) change for each
// key onto WorldState and clears that key's stack. Called by Domain after
// TrimForExecution on a Succeeded/Partial planning pass.
func (c *Context) commitPermanentChanges() {
	for key, stack := range c.changes {
		if len(stack) == 0 {
			continue
		}
		top := stack[len(stack)-1]
		c.worldState[key] = top.value
		c.changes[key] = nil
	}
}

// clearAllChangeStacks discards every speculative write without touching
// WorldState. Called by Domain on any planning result other than
// Succeeded/Partial.
func (c *Context) clearAllChangeStacks() {
	c.changes.clearAll()
}

// WorldStateSnapshot returns a copy of the committed WorldState, for
// diagnostics and control-plane surfaces. It does not reflect in-flight
// speculative changes; use it while Executing.
func (c *Context) WorldStateSnapshot() map[string]interface{} {
	out := make(map[string]interface{}, len(c.worldState))
	for k, v := range c.worldState {
		out[k] = v
	}
	return out
}

// snapshot returns a plain map of the effective planning-time value of every
// key that either belongs to WorldState or currently has speculative writes,
// using the same top-of-stack read semantics as Get. Used by GOAP to seed
// search nodes.
func (c *Context) snapshot() map[string]interface{} {
	out := make(map[string]interface{}, len(c.worldState))
	for k, v := range c.worldState {
		out[k] = v
	}
	for k, stack := range c.changes {
		if top, ok := func() (change, bool) {
			if len(stack) == 0 {
				return change{}, false
			}
			return stack[len(stack)-1], true
		}(); ok {
			out[k] = top.value
		}
	}
	return out
}

// ClearMTR resets the in-progress MTR to empty (not nil).
func (c *Context) ClearMTR() {
	c.mtr = c.mtr[:0]
	if c.debugEnabled {
		c.debugMTR = c.debugMTR[:0]
	}
}

// ClearLastMTR resets the committed MTR to empty.
func (c *Context) ClearLastMTR() {
	c.lastMTR = c.lastMTR[:0]
	if c.debugEnabled {
		c.debugLastMTR = c.debugLastMTR[:0]
	}
}

// ShiftMTR commits the in-progress MTR as the new LastMTR. MTR itself is left
// untouched (a subsequent decomposition pass that needs a fresh MTR must call
// ClearMTR explicitly).
func (c *Context) ShiftMTR() {
	c.lastMTR = append([]int{}, c.mtr...)
	if c.debugEnabled {
		c.debugLastMTR = append([]string{}, c.debugMTR...)
	}
}

// RestoreMTR restores MTR from LastMTR and then clears LastMTR. Used by the
// Planner to undo a speculative ShiftMTR when the replan it was guarding
// against turned out to fail.
func (c *Context) RestoreMTR() {
	c.mtr = append([]int{}, c.lastMTR...)
	c.lastMTR = c.lastMTR[:0]
	if c.debugEnabled {
		c.debugMTR = append([]string{}, c.debugLastMTR...)
		c.debugLastMTR = c.debugLastMTR[:0]
	}
}

// NullifyMTRBuffer explicitly tears down the MTR buffer (sets it to nil,
// distinct from the empty-but-present state ClearMTR leaves it in). A
// planning pass attempted afterward fails fast with ErrMTRBufferMissing.
// This exists to let callers exercise that fatal-error path; it is not part
// of normal operation.
func (c *Context) NullifyMTRBuffer() {
	c.mtr = nil
}

// MTR returns a copy of the in-progress Method Traversal Record.
func (c *Context) MTR() []int {
	return append([]int{}, c.mtr...)
}

// LastMTR returns a copy of the committed Method Traversal Record.
func (c *Context) LastMTR() []int {
	return append([]int{}, c.lastMTR...)
}

// ClearPartialPlanQueue drops any pending partial-plan resume bookmarks and
// the paused flag.
func (c *Context) ClearPartialPlanQueue() {
	c.partialPlanQueue = nil
	c.hasPausedPartialPlan = false
}

// HasPausedPartialPlan reports whether a Sequence decomposition stopped at a
// PausePlan leaf and is awaiting resumption.
func (c *Context) HasPausedPartialPlan() bool {
	return c.hasPausedPartialPlan
}

// restorePartialPlan repopulates the partial-plan queue from a stash taken
// earlier (see Planner.maybeReplan's dirty-while-paused branch), re-setting
// the paused flag. Used to undo a speculative ClearPartialPlanQueue when the
// fresh decomposition it made room for turned out not to beat the paused
// plan's priority.
func (c *Context) restorePartialPlan(queue []PartialPlanEntry) {
	c.partialPlanQueue = append([]PartialPlanEntry{}, queue...)
	c.hasPausedPartialPlan = len(c.partialPlanQueue) > 0
}

// PartialPlanQueue returns a copy of the pending resume bookmarks.
func (c *Context) PartialPlanQueue() []PartialPlanEntry {
	return append([]PartialPlanEntry{}, c.partialPlanQueue...)
}
