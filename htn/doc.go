// Package htn implements a Hierarchical Task Network planning and execution
// core: a decomposition engine that turns a tree of compound tasks into a
// flat plan of primitive actions, a planning context carrying a speculative
// world-state change-stack and method-traversal-record (MTR) discipline, and
// a tick-driven planner that runs that plan forward and replans as the world
// changes.
//
// Domains and Tasks are built once and treated as read-only afterward (only
// Slot late-binding mutates structure); a Context is owned by a single agent
// and is not safe for concurrent use.
package htn
