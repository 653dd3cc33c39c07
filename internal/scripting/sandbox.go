// Package scripting runs Lua stat hooks in a restricted GopherLua VM. Hooks
// return plain tables which the Manager converts into stats.Contribution
// values for the composition engine.
package scripting

import (
	"context"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit is the opcode budget of one script file load or one
// hook call when the configured limit is zero.
const DefaultInstructionLimit = 100_000

// StrippedGlobals lists the base library globals removed from every hook state.
var StrippedGlobals = []string{
	"dofile",
	"loadfile",
	"load",
	"loadstring",
	"collectgarbage",
	"require",
	"print",
}

// opBudget cancels itself once Done has been polled limit times. The VM polls
// Done once per opcode, so the budget counts instructions exactly.
type opBudget struct {
	context.Context
	cancel context.CancelFunc
	left   atomic.Int64
}

func (b *opBudget) Done() <-chan struct{} {
	if b.left.Add(-1) <= 0 {
		b.cancel()
	}
	return b.Context.Done()
}

// armBudget installs a fresh budget of limit opcodes on L. The returned
// release function detaches the budget and must run once the guarded
// execution returns.
func armBudget(L *lua.LState, limit int) func() {
	if limit <= 0 {
		limit = DefaultInstructionLimit
	}
	ctx, cancel := context.WithCancel(context.Background())
	b := &opBudget{Context: ctx, cancel: cancel}
	b.left.Store(int64(limit))
	L.SetContext(b)
	return func() {
		cancel()
		L.RemoveContext()
	}
}

// HookState is a Lua VM restricted to the base, table, string and math
// libraries, with StrippedGlobals removed.
type HookState struct {
	*lua.LState
	limit int
}

// NewHookState builds a restricted VM whose every Run is capped at limit
// opcodes.
//
// Precondition: limit >= 0; 0 uses DefaultInstructionLimit.
// Postcondition: the caller owns the state and must Close it.
func NewHookState(limit int) *HookState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
	for _, name := range StrippedGlobals {
		L.SetGlobal(name, lua.LNil)
	}
	return &HookState{LState: L, limit: limit}
}

// Run executes fn under a budget armed for this run only.
func (h *HookState) Run(fn func(L *lua.LState) error) error {
	release := armBudget(h.LState, h.limit)
	defer release()
	return fn(h.LState)
}

// RunString executes src under a fresh budget.
func (h *HookState) RunString(src string) error {
	return h.Run(func(L *lua.LState) error { return L.DoString(src) })
}

// RunFile executes the Lua file at path under a fresh budget.
func (h *HookState) RunFile(path string) error {
	return h.Run(func(L *lua.LState) error { return L.DoFile(path) })
}
