package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// Manager owns one sandboxed LState holding every loaded stat script and
// exposes hook dispatch.
//
// Manager is safe for concurrent use; calls into the VM are serialized.
type Manager struct {
	mu     sync.Mutex
	state  *HookState
	logger *zap.Logger
}

// NewManager creates a Manager with no scripts loaded.
//
// Precondition: logger must be non-nil.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		panic("scripting.NewManager: logger must not be nil")
	}
	return &Manager{logger: logger}
}

// Load creates a fresh hook VM, registers the engine module, then executes
// every *.lua file in scriptDir in lexicographic order, each under its own
// instruction budget. A previously loaded VM is replaced only after the new
// one loads cleanly.
//
// Precondition: scriptDir must be a readable directory.
// Postcondition: returns error on Lua load failure and keeps the previous VM.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	h := NewHookState(instLimit)
	m.RegisterModules(h.LState)

	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		h.Close()
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	for _, path := range luaFiles {
		if err := h.RunFile(path); err != nil {
			h.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	if m.state != nil {
		m.state.Close()
	}
	m.state = h
	m.mu.Unlock()
	m.logger.Debug("scripting: loaded scripts",
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// HasHook reports whether a global function named hook is defined.
func (m *Manager) HasHook(hook string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == nil {
		return false
	}
	_, ok := m.state.GetGlobal(hook).(*lua.LFunction)
	return ok
}

// CallHook calls the named Lua global function. Returns (LNil, nil) if the
// hook is not defined or no scripts are loaded. Lua runtime errors are logged
// at Warn level and never propagated.
//
// Precondition: args must be valid lua.LValue instances.
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.call(hook, args...), nil
}

// Contribution calls hook and converts the returned table into a
// stats.Contribution. ok is false when the hook is undefined, fails, or does
// not return a well-formed table.
func (m *Manager) Contribution(hook string, args ...lua.LValue) (stats.Contribution, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ret := m.call(hook, args...)
	if ret == lua.LNil {
		return stats.Contribution{}, false
	}
	c, err := ToContribution(ret)
	if err != nil {
		m.logger.Warn("scripting: hook returned malformed contribution",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return stats.Contribution{}, false
	}
	return c, true
}

// Close releases the VM.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != nil {
		m.state.Close()
		m.state = nil
	}
}

// call must be invoked with m.mu held.
func (m *Manager) call(hook string, args ...lua.LValue) lua.LValue {
	if m.state == nil {
		return lua.LNil
	}
	fn, ok := m.state.GetGlobal(hook).(*lua.LFunction)
	if !ok {
		return lua.LNil
	}

	ret := lua.LValue(lua.LNil)
	err := m.state.Run(func(L *lua.LState) error {
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, args...); err != nil {
			return err
		}
		ret = L.Get(-1)
		L.Pop(1)
		return nil
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil
	}
	return ret
}
