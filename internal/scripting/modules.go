package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/statengine/internal/game/stats"
)

// RegisterModules registers the engine Lua table into L:
//
//	engine.log(msg)        logs msg at Debug
//	engine.attributes      array of known attribute names
//	engine.base(attr)      default base value of attr, or nil
//
// Precondition: L must be the LState of a HookState.
// Postcondition: engine global is defined in L.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()

	L.SetField(engine, "log", L.NewFunction(func(L *lua.LState) int {
		m.logger.Debug("scripting: lua log", zap.String("msg", L.CheckString(1)))
		return 0
	}))

	attrs := L.NewTable()
	for _, a := range stats.Attributes() {
		attrs.Append(lua.LString(a))
	}
	L.SetField(engine, "attributes", attrs)

	base := stats.DefaultBase()
	L.SetField(engine, "base", L.NewFunction(func(L *lua.LState) int {
		v, ok := base[L.CheckString(1)]
		if !ok {
			L.Push(lua.LNil)
			return 1
		}
		L.Push(lua.LNumber(v))
		return 1
	}))

	L.SetGlobal("engine", engine)
}
