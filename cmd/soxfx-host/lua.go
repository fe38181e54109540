// lua.go - gopher-lua automation of set_value calls for regression soak testing

package main

import (
	lua "github.com/yuin/gopher-lua"
)

// runLuaScript executes path against host, exposing three globals: set(name,
// value) calls host.SetValue, tone(hz) retunes the test signal, and read(n)
// pulls n samples through the effect. This
// mirrors the teacher's own use of yuin/gopher-lua as a scripting
// fallback, repurposed here to drive an effect through a reproducible
// parameter sequence instead of driving chip registers.
func runLuaScript(path string, host *EffectHost) error {
	L := lua.NewState()
	defer L.Close()

	L.SetGlobal("set", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		value := L.CheckString(2)
		kind := host.SetValue(name, value)
		L.Push(lua.LString(kind.String()))
		return 1
	}))

	L.SetGlobal("tone", L.NewFunction(func(L *lua.LState) int {
		hz := L.CheckNumber(1)
		host.SetTestToneFrequency(float64(hz))
		return 0
	}))

	L.SetGlobal("read", L.NewFunction(func(L *lua.LState) int {
		n := L.CheckInt(1)
		buf := make([]float32, n)
		host.ReadSamples(buf)
		return 0
	}))

	return L.DoFile(path)
}
