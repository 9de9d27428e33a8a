package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding effect curve functions:
// small Lua functions of lifetime progress that modulate emission over a
// source's active window. Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads every .lua file in dir.
// Curve functions are plain globals: `function pulse(p) ... end`.
func NewEngine(dir string, log *zap.Logger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop()
	}
	vm := lua.NewState(lua.Options{SkipOpenLibs: false})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(dir); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load curve scripts: %w", err)
	}
	return e, nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // no scripts is fine
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// EmissionScale calls the named curve function with the source's lifetime
// progress and returns a non-negative emission multiplier. A missing
// function or a script error yields 1.0; a broken curve must not stop
// the simulation.
func (e *Engine) EmissionScale(name string, progress float64) float64 {
	fn := e.vm.GetGlobal(name)
	if fn == lua.LNil {
		e.log.Warn("lua curve not found", zap.String("curve", name))
		return 1.0
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LNumber(progress)); err != nil {
		e.log.Error("lua curve failed", zap.String("curve", name), zap.Error(err))
		return 1.0
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := ret.(lua.LNumber)
	if !ok {
		e.log.Warn("lua curve returned non-number", zap.String("curve", name))
		return 1.0
	}
	v := float64(n)
	if v < 0 {
		return 0
	}
	return v
}

// HasCurve reports whether a curve function with the given name is loaded.
func (e *Engine) HasCurve(name string) bool {
	return e.vm.GetGlobal(name) != lua.LNil
}

// DoString executes raw Lua source. Test and tooling helper.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}
