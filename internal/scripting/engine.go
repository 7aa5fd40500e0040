// Package scripting embeds a Lua VM for data-driven festival logic: scripts
// decide when a festival runs, where it assembles, and what each citizen
// does during it.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM. Single-goroutine access only (game
// loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory: core helpers first, then festival scripts.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	corePath := filepath.Join(scriptsDir, "core")
	if err := e.loadDir(corePath); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load core scripts: %w", err)
	}

	festivalPath := filepath.Join(scriptsDir, "festival")
	if err := e.loadDir(festivalPath); err != nil {
		vm.Close()
		return nil, fmt.Errorf("load festival scripts: %w", err)
	}

	return e, nil
}

func (e *Engine) Close() {
	e.vm.Close()
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
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

// FestivalPlan is returned by the Lua plan_festival function.
type FestivalPlan struct {
	Active  bool
	Phase   string // "assembling", "active", "ended"
	GatherX int
	GatherY int
}

// PlanFestival calls the Lua plan_festival(day, hour) function. A missing
// function or a script error reads as "no festival"; scripts can never
// stall the simulation.
func (e *Engine) PlanFestival(day, hour int) FestivalPlan {
	fn := e.vm.GetGlobal("plan_festival")
	if fn == lua.LNil {
		return FestivalPlan{}
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(day), lua.LNumber(hour)); err != nil {
		e.log.Error("lua plan_festival error", zap.Error(err))
		return FestivalPlan{}
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return FestivalPlan{}
	}
	return FestivalPlan{
		Active:  rt.RawGetString("active") == lua.LTrue,
		Phase:   lua.LVAsString(rt.RawGetString("phase")),
		GatherX: int(lua.LVAsNumber(rt.RawGetString("gather_x"))),
		GatherY: int(lua.LVAsNumber(rt.RawGetString("gather_y"))),
	}
}

// FestivalRole is one citizen's part in a running festival.
type FestivalRole struct {
	Label string
	DestX int
	DestY int
	Group bool
}

// FestivalRoleFor calls the Lua festival_role(citizen_id, day, hour)
// function. ok=false means the script gave this citizen no part.
func (e *Engine) FestivalRoleFor(citizenID uint64, day, hour int) (FestivalRole, bool) {
	fn := e.vm.GetGlobal("festival_role")
	if fn == lua.LNil {
		return FestivalRole{}, false
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(citizenID), lua.LNumber(day), lua.LNumber(hour)); err != nil {
		e.log.Error("lua festival_role error", zap.Error(err))
		return FestivalRole{}, false
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	rt, ok := result.(*lua.LTable)
	if !ok {
		return FestivalRole{}, false
	}
	return FestivalRole{
		Label: lua.LVAsString(rt.RawGetString("label")),
		DestX: int(lua.LVAsNumber(rt.RawGetString("dest_x"))),
		DestY: int(lua.LVAsNumber(rt.RawGetString("dest_y"))),
		Group: rt.RawGetString("group") == lua.LTrue,
	}, true
}
