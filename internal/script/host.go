package script

import (
	"fmt"

	"github.com/cyclopcam/logs"
	lua "github.com/yuin/gopher-lua"

	"github.com/SkuldNorniern/r3d/internal/engine"
	"github.com/SkuldNorniern/r3d/internal/event"
	"github.com/SkuldNorniern/r3d/internal/event/events"
	"github.com/SkuldNorniern/r3d/internal/mathf"
)

// Host owns a Lua state wired to an engine's dispatchers. It is not
// safe for concurrent use; see the package documentation.
type Host struct {
	L   *lua.LState
	eng *engine.Engine
	log logs.Log

	// Handler IDs registered on behalf of scripts, unregistered on
	// Close.
	frameIDs  []event.HandlerID
	resizeIDs []event.HandlerID

	closed bool
}

// NewHost creates a Lua state and installs the r3d API table.
func NewHost(eng *engine.Engine, logger logs.Log) *Host {
	h := &Host{
		L:   lua.NewState(),
		eng: eng,
		log: logger,
	}
	h.installAPI()
	return h
}

// installAPI publishes the global r3d table.
func (h *Host) installAPI() {
	tbl := h.L.NewTable()
	h.L.SetField(tbl, "on_frame", h.L.NewFunction(h.luaOnFrame))
	h.L.SetField(tbl, "on_resize", h.L.NewFunction(h.luaOnResize))
	h.L.SetField(tbl, "log", h.L.NewFunction(h.luaLog))
	h.L.SetGlobal("r3d", tbl)
}

// LoadFile runs a script file in the host's state. Subscriptions made
// by the script stay active until Close.
func (h *Host) LoadFile(path string) error {
	if err := h.L.DoFile(path); err != nil {
		return fmt.Errorf("script %s: %w", path, err)
	}
	return nil
}

// LoadString runs script source directly. Used by tests and the debug
// console.
func (h *Host) LoadString(src string) error {
	if err := h.L.DoString(src); err != nil {
		return fmt.Errorf("script: %w", err)
	}
	return nil
}

// Close unregisters every script handler and closes the Lua state.
// The unregistrations follow the dispatcher's deferral contract: if a
// dispatch is in flight they take effect at its reconciliation.
func (h *Host) Close() {
	if h.closed {
		return
	}
	h.closed = true

	for _, id := range h.frameIDs {
		h.eng.Frame.Unregister(id)
	}
	for _, id := range h.resizeIDs {
		h.eng.Resize.Unregister(id)
	}
	h.L.Close()
}

// HandlerCount reports how many script handlers are registered.
func (h *Host) HandlerCount() int {
	return len(h.frameIDs) + len(h.resizeIDs)
}

func (h *Host) luaOnFrame(L *lua.LState) int {
	fn := L.CheckFunction(1)

	id := event.NextHandlerID()
	h.frameIDs = append(h.frameIDs, id)
	h.eng.Frame.Register(id, func(f events.Frame) {
		h.call(fn, h.frameTable(f))
	})
	return 0
}

func (h *Host) luaOnResize(L *lua.LState) int {
	fn := L.CheckFunction(1)

	id := event.NextHandlerID()
	h.resizeIDs = append(h.resizeIDs, id)
	h.eng.Resize.Register(id, func(r events.Resize) {
		tbl := h.L.NewTable()
		h.L.SetField(tbl, "width", lua.LNumber(r.Width))
		h.L.SetField(tbl, "height", lua.LNumber(r.Height))
		h.call(fn, tbl)
	})
	return 0
}

func (h *Host) luaLog(L *lua.LState) int {
	msg := L.CheckString(1)
	h.log.Infof("script: %s", msg)
	return 0
}

// call invokes a Lua callback with one argument, logging instead of
// propagating errors so a broken script cannot stop the tick loop.
func (h *Host) call(fn *lua.LFunction, arg lua.LValue) {
	if h.closed {
		return
	}
	err := h.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, arg)
	if err != nil {
		h.log.Errorf("script handler: %v", err)
	}
}

// frameTable marshals a frame event into a Lua table.
func (h *Host) frameTable(f events.Frame) *lua.LTable {
	tbl := h.L.NewTable()
	h.L.SetField(tbl, "index", lua.LNumber(f.Index))
	h.L.SetField(tbl, "delta_ms", lua.LNumber(float64(f.Delta.Microseconds())/1000))
	h.L.SetField(tbl, "elapsed_ms", lua.LNumber(float64(f.Elapsed.Microseconds())/1000))
	h.L.SetField(tbl, "camera", h.quatTable(f.Camera))
	h.L.SetField(tbl, "position", h.vecTable(f.Position))
	return tbl
}

func (h *Host) quatTable(q mathf.Quat) *lua.LTable {
	tbl := h.L.NewTable()
	h.L.SetField(tbl, "x", lua.LNumber(q.X))
	h.L.SetField(tbl, "y", lua.LNumber(q.Y))
	h.L.SetField(tbl, "z", lua.LNumber(q.Z))
	h.L.SetField(tbl, "w", lua.LNumber(q.W))
	return tbl
}

func (h *Host) vecTable(v mathf.Vec3) *lua.LTable {
	tbl := h.L.NewTable()
	h.L.SetField(tbl, "x", lua.LNumber(v.X))
	h.L.SetField(tbl, "y", lua.LNumber(v.Y))
	h.L.SetField(tbl, "z", lua.LNumber(v.Z))
	return tbl
}
