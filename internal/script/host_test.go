package script

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cyclopcam/logs"
	lua "github.com/yuin/gopher-lua"

	"github.com/SkuldNorniern/r3d/internal/config"
	"github.com/SkuldNorniern/r3d/internal/engine"
	"github.com/SkuldNorniern/r3d/internal/gfx"
)

func newTestHost(t *testing.T) (*Host, *engine.Engine) {
	t.Helper()
	logger := logs.NewTestingLog(t)
	eng := engine.New(config.EngineConfig{TickRate: 60}, gfx.NewMemoryBridge(), logger)
	h := NewHost(eng, logger)
	t.Cleanup(h.Close)
	return h, eng
}

func TestHost_OnFrame(t *testing.T) {
	h, eng := newTestHost(t)

	err := h.LoadString(`
		frames = 0
		last_index = 0
		r3d.on_frame(function(f)
			frames = frames + 1
			last_index = f.index
		end)
	`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if h.HandlerCount() != 1 {
		t.Fatalf("HandlerCount() = %d, want 1", h.HandlerCount())
	}

	eng.Step(16 * time.Millisecond)
	eng.Step(16 * time.Millisecond)

	if got := h.L.GetGlobal("frames").String(); got != "2" {
		t.Errorf("frames = %s, want 2", got)
	}
	if got := h.L.GetGlobal("last_index").String(); got != "2" {
		t.Errorf("last_index = %s, want 2", got)
	}
}

func TestHost_FramePayload(t *testing.T) {
	h, eng := newTestHost(t)

	err := h.LoadString(`
		r3d.on_frame(function(f)
			cam_w = f.camera.w
			pos_len2 = f.position.x^2 + f.position.y^2 + f.position.z^2
			delta = f.delta_ms
		end)
	`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}

	eng.Step(10 * time.Millisecond)

	if w := h.L.GetGlobal("cam_w"); w == nil || w.String() == "nil" {
		t.Fatal("camera.w not delivered")
	}
	// Orbit radius 5, so |position|^2 is 25.
	len2, ok := h.L.GetGlobal("pos_len2").(lua.LNumber)
	if !ok {
		t.Fatal("pos_len2 not a number")
	}
	if float64(len2) < 24.9 || float64(len2) > 25.1 {
		t.Errorf("pos_len2 = %v, want ~25", len2)
	}
	delta, ok := h.L.GetGlobal("delta").(lua.LNumber)
	if !ok {
		t.Fatal("delta not a number")
	}
	if float64(delta) != 10 {
		t.Errorf("delta_ms = %v, want 10", delta)
	}
}

func TestHost_OnResize(t *testing.T) {
	h, eng := newTestHost(t)

	err := h.LoadString(`
		r3d.on_resize(function(r)
			size = r.width .. "x" .. r.height
		end)
	`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}

	eng.NotifyResize(800, 600)

	if got := h.L.GetGlobal("size").String(); got != "800x600" {
		t.Errorf("size = %s, want 800x600", got)
	}
}

func TestHost_LoadFile(t *testing.T) {
	h, eng := newTestHost(t)

	path := filepath.Join(t.TempDir(), "spin.lua")
	src := []byte(`
		ticks = 0
		r3d.on_frame(function(f) ticks = ticks + 1 end)
		r3d.log("spin loaded")
	`)
	if err := os.WriteFile(path, src, 0o644); err != nil {
		t.Fatal(err)
	}

	if err := h.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}

	eng.Step(time.Millisecond)
	if got := h.L.GetGlobal("ticks").String(); got != "1" {
		t.Errorf("ticks = %s, want 1", got)
	}
}

func TestHost_LoadFileMissing(t *testing.T) {
	h, _ := newTestHost(t)
	if err := h.LoadFile(filepath.Join(t.TempDir(), "absent.lua")); err == nil {
		t.Fatal("expected error for missing script")
	}
}

func TestHost_ScriptErrorDoesNotStopTick(t *testing.T) {
	h, eng := newTestHost(t)

	err := h.LoadString(`
		r3d.on_frame(function(f) error("deliberate") end)
		calls = 0
		r3d.on_frame(function(f) calls = calls + 1 end)
	`)
	if err != nil {
		t.Fatalf("LoadString: %v", err)
	}

	eng.Step(time.Millisecond)
	eng.Step(time.Millisecond)

	if got := h.L.GetGlobal("calls").String(); got != "2" {
		t.Errorf("calls = %s, want 2 (error in first handler must not stop the second)", got)
	}
}

func TestHost_CloseUnregisters(t *testing.T) {
	logger := logs.NewTestingLog(t)
	eng := engine.New(config.EngineConfig{TickRate: 60}, gfx.NewMemoryBridge(), logger)
	h := NewHost(eng, logger)

	if err := h.LoadString(`r3d.on_frame(function(f) end)`); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	if eng.Frame.Len() != 1 {
		t.Fatalf("Len() = %d before Close", eng.Frame.Len())
	}

	h.Close()
	if eng.Frame.Len() != 0 {
		t.Errorf("Len() = %d after Close, want 0", eng.Frame.Len())
	}

	// Close is idempotent.
	h.Close()
}
