package engine

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/chewxy/math32"
	"github.com/cyclopcam/logs"

	"github.com/SkuldNorniern/r3d/internal/config"
	"github.com/SkuldNorniern/r3d/internal/event"
	"github.com/SkuldNorniern/r3d/internal/event/events"
	"github.com/SkuldNorniern/r3d/internal/gfx"
	"github.com/SkuldNorniern/r3d/internal/mathf"
)

// Sentinel errors for the engine package.
var (
	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("engine is already started")

	// ErrNotStarted is returned when Run is called before Start.
	ErrNotStarted = errors.New("engine is not started")
)

// builtinShader is compiled through the bridge at startup so the rest
// of the system has a shader handle to render with.
const builtinShader = `
@vertex
fn vs_main(@location(0) pos: vec3<f32>) -> @builtin(position) vec4<f32> {
	return vec4<f32>(pos, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
	return vec4<f32>(1.0, 1.0, 1.0, 1.0);
}
`

// Demo orbit parameters: the camera circles the origin once every
// eight seconds at a fixed radius.
const (
	orbitPeriod = 8 * time.Second
	orbitRadius = 5.0
)

// Engine owns the per-kind event dispatchers and the demo camera state.
// Subscribers register on the exported dispatchers; the engine is the
// only producer. Camera state is mutated by Step only, which must be
// called from one goroutine at a time.
type Engine struct {
	log    logs.Log
	cfg    config.EngineConfig
	bridge gfx.Bridge

	// Frame is dispatched once per tick.
	Frame *event.Dispatcher[events.Frame]

	// Resize is dispatched by NotifyResize.
	Resize *event.Dispatcher[events.Resize]

	// ShaderCompiled is dispatched when the bridge compiles a shader.
	ShaderCompiled *event.Dispatcher[events.ShaderCompiled]

	started atomic.Bool

	frame       uint64
	elapsed     time.Duration
	orientation mathf.Quat
	position    mathf.Vec3
}

// New creates an engine with the given configuration, GPU bridge and
// logger. Handler panics are logged and do not stop the tick loop.
func New(cfg config.EngineConfig, bridge gfx.Bridge, logger logs.Log) *Engine {
	e := &Engine{
		log:         logger,
		cfg:         cfg,
		bridge:      bridge,
		orientation: mathf.QuatIdentity,
		position:    mathf.NewVec3(0, 0, orbitRadius),
	}

	onPanic := func(ev any, panicValue any, stack []byte) {
		logger.Errorf("event handler panic on %T: %v\n%s", ev, panicValue, stack)
	}
	e.Frame = event.New[events.Frame](event.WithPanicHandler(onPanic))
	e.Resize = event.New[events.Resize](event.WithPanicHandler(onPanic))
	e.ShaderCompiled = event.New[events.ShaderCompiled](event.WithPanicHandler(onPanic))

	return e
}

// Start compiles the builtin shader through the bridge and announces
// the handle. It must be called once before Run.
func (e *Engine) Start() error {
	if e.started.Swap(true) {
		return ErrAlreadyStarted
	}

	handle, err := e.bridge.CompileShader(gfx.ShaderSource{
		Label: "builtin",
		Code:  builtinShader,
	})
	if err != nil {
		e.started.Store(false)
		return fmt.Errorf("compile builtin shader: %w", err)
	}
	e.log.Infof("engine started, builtin shader handle %d", handle)

	e.ShaderCompiled.Dispatch(events.ShaderCompiled{Handle: handle, Label: "builtin"})
	return nil
}

// Step advances the demo camera by delta and dispatches one frame
// event. It returns the frame index just dispatched.
func (e *Engine) Step(delta time.Duration) uint64 {
	e.frame++
	e.elapsed += delta

	angle := 2 * math32.Pi * float32(delta.Seconds()) / float32(orbitPeriod.Seconds())
	spin := mathf.QuatFromAxisAngle(mathf.NewVec3(0, 1, 0), angle)
	e.orientation = spin.Mul(e.orientation).Normalized()
	e.position = e.orientation.RotateVec3(mathf.NewVec3(0, 0, orbitRadius))

	e.Frame.Dispatch(events.Frame{
		Index:    e.frame,
		Delta:    delta,
		Elapsed:  e.elapsed,
		Camera:   e.orientation,
		Position: e.position,
	})
	return e.frame
}

// Run ticks the engine at the configured rate until ctx is cancelled or
// the configured frame limit is reached. It returns ctx.Err on
// cancellation and nil when the frame limit stops the loop.
func (e *Engine) Run(ctx context.Context) error {
	if !e.started.Load() {
		return ErrNotStarted
	}

	interval := time.Second / time.Duration(e.cfg.TickRate)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	e.log.Infof("run loop at %d ticks/s (max frames %d)", e.cfg.TickRate, e.cfg.MaxFrames)

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			e.log.Infof("run loop cancelled after %d frames", e.frame)
			return ctx.Err()
		case now := <-ticker.C:
			frame := e.Step(now.Sub(last))
			last = now
			if e.cfg.MaxFrames > 0 && frame >= uint64(e.cfg.MaxFrames) {
				e.log.Infof("frame limit reached at %d", frame)
				return nil
			}
		}
	}
}

// NotifyResize records a surface size change and dispatches it.
func (e *Engine) NotifyResize(width, height uint16) {
	e.log.Infof("surface resized to %dx%d", width, height)
	e.Resize.Dispatch(events.Resize{Width: width, Height: height})
}

// FrameCount returns the number of frames stepped so far.
func (e *Engine) FrameCount() uint64 {
	return e.frame
}
