// Package script hosts embedded Lua scripts that subscribe to engine
// events.
//
// Scripts see a single global table named "r3d" with three functions:
//
//	r3d.on_frame(fn)   -- fn(frame) called once per engine tick
//	r3d.on_resize(fn)  -- fn(resize) called on surface resize
//	r3d.log(msg)       -- write msg to the engine log
//
// The frame table carries index, delta_ms, elapsed_ms, camera
// {x,y,z,w} and position {x,y,z}; the resize table carries width and
// height. Lua callbacks run inside Dispatch on the engine's tick
// goroutine, and the Lua state itself is single-threaded: a Host must
// only be used from the goroutine that steps the engine. Errors raised
// by a callback are logged and do not stop the tick.
package script
