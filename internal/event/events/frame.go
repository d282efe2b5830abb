package events

import (
	"time"

	"github.com/SkuldNorniern/r3d/internal/mathf"
)

// Frame is dispatched once per engine tick.
type Frame struct {
	// Index is the tick count since the engine started, from 1.
	Index uint64

	// Delta is the time since the previous tick.
	Delta time.Duration

	// Elapsed is the total time since the engine started.
	Elapsed time.Duration

	// Camera is the demo camera orientation for this frame.
	Camera mathf.Quat

	// Position is the demo camera position for this frame.
	Position mathf.Vec3
}
