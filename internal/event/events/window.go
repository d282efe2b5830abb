package events

// Resize is dispatched when the render surface changes size.
type Resize struct {
	// Width is the new surface width in pixels.
	Width uint16

	// Height is the new surface height in pixels.
	Height uint16
}
