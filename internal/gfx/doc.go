// Package gfx defines the bridge to the GPU resource system.
//
// The engine treats the GPU as an external collaborator: resources go in
// as raw bytes, opaque handles come out. Bridge implementations own all
// device state; nothing in this module inspects a handle beyond equality
// and zero checks. MemoryBridge is an in-process implementation used by
// tests and the demo binary.
package gfx
