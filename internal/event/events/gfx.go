package events

import "github.com/SkuldNorniern/r3d/internal/gfx"

// ShaderCompiled is dispatched after the bridge compiles a shader.
type ShaderCompiled struct {
	// Handle is the opaque shader handle returned by the bridge.
	Handle gfx.ShaderHandle

	// Label is the shader label passed to the bridge.
	Label string
}

// BufferUploaded is dispatched after the bridge uploads a buffer.
type BufferUploaded struct {
	// Handle is the opaque buffer handle returned by the bridge.
	Handle gfx.BufferHandle

	// Size is the uploaded size in bytes.
	Size int
}

// TextureUploaded is dispatched after the bridge uploads a texture.
type TextureUploaded struct {
	// Handle is the opaque texture handle returned by the bridge.
	Handle gfx.TextureHandle

	// Width and Height are the texture dimensions in texels.
	Width, Height uint16
}
