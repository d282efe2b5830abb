package gfx

import (
	"fmt"
	"sync"
)

// MemoryBridge is a Bridge that keeps uploaded resources in process
// memory. It validates inputs the way a device bridge would and hands
// out monotonically increasing handles, which makes it suitable for
// tests and for running the engine without a GPU.
type MemoryBridge struct {
	mu       sync.Mutex
	next     uint64
	buffers  map[BufferHandle]MemoryBuffer
	shaders  map[ShaderHandle]MemoryShader
	textures map[TextureHandle]MemoryTexture
}

// MemoryBuffer is a buffer retained by a MemoryBridge.
type MemoryBuffer struct {
	Usage    BufferUsage
	Contents []byte
}

// MemoryShader is a shader retained by a MemoryBridge.
type MemoryShader struct {
	Label string
	Code  string
}

// MemoryTexture is a texture retained by a MemoryBridge.
type MemoryTexture struct {
	Width, Height uint16
	Format        TextureFormat
	Mipmaps       bool
	Texels        []byte
}

// NewMemoryBridge creates an empty in-memory bridge.
func NewMemoryBridge() *MemoryBridge {
	return &MemoryBridge{
		buffers:  make(map[BufferHandle]MemoryBuffer),
		shaders:  make(map[ShaderHandle]MemoryShader),
		textures: make(map[TextureHandle]MemoryTexture),
	}
}

// UploadVertexBuffer stores a copy of contents and returns its handle.
func (m *MemoryBridge) UploadVertexBuffer(usage BufferUsage, contents []byte) (BufferHandle, error) {
	if usage == 0 {
		return 0, ErrInvalidUsage
	}
	if len(contents) == 0 {
		return 0, ErrEmptyBuffer
	}

	buf := MemoryBuffer{
		Usage:    usage,
		Contents: append([]byte(nil), contents...),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	h := BufferHandle(m.next)
	m.buffers[h] = buf
	return h, nil
}

// CompileShader records the shader source and returns its handle.
func (m *MemoryBridge) CompileShader(src ShaderSource) (ShaderHandle, error) {
	if src.Code == "" {
		return 0, ErrEmptyShader
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	h := ShaderHandle(m.next)
	m.shaders[h] = MemoryShader{Label: src.Label, Code: src.Code}
	return h, nil
}

// UploadTexture stores a copy of texels and returns the texture handle.
func (m *MemoryBridge) UploadTexture(width, height uint16, format TextureFormat, generateMipmaps bool, texels []byte) (TextureHandle, error) {
	if width == 0 || height == 0 {
		return 0, ErrZeroExtent
	}
	texelSize := format.BytesPerTexel()
	if texelSize == 0 {
		return 0, fmt.Errorf("%w: %d", ErrUnknownFormat, format)
	}
	if want := int(width) * int(height) * texelSize; len(texels) != want {
		return 0, fmt.Errorf("%w: got %d bytes, want %d for %dx%d %s",
			ErrTexelSize, len(texels), want, width, height, format)
	}

	tex := MemoryTexture{
		Width:   width,
		Height:  height,
		Format:  format,
		Mipmaps: generateMipmaps,
		Texels:  append([]byte(nil), texels...),
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	h := TextureHandle(m.next)
	m.textures[h] = tex
	return h, nil
}

// Buffer returns the buffer behind a handle.
func (m *MemoryBridge) Buffer(h BufferHandle) (MemoryBuffer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf, ok := m.buffers[h]
	return buf, ok
}

// Shader returns the shader behind a handle.
func (m *MemoryBridge) Shader(h ShaderHandle) (MemoryShader, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sh, ok := m.shaders[h]
	return sh, ok
}

// Texture returns the texture behind a handle.
func (m *MemoryBridge) Texture(h TextureHandle) (MemoryTexture, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	tex, ok := m.textures[h]
	return tex, ok
}

// Counts reports how many resources of each kind the bridge holds.
func (m *MemoryBridge) Counts() (buffers, shaders, textures int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buffers), len(m.shaders), len(m.textures)
}
