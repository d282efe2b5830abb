package gfx

// BufferHandle is an opaque reference to a GPU buffer. The zero value
// is never a valid handle.
type BufferHandle uint64

// ShaderHandle is an opaque reference to a compiled shader module.
type ShaderHandle uint64

// TextureHandle is an opaque reference to an uploaded texture.
type TextureHandle uint64

// BufferUsage is a bit set describing how an uploaded buffer will be
// used.
type BufferUsage uint32

const (
	BufferUsageVertex BufferUsage = 1 << iota
	BufferUsageIndex
	BufferUsageUniform
	BufferUsageCopySrc
	BufferUsageCopyDst
)

// TextureFormat identifies the texel layout of an uploaded texture.
type TextureFormat int

const (
	TextureFormatR8 TextureFormat = iota
	TextureFormatRG8
	TextureFormatRGBA8
	TextureFormatBGRA8
	TextureFormatRGBA16F
)

// BytesPerTexel returns the size of one texel in the format.
func (f TextureFormat) BytesPerTexel() int {
	switch f {
	case TextureFormatR8:
		return 1
	case TextureFormatRG8:
		return 2
	case TextureFormatRGBA8, TextureFormatBGRA8:
		return 4
	case TextureFormatRGBA16F:
		return 8
	default:
		return 0
	}
}

// String returns the format name.
func (f TextureFormat) String() string {
	switch f {
	case TextureFormatR8:
		return "R8"
	case TextureFormatRG8:
		return "RG8"
	case TextureFormatRGBA8:
		return "RGBA8"
	case TextureFormatBGRA8:
		return "BGRA8"
	case TextureFormatRGBA16F:
		return "RGBA16F"
	default:
		return "unknown"
	}
}

// ShaderSource is shader code handed to the bridge for compilation.
type ShaderSource struct {
	// Label names the shader in diagnostics. May be empty.
	Label string

	// Code is the shader source text.
	Code string
}

// Bridge uploads resources to the GPU and returns opaque handles.
// It is used during runtime asset loading; implementations must be safe
// for concurrent use.
type Bridge interface {
	// UploadVertexBuffer uploads a vertex buffer and returns its handle.
	UploadVertexBuffer(usage BufferUsage, contents []byte) (BufferHandle, error)

	// CompileShader compiles a shader module and returns its handle.
	CompileShader(src ShaderSource) (ShaderHandle, error)

	// UploadTexture uploads texel data and returns the texture handle.
	// len(texels) must equal int(width) * int(height) *
	// format.BytesPerTexel().
	UploadTexture(width, height uint16, format TextureFormat, generateMipmaps bool, texels []byte) (TextureHandle, error)
}
