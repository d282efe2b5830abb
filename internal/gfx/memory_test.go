package gfx

import (
	"bytes"
	"errors"
	"testing"
)

func TestMemoryBridge_UploadVertexBuffer(t *testing.T) {
	m := NewMemoryBridge()

	data := []byte{1, 2, 3, 4}
	h, err := m.UploadVertexBuffer(BufferUsageVertex|BufferUsageCopyDst, data)
	if err != nil {
		t.Fatalf("UploadVertexBuffer: %v", err)
	}
	if h == 0 {
		t.Fatal("got zero handle")
	}

	buf, ok := m.Buffer(h)
	if !ok {
		t.Fatal("buffer not retained")
	}
	if !bytes.Equal(buf.Contents, data) {
		t.Errorf("contents = %v, want %v", buf.Contents, data)
	}
	if buf.Usage != BufferUsageVertex|BufferUsageCopyDst {
		t.Errorf("usage = %v", buf.Usage)
	}

	// The bridge keeps its own copy.
	data[0] = 99
	buf, _ = m.Buffer(h)
	if buf.Contents[0] != 1 {
		t.Error("bridge aliases caller memory")
	}
}

func TestMemoryBridge_UploadVertexBufferErrors(t *testing.T) {
	m := NewMemoryBridge()

	if _, err := m.UploadVertexBuffer(0, []byte{1}); !errors.Is(err, ErrInvalidUsage) {
		t.Errorf("empty usage: %v", err)
	}
	if _, err := m.UploadVertexBuffer(BufferUsageVertex, nil); !errors.Is(err, ErrEmptyBuffer) {
		t.Errorf("empty contents: %v", err)
	}
}

func TestMemoryBridge_CompileShader(t *testing.T) {
	m := NewMemoryBridge()

	h, err := m.CompileShader(ShaderSource{Label: "basic", Code: "fn main() {}"})
	if err != nil {
		t.Fatalf("CompileShader: %v", err)
	}

	sh, ok := m.Shader(h)
	if !ok {
		t.Fatal("shader not retained")
	}
	if sh.Label != "basic" || sh.Code != "fn main() {}" {
		t.Errorf("shader = %+v", sh)
	}

	if _, err := m.CompileShader(ShaderSource{}); !errors.Is(err, ErrEmptyShader) {
		t.Errorf("empty source: %v", err)
	}
}

func TestMemoryBridge_UploadTexture(t *testing.T) {
	m := NewMemoryBridge()

	texels := make([]byte, 2*2*4)
	h, err := m.UploadTexture(2, 2, TextureFormatRGBA8, true, texels)
	if err != nil {
		t.Fatalf("UploadTexture: %v", err)
	}

	tex, ok := m.Texture(h)
	if !ok {
		t.Fatal("texture not retained")
	}
	if tex.Width != 2 || tex.Height != 2 || tex.Format != TextureFormatRGBA8 || !tex.Mipmaps {
		t.Errorf("texture = %+v", tex)
	}
}

func TestMemoryBridge_UploadTextureErrors(t *testing.T) {
	tests := []struct {
		name    string
		w, h    uint16
		format  TextureFormat
		texels  []byte
		wantErr error
	}{
		{"zero width", 0, 2, TextureFormatRGBA8, nil, ErrZeroExtent},
		{"zero height", 2, 0, TextureFormatRGBA8, nil, ErrZeroExtent},
		{"unknown format", 1, 1, TextureFormat(42), []byte{0}, ErrUnknownFormat},
		{"short texels", 2, 2, TextureFormatRGBA8, make([]byte, 15), ErrTexelSize},
		{"long texels", 1, 1, TextureFormatR8, make([]byte, 2), ErrTexelSize},
	}

	m := NewMemoryBridge()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.UploadTexture(tt.w, tt.h, tt.format, false, tt.texels)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestMemoryBridge_HandlesAreDistinct(t *testing.T) {
	m := NewMemoryBridge()

	b, _ := m.UploadVertexBuffer(BufferUsageVertex, []byte{0})
	s, _ := m.CompileShader(ShaderSource{Code: "x"})
	x, _ := m.UploadTexture(1, 1, TextureFormatR8, false, []byte{0})

	if uint64(b) == uint64(s) || uint64(s) == uint64(x) || uint64(b) == uint64(x) {
		t.Errorf("handles collide: %d %d %d", b, s, x)
	}

	buffers, shaders, textures := m.Counts()
	if buffers != 1 || shaders != 1 || textures != 1 {
		t.Errorf("Counts() = %d, %d, %d", buffers, shaders, textures)
	}
}

func TestTextureFormat_BytesPerTexel(t *testing.T) {
	tests := []struct {
		format TextureFormat
		want   int
	}{
		{TextureFormatR8, 1},
		{TextureFormatRG8, 2},
		{TextureFormatRGBA8, 4},
		{TextureFormatBGRA8, 4},
		{TextureFormatRGBA16F, 8},
		{TextureFormat(99), 0},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.BytesPerTexel(); got != tt.want {
				t.Errorf("BytesPerTexel() = %d, want %d", got, tt.want)
			}
		})
	}
}
