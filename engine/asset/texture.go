package asset

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
)

// Material is an imported glTF material. Texture indices reference Scene.Textures.
type Material struct {
	Name               string
	BaseColor          [4]float32
	Metallic           float32
	Roughness          float32
	BaseColorTexture   int // -1 if absent
	NormalTexture      int // -1 if absent
}

// Texture is image data extracted from a glTF document, either embedded
// (GLB bufferView or data URI) or referenced by external file path.
type Texture struct {
	Name     string
	Path     string
	Data     []byte
	MimeType string
	Width    int
	Height   int
}

// Decode decodes the texture to tightly-packed RGBA8 pixels, from embedded
// Data or from Path on disk.
func (t *Texture) Decode() ([]byte, uint32, uint32, error) {
	if t == nil {
		return nil, 0, 0, fmt.Errorf("texture is nil")
	}

	var img image.Image
	var err error

	switch {
	case len(t.Data) > 0:
		img, _, err = image.Decode(bytes.NewReader(t.Data))
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode embedded image: %w", err)
		}
	case t.Path != "":
		file, openErr := os.Open(t.Path)
		if openErr != nil {
			return nil, 0, 0, fmt.Errorf("failed to open texture file %s: %w", t.Path, openErr)
		}
		defer file.Close()

		img, _, err = image.Decode(file)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("failed to decode texture file %s: %w", t.Path, err)
		}
	default:
		return nil, 0, 0, fmt.Errorf("texture has neither data nor path")
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)

	t.Width, t.Height = width, height
	return rgba.Pix, uint32(width), uint32(height), nil
}
