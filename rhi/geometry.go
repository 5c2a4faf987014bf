package rhi

import "github.com/chewxy/math32"

// Extent2D is an integer 2D size in texels.
type Extent2D struct {
	Width, Height uint32
}

// Extent3D is an integer 3D size in texels.
type Extent3D struct {
	Width, Height, Depth uint32
}

// Offset2D is an integer 2D position in texels.
type Offset2D struct {
	X, Y int32
}

// Offset3D is an integer 3D position in texels.
type Offset3D struct {
	X, Y, Z int32
}

// Rect2D is an axis-aligned integer rectangle.
type Rect2D struct {
	Offset Offset2D
	Extent Extent2D
}

// MipSize returns floor(log2(max(w,h))) + 1, the full mip chain length for
// a 2D extent. Matches TextureInfo's substitution rule when MipLevels == 0.
func (e Extent2D) MipSize() uint32 {
	return mipSize(e.Width, e.Height, 1)
}

// MipSize returns floor(log2(max(w,h,d))) + 1, the full mip chain length for
// a 3D extent.
func (e Extent3D) MipSize() uint32 {
	return mipSize(e.Width, e.Height, e.Depth)
}

func mipSize(w, h, d uint32) uint32 {
	max := w
	if h > max {
		max = h
	}
	if d > max {
		max = d
	}
	if max == 0 {
		return 1
	}
	return uint32(math32.Floor(math32.Log2(float32(max)))) + 1
}
