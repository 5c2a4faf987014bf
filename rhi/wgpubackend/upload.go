package wgpubackend

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/kestrel3d/rdgo/rhi"
)

// WriteBuffer uploads data into buf at offset via the graphics queue's
// mapped-write path, grounded on the teacher's InitMeshBuffers
// (engine/renderer/wgpu_renderer_backend.go) b.queue.WriteBuffer call. rhi's
// CommandContext contract has no CPU-upload verb of its own (§4.2 scopes it
// to GPU-side copies only), so callers needing to seed a CpuToGpu buffer —
// rdg.Builder callers building vertex/index/uniform data, engine/asset
// staging mesh and texture bytes — go through the backend directly, exactly
// as the teacher's renderer backend did.
func (b *Backend) WriteBuffer(buf rhi.Buffer, offset uint64, data []byte) {
	wb, ok := buf.(*buffer)
	if !ok || wb == nil || len(data) == 0 {
		return
	}
	b.gfxQueue.native.WriteBuffer(wb.native, offset, data)
}

// WriteTexture uploads pixels into the base mip level of tex, grounded on
// the teacher's InitTextureView b.queue.WriteTexture call. bytesPerRow is
// the tightly-packed row stride (width * bytes-per-texel); rowsPerImage is
// the texture's height.
func (b *Backend) WriteTexture(tex rhi.Texture, pixels []byte, bytesPerRow, rowsPerImage uint32) {
	wt, ok := tex.(*texture)
	if !ok || wt == nil {
		return
	}
	b.WriteTextureMip(tex, 0, pixels, bytesPerRow, wt.info.Extent.Width, rowsPerImage)
}

// WriteTextureMip uploads pixels into mipLevel of tex at the given mip's
// pixel width/height. engine/asset's mip chain staging calls this once per
// generated level, each halved from the one before.
func (b *Backend) WriteTextureMip(tex rhi.Texture, mipLevel uint32, pixels []byte, bytesPerRow, width, height uint32) {
	wt, ok := tex.(*texture)
	if !ok || wt == nil || len(pixels) == 0 {
		return
	}
	b.gfxQueue.native.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: wt.native, MipLevel: mipLevel, Origin: wgpu.Origin3D{}, Aspect: wgpu.TextureAspectAll},
		pixels,
		&wgpu.TextureDataLayout{Offset: 0, BytesPerRow: bytesPerRow, RowsPerImage: height},
		&wgpu.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	)
}
