package asset

import (
	"fmt"
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/kestrel3d/rdgo/rdg"
	"github.com/kestrel3d/rdgo/rhi"
)

// vertexStride is the byte size of one Vertex: position(12) + normal(12) +
// texcoord(8) + tangent(16).
const vertexStride = 48

// Uploader is the subset of backend behavior needed to seed GPU resources
// with CPU bytes. rhi.CommandContext has no CPU-upload verb of its own —
// only GPU-to-GPU copies — so backends that support staging expose it
// separately; rhi/wgpubackend.Backend does, via its queue's mapped-write
// path. Staging depends on this narrow interface rather than the concrete
// backend package so asset stays backend-agnostic.
type Uploader interface {
	WriteBuffer(buf rhi.Buffer, offset uint64, data []byte)
	WriteTexture(tex rhi.Texture, pixels []byte, bytesPerRow, rowsPerImage uint32)
	WriteTextureMip(tex rhi.Texture, mipLevel uint32, pixels []byte, bytesPerRow, width, height uint32)
}

// GPUMesh is a Mesh staged into persistent GPU vertex/index buffers. The
// buffers are never returned to respool's transient pool — they live for
// as long as the mesh is in use and are Import()ed into a fresh rdg.Builder
// graph every frame they are drawn.
type GPUMesh struct {
	Mesh
	VertexBuffer rhi.Buffer
	IndexBuffer  rhi.Buffer
}

// GPUTexture is a Texture decoded and staged into a persistent GPU texture.
type GPUTexture struct {
	Texture
	GPU rhi.Texture
}

// StageMeshes creates and uploads persistent vertex/index buffers for every
// mesh in meshes.
func StageMeshes(backend rhi.Backend, uploader Uploader, meshes []Mesh) ([]GPUMesh, error) {
	staged := make([]GPUMesh, len(meshes))
	for i, m := range meshes {
		vbuf := backend.CreateBuffer(rhi.BufferInfo{
			Size: uint64(len(m.Vertices)) * vertexStride,
			Type: rhi.ResourceTypeVertexBuffer,
		})
		uploader.WriteBuffer(vbuf, 0, vertexBytes(m.Vertices))

		ibuf := backend.CreateBuffer(rhi.BufferInfo{
			Size: uint64(len(m.Indices)) * 4,
			Type: rhi.ResourceTypeIndexBuffer,
		})
		uploader.WriteBuffer(ibuf, 0, indexBytes(m.Indices))

		staged[i] = GPUMesh{Mesh: m, VertexBuffer: vbuf, IndexBuffer: ibuf}
	}
	return staged, nil
}

// StageTextures decodes and uploads every texture in textures as a fully
// mipped RGBA8 2D GPU texture, generating the mip chain with
// golang.org/x/image/draw rather than a hand-rolled box filter.
func StageTextures(backend rhi.Backend, uploader Uploader, textures []Texture) ([]GPUTexture, error) {
	staged := make([]GPUTexture, len(textures))
	for i, t := range textures {
		pixels, width, height, err := t.Decode()
		if err != nil {
			return nil, fmt.Errorf("asset: stage texture %d: %w", i, err)
		}

		base := &image.RGBA{Pix: pixels, Stride: int(width) * 4, Rect: image.Rect(0, 0, int(width), int(height))}
		mips := generateMipChain(base)

		tex := backend.CreateTexture(rhi.TextureInfo{
			Format:      rhi.FormatRGBA8Unorm,
			Extent:      rhi.Extent3D{Width: width, Height: height, Depth: 1},
			ArrayLayers: 1,
			MipLevels:   uint32(len(mips)),
			Type:        rhi.ResourceTypeTexture,
		})

		for level, mip := range mips {
			w, h := uint32(mip.Rect.Dx()), uint32(mip.Rect.Dy())
			uploader.WriteTextureMip(tex, uint32(level), mip.Pix, w*4, w, h)
		}

		staged[i] = GPUTexture{Texture: t, GPU: tex}
	}
	return staged, nil
}

// generateMipChain downsamples base down to a 1x1 mip using the CatmullRom
// kernel, which holds detail noticeably better than a box filter for the
// glancing-angle minification mipmaps exist to fix.
func generateMipChain(base *image.RGBA) []*image.RGBA {
	chain := []*image.RGBA{base}
	w, h := base.Rect.Dx(), base.Rect.Dy()
	for w > 1 || h > 1 {
		w, h = max(w/2, 1), max(h/2, 1)
		next := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(next, next.Bounds(), chain[len(chain)-1], chain[len(chain)-1].Bounds(), draw.Src, nil)
		chain = append(chain, next)
	}
	return chain
}

// Import declares m's persistent vertex and index buffers as imported rdg
// resources under name, ready for a render pass to bind this frame.
func (m *GPUMesh) Import(b *rdg.Builder, name string) (vertices, indices rdg.BufferHandle) {
	vertices = b.CreateBuffer(name + "-vertices").Import(m.VertexBuffer, rhi.ResourceStateVertexBuffer).Finish()
	indices = b.CreateBuffer(name + "-indices").Import(m.IndexBuffer, rhi.ResourceStateIndexBuffer).Finish()
	return
}

// Import declares t's persistent GPU texture as an imported rdg resource
// under name, ready for a pass to sample this frame.
func (t *GPUTexture) Import(b *rdg.Builder, name string) rdg.TextureHandle {
	return b.CreateTexture(name).Import(t.GPU, rhi.ResourceStateShaderResource).Finish()
}

func vertexBytes(verts []Vertex) []byte {
	out := make([]byte, len(verts)*vertexStride)
	for i, v := range verts {
		base := i * vertexStride
		putFloat32(out[base:], v.Position[0])
		putFloat32(out[base+4:], v.Position[1])
		putFloat32(out[base+8:], v.Position[2])
		putFloat32(out[base+12:], v.Normal[0])
		putFloat32(out[base+16:], v.Normal[1])
		putFloat32(out[base+20:], v.Normal[2])
		putFloat32(out[base+24:], v.TexCoord[0])
		putFloat32(out[base+28:], v.TexCoord[1])
		putFloat32(out[base+32:], v.Tangent[0])
		putFloat32(out[base+36:], v.Tangent[1])
		putFloat32(out[base+40:], v.Tangent[2])
		putFloat32(out[base+44:], v.Tangent[3])
	}
	return out
}

func indexBytes(indices []uint32) []byte {
	out := make([]byte, len(indices)*4)
	for i, v := range indices {
		base := i * 4
		out[base] = byte(v)
		out[base+1] = byte(v >> 8)
		out[base+2] = byte(v >> 16)
		out[base+3] = byte(v >> 24)
	}
	return out
}

func putFloat32(dst []byte, f float32) {
	bits := math.Float32bits(f)
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
}
