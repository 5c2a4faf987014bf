package rdg

import "github.com/kestrel3d/rdgo/rhi"

// RayTracingPassBuilder is the fluent declaration API for a ray-tracing
// pass node (§4.4 "create_ray_tracing_pass: similar shape" to compute).
type RayTracingPassBuilder struct {
	b    *Builder
	name string
	node *passNode
}

func (rt *RayTracingPassBuilder) ensure() *passNode {
	if rt.node == nil {
		rt.node = rt.b.createPassNode(rt.name, PassKindRayTracing)
	}
	return rt.node
}

func (rt *RayTracingPassBuilder) RootSignature(info rhi.RootSignatureInfo) *RayTracingPassBuilder {
	n := rt.ensure()
	n.rootSignature, n.hasRootSig = info, true
	return rt
}

func (rt *RayTracingPassBuilder) PassIndex(x, y, z uint32) *RayTracingPassBuilder {
	rt.ensure().passIndex = [3]uint32{x, y, z}
	return rt
}

func (rt *RayTracingPassBuilder) ReadTexture(set, binding, index uint32, tex TextureHandle) *RayTracingPassBuilder {
	n := rt.ensure()
	rt.b.addTextureEdge(n.id, "RayTracingPassBuilder.ReadTexture", tex, AsShaderRead, textureBinding{
		viewType: rhi.TextureViewType2D, set: set, binding: binding, index: index,
	})
	return rt
}

func (rt *RayTracingPassBuilder) OutputReadWriteTexture(set, binding, index uint32, tex TextureHandle) *RayTracingPassBuilder {
	n := rt.ensure()
	rt.b.addTextureEdge(n.id, "RayTracingPassBuilder.OutputReadWriteTexture", tex, AsOutputReadWrite, textureBinding{
		viewType: rhi.TextureViewType2D, set: set, binding: binding, index: index,
	})
	return rt
}

func (rt *RayTracingPassBuilder) ReadBuffer(set, binding, index uint32, buf BufferHandle, offset, size uint64) *RayTracingPassBuilder {
	n := rt.ensure()
	rt.b.addBufferEdge(n.id, "RayTracingPassBuilder.ReadBuffer", buf, AsShaderRead, bufferBinding{
		offset: offset, size: size, set: set, binding: binding, index: index,
	})
	return rt
}

func (rt *RayTracingPassBuilder) Execute(fn func(*PassContext)) *RayTracingPassBuilder {
	rt.ensure().executeFn = fn
	return rt
}

func (rt *RayTracingPassBuilder) Finish() RayTracingPassHandle {
	n := rt.ensure()
	h := RayTracingPassHandle{id: n.id}
	rt.b.blackboard.rayTracingPasses[rt.name] = h
	return h
}
