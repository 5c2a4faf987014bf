package rhi

// TextureBarrier describes a state transition for a texture subresource
// range. Undefined -> X never preserves contents; every other transition
// does. src == dst is an idempotent no-op (§4.2).
type TextureBarrier struct {
	Texture     Texture
	Src, Dst    ResourceState
	Subresource TextureSubresourceRange
}

// BufferBarrier describes a state transition for a buffer byte range.
type BufferBarrier struct {
	Buffer   Buffer
	Src, Dst ResourceState
	Range    BufferRange
}

// ColorAttachment binds one color target slot for a render pass.
type ColorAttachment struct {
	View          TextureView
	ResolveTarget TextureView
	LoadOp        AttachmentLoadOp
	StoreOp       AttachmentStoreOp
	ClearColor    [4]float32
}

// DepthStencilAttachment binds the depth/stencil target for a render pass.
type DepthStencilAttachment struct {
	View             TextureView
	DepthLoadOp      AttachmentLoadOp
	DepthStoreOp     AttachmentStoreOp
	DepthClearValue  float32
	StencilLoadOp    AttachmentLoadOp
	StencilStoreOp   AttachmentStoreOp
	StencilClearValue uint32
	ReadOnlyDepth    bool
}

// RenderPassBeginInfo configures BeginRenderPass.
type RenderPassBeginInfo struct {
	Label       string
	Extent      Extent2D
	Layers      uint32
	Colors      []ColorAttachment
	DepthStencil *DepthStencilAttachment
}

// Viewport is a normalized-device-to-window-space mapping rectangle.
type Viewport struct {
	X, Y, Width, Height float32
	MinDepth, MaxDepth  float32
}

// CommandContext is the uniform recording API every backend realizes.
// Bypass command lists (cmdlist package) forward each call immediately;
// queued command lists append a small record and replay at Execute time —
// both must be observationally equivalent (§4.2).
type CommandContext interface {
	// BeginCommand opens the context for recording. Must be paired with
	// EndCommand.
	BeginCommand() error
	// EndCommand closes recording.
	EndCommand() error
	// Execute submits the recorded commands to the owning queue, signaling
	// fence and signal (if non-nil) and waiting on wait (if non-nil) first.
	Execute(fence Fence, wait, signal Semaphore) error

	// TextureBarrier emits a state transition for a texture subresource.
	TextureBarrier(b TextureBarrier)
	// BufferBarrier emits a state transition for a buffer range.
	BufferBarrier(b BufferBarrier)

	// CopyBufferToBuffer copies size bytes from src+srcOffset to dst+dstOffset.
	CopyBufferToBuffer(src Buffer, srcOffset uint64, dst Buffer, dstOffset uint64, size uint64)
	// CopyTextureToTexture copies srcLayers of src to dstLayers of dst.
	CopyTextureToTexture(src Texture, srcLayers TextureSubresourceLayers, dst Texture, dstLayers TextureSubresourceLayers, extent Extent3D)
	// CopyBufferToTexture uploads buffer bytes into a texture subresource.
	CopyBufferToTexture(src Buffer, srcOffset uint64, dst Texture, dstLayers TextureSubresourceLayers, extent Extent3D)
	// GenerateMips fills every mip level below 0 of tex from its base level.
	// A single-mip texture makes this a no-op (§8 boundary behavior).
	GenerateMips(tex Texture)

	// PushDebugEvent opens a named, colored debug marker region.
	PushDebugEvent(name string, color [4]float32)
	// PopDebugEvent closes the most recently opened debug marker region.
	PopDebugEvent()

	// BeginRenderPass opens a render pass with the given attachments.
	BeginRenderPass(info RenderPassBeginInfo)
	// EndRenderPass closes the current render pass.
	EndRenderPass()

	// SetViewport sets the active viewport.
	SetViewport(v Viewport)
	// SetScissor sets the active scissor rectangle.
	SetScissor(r Rect2D)
	// SetDepthBias sets a dynamic depth-bias override.
	SetDepthBias(constant, slopeScale float32)
	// SetLineWidth sets the rasterizer line width for line primitives.
	SetLineWidth(width float32)

	// BindGraphicsPipeline binds a graphics pipeline for subsequent draws.
	BindGraphicsPipeline(p GraphicsPipeline)
	// BindComputePipeline binds a compute pipeline for subsequent dispatches.
	BindComputePipeline(p ComputePipeline)
	// BindRayTracingPipeline binds a ray-tracing pipeline for subsequent trace calls.
	BindRayTracingPipeline(p RayTracingPipeline)

	// PushConstants uploads small inline shader data, valid for the bound
	// pipeline's root signature.
	PushConstants(data []byte, offset uint32, frequency ShaderFrequency)
	// BindDescriptorSet binds set at the given slot index.
	BindDescriptorSet(slot uint32, set DescriptorSet)

	// BindConstantBuffer binds a uniform/constant buffer directly, bypassing
	// descriptor-set allocation (used by immediate-mode material binding,
	// §6.6).
	BindConstantBuffer(slot uint32, buf Buffer, offset, size uint64)
	// BindTextureSlot binds a texture view directly by slot.
	BindTextureSlot(slot uint32, view TextureView)
	// BindSamplerSlot binds a sampler directly by slot.
	BindSamplerSlot(slot uint32, samp Sampler)
	// BindVertexBuffer binds a vertex buffer at the given input slot.
	BindVertexBuffer(slot uint32, buf Buffer, offset uint64)
	// BindIndexBuffer binds the index buffer; width selects 16- or 32-bit indices.
	BindIndexBuffer(buf Buffer, offset uint64, width IndexWidth)

	// Dispatch issues a compute dispatch.
	Dispatch(groupsX, groupsY, groupsZ uint32)
	// DispatchIndirect issues a compute dispatch whose group counts are read
	// from a GPU buffer.
	DispatchIndirect(args Buffer, offset uint64)
	// TraceRays issues a ray-tracing dispatch.
	TraceRays(width, height, depth uint32)

	// Draw issues a non-indexed draw call.
	Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32)
	// DrawIndexed issues an indexed draw call.
	DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32)
	// DrawIndirect issues a non-indexed draw call whose arguments are read
	// from a GPU buffer.
	DrawIndirect(args Buffer, offset uint64)
	// DrawIndexedIndirect issues an indexed draw call whose arguments are
	// read from a GPU buffer (§3.4 AsOutputIndirectDraw).
	DrawIndexedIndirect(args Buffer, offset uint64)

	// ImguiNewFrame begins an immediate-mode debug UI frame rendered through
	// this context, if the backend supports it; a no-op otherwise.
	ImguiNewFrame()
	// ImguiRender records the accumulated debug UI draw data.
	ImguiRender()
}

// IndexWidth selects 16- or 32-bit index buffer element width.
type IndexWidth int

const (
	IndexWidth16 IndexWidth = iota
	IndexWidth32
)
