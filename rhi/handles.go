package rhi

// The types below are opaque, reference-counted handles shared between
// client code and the backend's live-resource tracker (§5). AddRef/Release
// adjust the refcount; the backend's Tick destroys a resource once its only
// remaining ref is the tracker's own, for ResourceGraceTicks consecutive
// ticks. A nil handle is a valid "construction failed" value (§7): the
// builder treats it as inert — dependent edges resolve to no-ops at
// barrier/bind time rather than panicking.

// Resource is the common behavior of every RHI handle type.
type Resource interface {
	// Label returns the debug name the resource was created with.
	Label() string
	// AddRef increments the handle's reference count.
	AddRef()
	// Release decrements the handle's reference count. The underlying
	// object is destroyed by the backend's Tick once the count reaches the
	// tracker-only floor of 1 for ResourceGraceTicks ticks, unless Release
	// is called enough times to reach 0 first.
	Release()
}

// Buffer is an RHI buffer resource.
type Buffer interface {
	Resource
	Info() BufferInfo
}

// Texture is an RHI texture resource.
type Texture interface {
	Resource
	Info() TextureInfo
}

// TextureView is an RHI view into a Texture's subresources.
type TextureView interface {
	Resource
	Info() TextureViewInfo
}

// Sampler is an RHI sampler state object.
type Sampler interface {
	Resource
	Info() SamplerInfo
}

// ShaderModule is compiled (or backend-validated) shader bytecode/source.
type ShaderModule interface {
	Resource
	Info() ShaderInfo
}

// RootSignature is a bound-resource layout description realized by the
// backend (pipeline layout / descriptor set layout).
type RootSignature interface {
	Resource
	Info() RootSignatureInfo
}

// DescriptorSet is a packaged group of shader resource bindings conforming
// to a RootSignature layout. Pooled per (layout, set index,
// frame-in-flight slot) (§3.5, §4.3).
type DescriptorSet interface {
	Resource
	Layout() RootSignature
	SetIndex() uint32
	// BindBuffer writes a buffer binding into the set at the given slot.
	BindBuffer(binding uint32, buf Buffer, offset, size uint64)
	// BindTexture writes a texture-view binding into the set at the given slot.
	BindTexture(binding uint32, view TextureView)
	// BindSampler writes a sampler binding into the set at the given slot.
	BindSampler(binding uint32, samp Sampler)
}

// GraphicsPipeline is a realized graphics (render) pipeline state object.
type GraphicsPipeline interface {
	Resource
	Info() GraphicsPipelineInfo
}

// ComputePipeline is a realized compute pipeline state object.
type ComputePipeline interface {
	Resource
	Info() ComputePipelineInfo
}

// RayTracingPipeline is a realized ray-tracing pipeline state object.
type RayTracingPipeline interface {
	Resource
	Info() RayTracingPipelineInfo
}

// Fence signals completion of GPU work submitted prior to it.
type Fence interface {
	Resource
	// Wait blocks the calling goroutine until every piece of GPU work
	// submitted to the owning queue prior to this fence's signal has
	// completed. Uninterruptible — there is no cancellation (§5).
	Wait()
	// Signaled reports whether the fence has already been signaled,
	// without blocking.
	Signaled() bool
}

// Semaphore is a GPU-side synchronization primitive used to order queue
// submissions (e.g. swapchain acquire/present) without a CPU wait.
type Semaphore interface {
	Resource
}

// QueueKind distinguishes the kind of work a Queue accepts. Only
// QueueKindGraphics is realized by the reference backend — the contract
// reserves room for future multi-queue scheduling (§9 open questions).
type QueueKind int

const (
	QueueKindGraphics QueueKind = iota
	QueueKindCompute
	QueueKindTransfer
)

// QueueInfo selects which queue to request from the backend.
type QueueInfo struct {
	Kind QueueKind
}

// Queue is a GPU submission queue.
type Queue interface {
	Resource
	Kind() QueueKind
	// Submit enqueues a recorded command buffer, signaling fence and
	// semaphore (if non-nil) on completion.
	Submit(cmds CommandBuffer, fence Fence, signal Semaphore)
}

// CommandBuffer is the result of ending a CommandContext's recording; it is
// submitted to a Queue.
type CommandBuffer interface {
	Resource
}

// Surface is a native-window presentation target.
type Surface interface {
	Resource
}

// SwapchainInfo configures swapchain creation.
type SwapchainInfo struct {
	Surface     Surface
	Format      Format
	Extent      Extent2D
	ImageCount  uint32
	PresentMode PresentMode
}

// PresentMode controls how rendered frames are delivered to the display.
type PresentMode int

const (
	PresentModeVSync PresentMode = iota
	PresentModeImmediate
	PresentModeTripleBuffered
)

// Swapchain hands out backbuffer textures and presents them.
type Swapchain interface {
	Resource
	// GetNewFrame returns the backbuffer texture for the current frame and
	// advances the internal index. fence/signal, if non-nil, are signaled
	// by the presentation engine when the image is ready to be rendered
	// into.
	GetNewFrame(fence Fence, signal Semaphore) (Texture, error)
	// Present presents the most recently acquired frame, waiting on wait
	// (if non-nil) before doing so.
	Present(wait Semaphore) error
	// CurrentFrameIndex returns an index in [0, ImageCount).
	CurrentFrameIndex() int
	Info() SwapchainInfo
}
