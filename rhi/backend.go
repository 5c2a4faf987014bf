package rhi

// BackendType selects the concrete GPU API a Backend realizes.
type BackendType int

const (
	BackendTypeMock BackendType = iota
	BackendTypeWGPU
)

// BackendInfo configures Backend initialization.
type BackendInfo struct {
	Type        BackendType
	EnableDebug bool
}

// NativeWindow is an opaque platform window handle accepted by
// CreateSurface. The window/surface creator collaborator (§6.5) produces
// one of these; its concrete shape is platform-specific and owned by the
// caller (e.g. engine/window wraps a GLFW window).
type NativeWindow interface{}

// Backend is the single entry point for every RHI factory operation. There
// is no Init entry point and nothing enforces a single instance:
// mockbackend.New and wgpubackend.New each build a new Backend on every
// call.
type Backend interface {
	// Tick age-counts every tracked resource and destroys any whose only
	// remaining ref is the backend's own, for ResourceGraceTicks
	// consecutive ticks (§4.2, §5).
	Tick()
	// Destroy destroys every tracked resource in reverse creation order.
	// Idempotent.
	Destroy()

	CreateBuffer(info BufferInfo) Buffer
	CreateTexture(info TextureInfo) Texture
	CreateTextureView(info TextureViewInfo) TextureView
	CreateSampler(info SamplerInfo) Sampler
	CreateShaderModule(info ShaderInfo) ShaderModule
	CreateRootSignature(info RootSignatureInfo) RootSignature
	CreateGraphicsPipeline(info GraphicsPipelineInfo) GraphicsPipeline
	CreateComputePipeline(info ComputePipelineInfo) ComputePipeline
	CreateRayTracingPipeline(info RayTracingPipelineInfo) RayTracingPipeline
	CreateDescriptorSet(layout RootSignature, setIndex uint32) DescriptorSet
	CreateFence() Fence
	CreateSemaphore() Semaphore

	// CompileShader compiles source text for entry into a backend-specific
	// bytecode representation. Returns an empty slice on failure (§4.2,
	// §7) — never an error, matching the spec's "may return empty on
	// failure" contract.
	CompileShader(source, entry, profile string) []byte

	// GetImmediateCommand returns the lazily-created immediate command
	// context reused for blocking uploads (§4.2, §9 open question).
	GetImmediateCommand() CommandContext
	// GetQueue returns (creating if necessary) the queue described by info.
	GetQueue(info QueueInfo) Queue
	// CreateSurface wraps a native window handle as a presentation target.
	CreateSurface(window NativeWindow) Surface
	// CreateSwapchain creates a swapchain for the given surface.
	CreateSwapchain(info SwapchainInfo) Swapchain

	// CreateCommandContext allocates a new recordable context from the
	// backend's command pool, for use by a cmdlist.List in queued mode.
	CreateCommandContext() CommandContext
	// ReleaseCommandContext returns ctx to the backend's command pool.
	ReleaseCommandContext(ctx CommandContext)
}
