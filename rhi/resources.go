package rhi

// TextureSubresourceRange addresses a span of mips/layers for barriers and
// views. The zero value ("default") is a wildcard during state tracking
// (§4.4.1): it is treated as covering every subresource.
type TextureSubresourceRange struct {
	Aspect     TextureAspect
	BaseMip    uint32
	LevelCount uint32
	BaseLayer  uint32
	LayerCount uint32
}

// IsDefault reports whether r is the all-zero wildcard range.
func (r TextureSubresourceRange) IsDefault() bool {
	return r == TextureSubresourceRange{}
}

// Covers reports whether r and other refer to the same subresource span for
// the coarse coverage gate in §4.4.1: equal, or either side is the
// wildcard.
func (r TextureSubresourceRange) Covers(other TextureSubresourceRange) bool {
	if r.IsDefault() || other.IsDefault() {
		return true
	}
	return r == other
}

// TextureSubresourceLayers addresses a single mip level across a span of
// array layers, used by copy passes.
type TextureSubresourceLayers struct {
	Aspect     TextureAspect
	MipLevel   uint32
	BaseLayer  uint32
	LayerCount uint32
}

// BufferRange is a byte span within a buffer. (0,0) is the wildcard used by
// the buffer variant of the coverage gate in §4.4.1.
type BufferRange struct {
	Offset uint64
	Size   uint64
}

// IsDefault reports whether r is the (0,0) wildcard range.
func (r BufferRange) IsDefault() bool {
	return r.Offset == 0 && r.Size == 0
}

// Covers mirrors TextureSubresourceRange.Covers for buffer byte ranges.
func (r BufferRange) Covers(other BufferRange) bool {
	if r.IsDefault() || other.IsDefault() {
		return true
	}
	return r == other
}

// BufferInfo describes a buffer to be created or looked up in the buffer
// pool. Pool keying uses (MemoryUsage, Type, CreationFlags) — Size and
// Stride are not part of the key (§4.3): a larger existing buffer may
// satisfy a smaller request.
type BufferInfo struct {
	Size          uint64
	Stride        uint32
	MemoryUsage   MemoryUsage
	Type          ResourceTypeFlags
	CreationFlags uint32
}

// PoolKey returns the structural key the buffer pool indexes on.
func (b BufferInfo) PoolKey() BufferPoolKey {
	return BufferPoolKey{MemoryUsage: b.MemoryUsage, Type: b.Type, CreationFlags: b.CreationFlags}
}

// BufferPoolKey is the (memory_usage, type flags, creation_flags) tuple the
// transient buffer pool hashes on.
type BufferPoolKey struct {
	MemoryUsage   MemoryUsage
	Type          ResourceTypeFlags
	CreationFlags uint32
}

// TextureInfo describes a texture to be created or looked up in the texture
// pool. If MipLevels is 0 the pool substitutes Extent.MipSize() before
// hashing (§3.3, §8 property 5).
type TextureInfo struct {
	Format        Format
	Extent        Extent3D
	ArrayLayers   uint32
	MipLevels     uint32
	MemoryUsage   MemoryUsage
	Type          ResourceTypeFlags
	CreationFlags uint32
}

// Normalized returns a copy of t with MipLevels substituted from
// Extent.MipSize() when it was left at 0.
func (t TextureInfo) Normalized() TextureInfo {
	if t.MipLevels == 0 {
		t.MipLevels = t.Extent.MipSize()
	}
	return t
}

// TextureViewInfo describes a texture view to be created or looked up in the
// view pool. Format == FormatUnknown inherits the texture's format; an
// empty (default) Subresource inherits the texture's default range (§3.3).
type TextureViewInfo struct {
	Texture     Texture
	Format      Format
	ViewType    TextureViewType
	Subresource TextureSubresourceRange
}

// SamplerInfo is a standard sampler parameter bundle; equality is
// structural so the backend/material layer can key caches on it.
type SamplerInfo struct {
	MagFilter     FilterType
	MinFilter     FilterType
	MipMapMode    MipMapMode
	AddressModeU  AddressMode
	AddressModeV  AddressMode
	AddressModeW  AddressMode
	MipLodBias    float32
	MaxAnisotropy float32
	CompareOp     *CompareFunction
	MinLod        float32
	MaxLod        float32
}

// ShaderInfo describes a compiled (or to-be-compiled) shader module.
type ShaderInfo struct {
	Key        string
	Source     string
	EntryPoint string
	Frequency  ShaderFrequency
}

// VertexAttribute describes one element of a vertex buffer layout.
type VertexAttribute struct {
	Format         Format
	Offset         uint64
	ShaderLocation uint32
}

// VertexBufferLayout describes one vertex buffer's stride and attributes.
type VertexBufferLayout struct {
	Stride     uint64
	Attributes []VertexAttribute
}

// ColorTargetInfo describes one color attachment's format and blend state
// for a graphics pipeline.
type ColorTargetInfo struct {
	Format        Format
	WriteMask     ColorWriteMask
	BlendEnabled  bool
	ColorBlendOp  BlendOp
	ColorSrc      BlendFactor
	ColorDst      BlendFactor
	AlphaBlendOp  BlendOp
	AlphaSrc      BlendFactor
	AlphaDst      BlendFactor
}

// GraphicsPipelineInfo bundles the parameters needed to create a graphics
// (render) pipeline.
type GraphicsPipelineInfo struct {
	Label               string
	VertexShader        ShaderInfo
	FragmentShader      ShaderInfo
	RootSignature       RootSignatureInfo
	VertexLayouts       []VertexBufferLayout
	ColorTargets        []ColorTargetInfo
	DepthStencilFormat  Format
	DepthTestEnabled    bool
	DepthWriteEnabled   bool
	DepthCompare        CompareFunction
	DepthBias           int32
	DepthBiasSlopeScale float32
	Topology            PrimitiveType
	FillMode            FillMode
	CullMode            CullMode
	SampleCount         uint32
}

// ComputePipelineInfo bundles the parameters needed to create a compute
// pipeline.
type ComputePipelineInfo struct {
	Label         string
	ComputeShader ShaderInfo
	RootSignature RootSignatureInfo
}

// RayTracingPipelineInfo bundles the parameters needed to create a
// ray-tracing pipeline. Only the shape is specified; realizing it is
// backend-dependent and the reference immediate-mode backend may leave it
// unimplemented (no GPU ray tracing extension to bind to).
type RayTracingPipelineInfo struct {
	Label          string
	RayGenShader   ShaderInfo
	MissShaders    []ShaderInfo
	HitGroups      []ShaderInfo
	RootSignature  RootSignatureInfo
	MaxRecursion   uint32
}

// RootSignatureBinding describes one entry of a root-signature layout: a
// single shader-visible resource slot.
type RootSignatureBinding struct {
	Set       uint32
	Binding   uint32
	Type      ResourceTypeFlags
	Frequency ShaderFrequency
	Count     uint32
}

// RootSignatureInfo describes the full set of binding slots a pipeline
// exposes. Descriptor-set pool keys include the binding list plus set
// index (§3.5, §4.3).
type RootSignatureInfo struct {
	Label    string
	Bindings []RootSignatureBinding
}

// RenderPassInfo is a standard parameter bundle describing a render pass's
// attachment formats, independent of the actual resources bound to it —
// used to key the ephemeral RHI render-pass object some backends require.
type RenderPassInfo struct {
	ColorFormats      []Format
	DepthStencilFormat Format
	SampleCount       uint32
}
