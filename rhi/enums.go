package rhi

// ResourceState is the set of GPU resource states the backend can transition
// a resource between. Undefined -> X always succeeds without preserving
// contents; every other transition preserves contents. Transitions where
// src == dst are idempotent no-ops.
type ResourceState int

const (
	ResourceStateUndefined ResourceState = iota
	ResourceStateCommon
	ResourceStateTransferSrc
	ResourceStateTransferDst
	ResourceStateVertexBuffer
	ResourceStateIndexBuffer
	ResourceStateColorAttachment
	ResourceStateDepthStencilAttachment
	ResourceStateUnorderedAccess
	ResourceStateShaderResource
	ResourceStateIndirectArgument
	ResourceStatePresent
	ResourceStateAccelerationStructure
)

func (s ResourceState) String() string {
	switch s {
	case ResourceStateUndefined:
		return "Undefined"
	case ResourceStateCommon:
		return "Common"
	case ResourceStateTransferSrc:
		return "TransferSrc"
	case ResourceStateTransferDst:
		return "TransferDst"
	case ResourceStateVertexBuffer:
		return "VertexBuffer"
	case ResourceStateIndexBuffer:
		return "IndexBuffer"
	case ResourceStateColorAttachment:
		return "ColorAttachment"
	case ResourceStateDepthStencilAttachment:
		return "DepthStencilAttachment"
	case ResourceStateUnorderedAccess:
		return "UnorderedAccess"
	case ResourceStateShaderResource:
		return "ShaderResource"
	case ResourceStateIndirectArgument:
		return "IndirectArgument"
	case ResourceStatePresent:
		return "Present"
	case ResourceStateAccelerationStructure:
		return "AccelerationStructure"
	default:
		return "Unknown"
	}
}

// ResourceTypeFlags is a bitset describing how a resource may be bound.
// Buffer/texture pool keys include these bits (§4.3).
type ResourceTypeFlags uint32

const (
	ResourceTypeSampler ResourceTypeFlags = 1 << iota
	ResourceTypeTexture
	ResourceTypeRwTexture
	ResourceTypeTextureCube
	ResourceTypeRenderTarget
	ResourceTypeCombinedImageSampler
	ResourceTypeBuffer
	ResourceTypeRwBuffer
	ResourceTypeUniformBuffer
	ResourceTypeVertexBuffer
	ResourceTypeIndexBuffer
	ResourceTypeIndirectBuffer
	ResourceTypeTexelBuffer
	ResourceTypeRwTexelBuffer
	ResourceTypeRayTracing
	ResourceTypeDepthStencil
)

// Has reports whether all bits in mask are set in f.
func (f ResourceTypeFlags) Has(mask ResourceTypeFlags) bool {
	return f&mask == mask
}

// MemoryUsage describes which side of the PCIe bus a resource's memory is
// optimized for. Pool keys for buffers and textures include this (§4.3).
type MemoryUsage int

const (
	MemoryUsageUnknown MemoryUsage = iota
	MemoryUsageGpuOnly
	MemoryUsageCpuOnly
	MemoryUsageCpuToGpu
	MemoryUsageGpuToCpu
)

// Format is the canonical set of pixel formats. Every member must admit a
// loss-free mapping to the target API's own format enumeration.
type Format int

const (
	FormatUnknown Format = iota

	FormatR8Uint
	FormatR8Sint
	FormatR8Unorm
	FormatR8Snorm
	FormatR8Srgb

	FormatR16Uint
	FormatR16Sint
	FormatR16Unorm
	FormatR16Snorm
	FormatR16Sfloat

	FormatR32Uint
	FormatR32Sint
	FormatR32Sfloat

	FormatRG8Uint
	FormatRG8Sint
	FormatRG8Unorm
	FormatRG8Snorm
	FormatRG8Srgb

	FormatRG16Uint
	FormatRG16Sint
	FormatRG16Unorm
	FormatRG16Snorm
	FormatRG16Sfloat

	FormatRG32Uint
	FormatRG32Sint
	FormatRG32Sfloat

	FormatRGB8Uint
	FormatRGB8Sint
	FormatRGB8Unorm
	FormatRGB8Snorm
	FormatRGB8Srgb

	FormatRGB16Uint
	FormatRGB16Sint
	FormatRGB16Unorm
	FormatRGB16Snorm
	FormatRGB16Sfloat

	FormatRGB32Uint
	FormatRGB32Sint
	FormatRGB32Sfloat

	FormatRGBA8Uint
	FormatRGBA8Sint
	FormatRGBA8Unorm
	FormatRGBA8Snorm
	FormatRGBA8Srgb

	FormatRGBA16Uint
	FormatRGBA16Sint
	FormatRGBA16Unorm
	FormatRGBA16Snorm
	FormatRGBA16Sfloat

	FormatRGBA32Uint
	FormatRGBA32Sint
	FormatRGBA32Sfloat

	FormatD32Float
	FormatD24UnormS8Uint
	FormatD32FloatS8Uint
)

// IsDepthStencil reports whether f carries a depth or stencil aspect.
func (f Format) IsDepthStencil() bool {
	switch f {
	case FormatD32Float, FormatD24UnormS8Uint, FormatD32FloatS8Uint:
		return true
	default:
		return false
	}
}

// ShaderFrequency is a bitset of pipeline stages a shader or binding is
// visible to.
type ShaderFrequency uint32

const (
	ShaderFrequencyVertex ShaderFrequency = 1 << iota
	ShaderFrequencyFragment
	ShaderFrequencyGeometry
	ShaderFrequencyCompute
	ShaderFrequencyMesh
	ShaderFrequencyRayGen
	ShaderFrequencyRayMiss
	ShaderFrequencyClosestHit
	ShaderFrequencyAnyHit
	ShaderFrequencyIntersection
)

// AttachmentLoadOp controls how a render-pass attachment's prior contents
// are handled at the start of the pass.
type AttachmentLoadOp int

const (
	LoadOpLoad AttachmentLoadOp = iota
	LoadOpClear
	LoadOpDontCare
)

// AttachmentStoreOp controls whether a render-pass attachment's contents are
// written back at the end of the pass.
type AttachmentStoreOp int

const (
	StoreOpStore AttachmentStoreOp = iota
	StoreOpDontCare
)

// FilterType selects nearest or linear sampling.
type FilterType int

const (
	FilterNearest FilterType = iota
	FilterLinear
)

// MipMapMode selects nearest or linear mip-level blending.
type MipMapMode int

const (
	MipMapModeNearest MipMapMode = iota
	MipMapModeLinear
)

// AddressMode controls texture coordinate wrapping outside [0,1].
type AddressMode int

const (
	AddressModeRepeat AddressMode = iota
	AddressModeMirroredRepeat
	AddressModeClampToEdge
	AddressModeClampToBorder
)

// CompareFunction is a depth/stencil/sampler comparison operator.
type CompareFunction int

const (
	CompareNever CompareFunction = iota
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

// BlendOp is a blend-equation operator.
type BlendOp int

const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// BlendFactor is a source or destination blend multiplier.
type BlendFactor int

const (
	BlendFactorZero BlendFactor = iota
	BlendFactorOne
	BlendFactorSrcAlpha
	BlendFactorOneMinusSrcAlpha
	BlendFactorDstAlpha
	BlendFactorOneMinusDstAlpha
	BlendFactorSrcColor
	BlendFactorOneMinusSrcColor
	BlendFactorDstColor
	BlendFactorOneMinusDstColor
)

// ColorWriteMask is a bitset of color channels a draw call may write.
type ColorWriteMask uint32

const (
	ColorWriteRed ColorWriteMask = 1 << iota
	ColorWriteGreen
	ColorWriteBlue
	ColorWriteAlpha
	ColorWriteAll = ColorWriteRed | ColorWriteGreen | ColorWriteBlue | ColorWriteAlpha
)

// StencilOp is a stencil test pass/fail operation.
type StencilOp int

const (
	StencilOpKeep StencilOp = iota
	StencilOpZero
	StencilOpReplace
	StencilOpIncrementClamp
	StencilOpDecrementClamp
	StencilOpInvert
	StencilOpIncrementWrap
	StencilOpDecrementWrap
)

// PrimitiveType selects the input assembler topology.
type PrimitiveType int

const (
	PrimitiveTriangleList PrimitiveType = iota
	PrimitiveTriangleStrip
	PrimitiveLineList
	PrimitiveLineStrip
	PrimitivePointList
)

// FillMode selects wireframe or solid rasterization.
type FillMode int

const (
	FillModeSolid FillMode = iota
	FillModeWireframe
)

// CullMode selects which triangle winding to discard.
type CullMode int

const (
	CullModeNone CullMode = iota
	CullModeFront
	CullModeBack
)

// TextureViewType selects how a texture's subresources are interpreted when
// bound through a view.
type TextureViewType int

const (
	TextureViewType2D TextureViewType = iota
	TextureViewType2DArray
	TextureViewTypeCube
	TextureViewTypeCubeArray
	TextureViewType3D
)

// TextureAspect selects which aspect(s) of a texture a view or barrier
// addresses.
type TextureAspect uint32

const (
	TextureAspectColor TextureAspect = 1 << iota
	TextureAspectDepth
	TextureAspectStencil
)
