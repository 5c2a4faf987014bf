// Package wgpubackend realizes rhi.Backend against github.com/cogentcore/webgpu,
// grounded on the device/adapter/surface setup and resource-creation patterns
// in the teacher's engine/renderer/wgpu_renderer_backend.go.
package wgpubackend

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/kestrel3d/rdgo/rhi"
)

// textureFormat maps an rhi.Format to its wgpu equivalent. Formats with no
// case below fall back to FormatUndefined: the packed RGB8/RGB16/RGB32
// triples (WebGPU has no native 3-channel storage class), R8Srgb, RG8Srgb,
// and the 16-bit Unorm/Snorm variants (R16, RG16, RGBA16).
func textureFormat(f rhi.Format) wgpu.TextureFormat {
	switch f {
	case rhi.FormatR8Uint:
		return wgpu.TextureFormatR8Uint
	case rhi.FormatR8Sint:
		return wgpu.TextureFormatR8Sint
	case rhi.FormatR8Unorm:
		return wgpu.TextureFormatR8Unorm
	case rhi.FormatR8Snorm:
		return wgpu.TextureFormatR8Snorm
	case rhi.FormatR16Uint:
		return wgpu.TextureFormatR16Uint
	case rhi.FormatR16Sint:
		return wgpu.TextureFormatR16Sint
	case rhi.FormatR16Sfloat:
		return wgpu.TextureFormatR16Float
	case rhi.FormatR32Uint:
		return wgpu.TextureFormatR32Uint
	case rhi.FormatR32Sint:
		return wgpu.TextureFormatR32Sint
	case rhi.FormatR32Sfloat:
		return wgpu.TextureFormatR32Float
	case rhi.FormatRG8Uint:
		return wgpu.TextureFormatRG8Uint
	case rhi.FormatRG8Sint:
		return wgpu.TextureFormatRG8Sint
	case rhi.FormatRG8Unorm:
		return wgpu.TextureFormatRG8Unorm
	case rhi.FormatRG8Snorm:
		return wgpu.TextureFormatRG8Snorm
	case rhi.FormatRG16Uint:
		return wgpu.TextureFormatRG16Uint
	case rhi.FormatRG16Sint:
		return wgpu.TextureFormatRG16Sint
	case rhi.FormatRG16Sfloat:
		return wgpu.TextureFormatRG16Float
	case rhi.FormatRG32Uint:
		return wgpu.TextureFormatRG32Uint
	case rhi.FormatRG32Sint:
		return wgpu.TextureFormatRG32Sint
	case rhi.FormatRG32Sfloat:
		return wgpu.TextureFormatRG32Float
	case rhi.FormatRGBA8Uint:
		return wgpu.TextureFormatRGBA8Uint
	case rhi.FormatRGBA8Sint:
		return wgpu.TextureFormatRGBA8Sint
	case rhi.FormatRGBA8Unorm:
		return wgpu.TextureFormatRGBA8Unorm
	case rhi.FormatRGBA8Snorm:
		return wgpu.TextureFormatRGBA8Snorm
	case rhi.FormatRGBA8Srgb:
		return wgpu.TextureFormatRGBA8UnormSrgb
	case rhi.FormatRGBA16Uint:
		return wgpu.TextureFormatRGBA16Uint
	case rhi.FormatRGBA16Sint:
		return wgpu.TextureFormatRGBA16Sint
	case rhi.FormatRGBA16Sfloat:
		return wgpu.TextureFormatRGBA16Float
	case rhi.FormatRGBA32Uint:
		return wgpu.TextureFormatRGBA32Uint
	case rhi.FormatRGBA32Sint:
		return wgpu.TextureFormatRGBA32Sint
	case rhi.FormatRGBA32Sfloat:
		return wgpu.TextureFormatRGBA32Float
	case rhi.FormatD32Float:
		return wgpu.TextureFormatDepth32Float
	case rhi.FormatD24UnormS8Uint:
		return wgpu.TextureFormatDepth24PlusStencil8
	case rhi.FormatD32FloatS8Uint:
		return wgpu.TextureFormatDepth32FloatStencil8
	default:
		return wgpu.TextureFormatUndefined
	}
}

// textureUsage derives the wgpu usage flags a texture needs from the
// resource-type flags it was declared with (§4.3's pool key also hashes on
// Type, so this mapping must be deterministic).
func textureUsage(t rhi.ResourceTypeFlags) wgpu.TextureUsage {
	usage := wgpu.TextureUsageCopySrc | wgpu.TextureUsageCopyDst
	if t.Has(rhi.ResourceTypeTexture) || t.Has(rhi.ResourceTypeCombinedImageSampler) || t.Has(rhi.ResourceTypeTextureCube) {
		usage |= wgpu.TextureUsageTextureBinding
	}
	if t.Has(rhi.ResourceTypeRwTexture) {
		usage |= wgpu.TextureUsageStorageBinding
	}
	if t.Has(rhi.ResourceTypeRenderTarget) {
		usage |= wgpu.TextureUsageRenderAttachment
	}
	if t.Has(rhi.ResourceTypeDepthStencil) {
		usage |= wgpu.TextureUsageRenderAttachment
	}
	return usage
}

func bufferUsage(t rhi.ResourceTypeFlags) wgpu.BufferUsage {
	usage := wgpu.BufferUsageCopySrc | wgpu.BufferUsageCopyDst
	if t.Has(rhi.ResourceTypeVertexBuffer) {
		usage |= wgpu.BufferUsageVertex
	}
	if t.Has(rhi.ResourceTypeIndexBuffer) {
		usage |= wgpu.BufferUsageIndex
	}
	if t.Has(rhi.ResourceTypeUniformBuffer) {
		usage |= wgpu.BufferUsageUniform
	}
	if t.Has(rhi.ResourceTypeRwBuffer) || t.Has(rhi.ResourceTypeRwTexelBuffer) {
		usage |= wgpu.BufferUsageStorage
	}
	if t.Has(rhi.ResourceTypeIndirectBuffer) {
		usage |= wgpu.BufferUsageIndirect
	}
	return usage
}

func textureDimension(e rhi.Extent3D) wgpu.TextureDimension {
	if e.Depth > 1 {
		return wgpu.TextureDimension3D
	}
	return wgpu.TextureDimension2D
}

func textureViewDimension(v rhi.TextureViewType) wgpu.TextureViewDimension {
	switch v {
	case rhi.TextureViewType2DArray:
		return wgpu.TextureViewDimension2DArray
	case rhi.TextureViewTypeCube:
		return wgpu.TextureViewDimensionCube
	case rhi.TextureViewTypeCubeArray:
		return wgpu.TextureViewDimensionCubeArray
	case rhi.TextureViewType3D:
		return wgpu.TextureViewDimension3D
	default:
		return wgpu.TextureViewDimension2D
	}
}

func loadOp(op rhi.AttachmentLoadOp) wgpu.LoadOp {
	if op == rhi.LoadOpLoad {
		return wgpu.LoadOpLoad
	}
	return wgpu.LoadOpClear
}

func storeOp(op rhi.AttachmentStoreOp) wgpu.StoreOp {
	if op == rhi.StoreOpDontCare {
		return wgpu.StoreOpDiscard
	}
	return wgpu.StoreOpStore
}

func indexFormat(w rhi.IndexWidth) wgpu.IndexFormat {
	if w == rhi.IndexWidth16 {
		return wgpu.IndexFormatUint16
	}
	return wgpu.IndexFormatUint32
}

func addressMode(m rhi.AddressMode) wgpu.AddressMode {
	switch m {
	case rhi.AddressModeMirroredRepeat:
		return wgpu.AddressModeMirrorRepeat
	case rhi.AddressModeClampToEdge, rhi.AddressModeClampToBorder:
		return wgpu.AddressModeClampToEdge
	default:
		return wgpu.AddressModeRepeat
	}
}

func filterMode(f rhi.FilterType) wgpu.FilterMode {
	if f == rhi.FilterNearest {
		return wgpu.FilterModeNearest
	}
	return wgpu.FilterModeLinear
}

func mipmapFilterMode(m rhi.MipMapMode) wgpu.MipmapFilterMode {
	if m == rhi.MipMapModeNearest {
		return wgpu.MipmapFilterModeNearest
	}
	return wgpu.MipmapFilterModeLinear
}

func primitiveTopology(p rhi.PrimitiveType) wgpu.PrimitiveTopology {
	switch p {
	case rhi.PrimitiveTriangleStrip:
		return wgpu.PrimitiveTopologyTriangleStrip
	case rhi.PrimitiveLineList:
		return wgpu.PrimitiveTopologyLineList
	case rhi.PrimitiveLineStrip:
		return wgpu.PrimitiveTopologyLineStrip
	case rhi.PrimitivePointList:
		return wgpu.PrimitiveTopologyPointList
	default:
		return wgpu.PrimitiveTopologyTriangleList
	}
}

func cullMode(c rhi.CullMode) wgpu.CullMode {
	switch c {
	case rhi.CullModeFront:
		return wgpu.CullModeFront
	case rhi.CullModeBack:
		return wgpu.CullModeBack
	default:
		return wgpu.CullModeNone
	}
}

func blendFactor(f rhi.BlendFactor) wgpu.BlendFactor {
	switch f {
	case rhi.BlendFactorOne:
		return wgpu.BlendFactorOne
	case rhi.BlendFactorSrcAlpha:
		return wgpu.BlendFactorSrcAlpha
	case rhi.BlendFactorOneMinusSrcAlpha:
		return wgpu.BlendFactorOneMinusSrcAlpha
	case rhi.BlendFactorDstAlpha:
		return wgpu.BlendFactorDstAlpha
	case rhi.BlendFactorOneMinusDstAlpha:
		return wgpu.BlendFactorOneMinusDstAlpha
	case rhi.BlendFactorSrcColor:
		return wgpu.BlendFactorSrc
	case rhi.BlendFactorOneMinusSrcColor:
		return wgpu.BlendFactorOneMinusSrc
	case rhi.BlendFactorDstColor:
		return wgpu.BlendFactorDst
	case rhi.BlendFactorOneMinusDstColor:
		return wgpu.BlendFactorOneMinusDst
	default:
		return wgpu.BlendFactorZero
	}
}

func blendOp(o rhi.BlendOp) wgpu.BlendOperation {
	switch o {
	case rhi.BlendOpSubtract:
		return wgpu.BlendOperationSubtract
	case rhi.BlendOpReverseSubtract:
		return wgpu.BlendOperationReverseSubtract
	case rhi.BlendOpMin:
		return wgpu.BlendOperationMin
	case rhi.BlendOpMax:
		return wgpu.BlendOperationMax
	default:
		return wgpu.BlendOperationAdd
	}
}

func compareFunction(c rhi.CompareFunction) wgpu.CompareFunction {
	switch c {
	case rhi.CompareLess:
		return wgpu.CompareFunctionLess
	case rhi.CompareEqual:
		return wgpu.CompareFunctionEqual
	case rhi.CompareLessEqual:
		return wgpu.CompareFunctionLessEqual
	case rhi.CompareGreater:
		return wgpu.CompareFunctionGreater
	case rhi.CompareNotEqual:
		return wgpu.CompareFunctionNotEqual
	case rhi.CompareGreaterEqual:
		return wgpu.CompareFunctionGreaterEqual
	case rhi.CompareAlways:
		return wgpu.CompareFunctionAlways
	default:
		return wgpu.CompareFunctionNever
	}
}

func presentMode(p rhi.PresentMode) wgpu.PresentMode {
	switch p {
	case rhi.PresentModeImmediate:
		return wgpu.PresentModeImmediate
	case rhi.PresentModeTripleBuffered:
		return wgpu.PresentModeMailbox
	default:
		return wgpu.PresentModeFifo
	}
}
