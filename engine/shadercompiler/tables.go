package shadercompiler

import "github.com/kestrel3d/rdgo/rhi"

// wgslVertexFormatMap maps WGSL type names to their corresponding rhi vertex
// format and byte size, grounded on the teacher's wgslVertexFormatMap
// (engine/renderer/shader/wgsl_parser.go) with wgpu.VertexFormat swapped for
// rhi.Format — rdg's vertex attributes use the same backend-agnostic Format
// enum as textures (§3.3).
var wgslVertexFormatMap = map[string]vertexFormatInfo{
	"f32":       {rhi.FormatR32Sfloat, 4},
	"vec2f":     {rhi.FormatRG32Sfloat, 8},
	"vec2<f32>": {rhi.FormatRG32Sfloat, 8},
	"vec3f":     {rhi.FormatRGB32Sfloat, 12},
	"vec3<f32>": {rhi.FormatRGB32Sfloat, 12},
	"vec4f":     {rhi.FormatRGBA32Sfloat, 16},
	"vec4<f32>": {rhi.FormatRGBA32Sfloat, 16},
	"u32":       {rhi.FormatR32Uint, 4},
	"vec2u":     {rhi.FormatRG32Uint, 8},
	"vec2<u32>": {rhi.FormatRG32Uint, 8},
	"vec4u":     {rhi.FormatRGBA32Uint, 16},
	"vec4<u32>": {rhi.FormatRGBA32Uint, 16},
}

// wgslTexelFormatMap maps WGSL texel format strings (valid for storage
// textures per the WGSL specification) to rhi.Format. bgra8unorm has no
// distinct rhi.Format counterpart (the swapchain-presentation format is
// negotiated at CreateSwapchain time, not declared in shader source), so it
// maps to the channel-equivalent rgba8unorm.
var wgslTexelFormatMap = map[string]rhi.Format{
	"rgba8unorm":  rhi.FormatRGBA8Unorm,
	"rgba8snorm":  rhi.FormatRGBA8Snorm,
	"rgba8uint":   rhi.FormatRGBA8Uint,
	"rgba8sint":   rhi.FormatRGBA8Sint,
	"rgba16uint":  rhi.FormatRGBA16Uint,
	"rgba16sint":  rhi.FormatRGBA16Sint,
	"rgba16float": rhi.FormatRGBA16Sfloat,
	"r32uint":     rhi.FormatR32Uint,
	"r32sint":     rhi.FormatR32Sint,
	"r32float":    rhi.FormatR32Sfloat,
	"rg32uint":    rhi.FormatRG32Uint,
	"rg32sint":    rhi.FormatRG32Sint,
	"rg32float":   rhi.FormatRG32Sfloat,
	"rgba32uint":  rhi.FormatRGBA32Uint,
	"rgba32sint":  rhi.FormatRGBA32Sint,
	"rgba32float": rhi.FormatRGBA32Sfloat,
	"bgra8unorm":  rhi.FormatRGBA8Unorm,
}

// wgslPrimitiveLayoutMap maps WGSL primitive, vector, matrix, and atomic type
// names to their byte size and alignment per the WGSL specification. Pure
// arithmetic, kept verbatim from the teacher's table
// (engine/renderer/shader/wgsl_parser_backend.go) since it encodes the WGSL
// spec itself rather than any backend API.
//
// Reference: https://www.w3.org/TR/WGSL/#alignment-and-size
var wgslPrimitiveLayoutMap = map[string]wgslTypeLayout{
	"f32":  {4, 4},
	"i32":  {4, 4},
	"u32":  {4, 4},
	"f16":  {2, 2},
	"bool": {4, 4},

	"vec2<f32>": {8, 8},
	"vec2f":     {8, 8},
	"vec3<f32>": {12, 16},
	"vec3f":     {12, 16},
	"vec4<f32>": {16, 16},
	"vec4f":     {16, 16},

	"vec2<i32>": {8, 8},
	"vec2i":     {8, 8},
	"vec3<i32>": {12, 16},
	"vec3i":     {12, 16},
	"vec4<i32>": {16, 16},
	"vec4i":     {16, 16},

	"vec2<u32>": {8, 8},
	"vec2u":     {8, 8},
	"vec3<u32>": {12, 16},
	"vec3u":     {12, 16},
	"vec4<u32>": {16, 16},
	"vec4u":     {16, 16},

	"vec2<f16>": {4, 4},
	"vec2h":     {4, 4},
	"vec4<f16>": {8, 8},
	"vec4h":     {8, 8},

	"mat2x2<f32>": {16, 8},
	"mat2x3<f32>": {32, 16},
	"mat2x4<f32>": {32, 16},
	"mat3x2<f32>": {24, 8},
	"mat3x3<f32>": {48, 16},
	"mat3x4<f32>": {48, 16},
	"mat4x2<f32>": {32, 8},
	"mat4x3<f32>": {64, 16},
	"mat4x4<f32>": {64, 16},

	"atomic<u32>": {4, 4},
	"atomic<i32>": {4, 4},
}
