package shadercompiler

import (
	"strings"

	"github.com/kestrel3d/rdgo/rhi"
)

// classifyResource maps a parsed WGSL resource declaration (address space +
// type name) to an rhi.ResourceTypeFlags value, the backend-agnostic
// equivalent of the teacher's classifyResource
// (engine/renderer/shader/wgsl_parser_backend.go), which instead populated a
// wgpu.BindGroupLayoutEntry's Buffer/Texture/Sampler/StorageTexture
// sub-structs directly. rhi's RootSignatureBinding only needs the resource
// *kind*; the concrete view dimension, sample type, and texel format are
// resolved again from the bound rhi.TextureInfo/BufferInfo when a backend
// realizes the binding (see rhi/wgpubackend's bindGroupLayoutEntry), so this
// function does not need to reproduce that detail.
func classifyResource(addressSpace, typeName string) rhi.ResourceTypeFlags {
	if addressSpace != "" {
		switch {
		case addressSpace == "uniform":
			return rhi.ResourceTypeUniformBuffer
		case strings.HasPrefix(addressSpace, "storage"):
			if strings.Contains(addressSpace, "read_write") {
				return rhi.ResourceTypeRwBuffer
			}
			return rhi.ResourceTypeBuffer
		}
		return rhi.ResourceTypeBuffer
	}

	switch {
	case typeName == "sampler" || typeName == "sampler_comparison":
		return rhi.ResourceTypeSampler
	case strings.HasPrefix(typeName, "texture_storage_"):
		return rhi.ResourceTypeRwTexture
	case strings.HasPrefix(typeName, "texture_cube"):
		return rhi.ResourceTypeTextureCube
	case strings.HasPrefix(typeName, "texture_"):
		return rhi.ResourceTypeTexture
	default:
		return rhi.ResourceTypeBuffer
	}
}
