// Package shadercompiler parses WGSL shader source into the backend-agnostic
// rhi resource-creation structs (rhi.ShaderInfo, rhi.RootSignatureInfo,
// rhi.VertexBufferLayout) that rdg pass builders and respool need, without
// referring to any concrete GPU backend package.
package shadercompiler

import "github.com/kestrel3d/rdgo/rhi"

// wgslTypeLayout holds the byte size and alignment for a WGSL type per the
// WGSL specification. Used to compute MinBindingSize-equivalent sizing for
// buffer bindings.
type wgslTypeLayout struct {
	size  uint64
	align uint64
}

// parsedField represents a single field extracted from a WGSL struct during parsing.
type parsedField struct {
	name      string
	typeName  string
	location  int
	isBuiltin bool
}

// parsedStruct represents a WGSL struct block extracted during parsing.
type parsedStruct struct {
	name   string
	fields []parsedField
}

// vertexFormatInfo holds the rhi vertex format and its byte size for offset calculation.
type vertexFormatInfo struct {
	format rhi.Format
	size   uint64
}
