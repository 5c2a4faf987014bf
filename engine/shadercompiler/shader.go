package shadercompiler

import (
	"fmt"
	"os"

	"github.com/kestrel3d/rdgo/rhi"
)

// shader is the implementation of the Shader interface. It holds the
// parsed WGSL metadata needed for rdg pipeline builders and respool's
// descriptor-set pooling, grounded on the teacher's shader struct
// (engine/renderer/shader/shader.go) with every wgpu-typed field replaced by
// its rhi equivalent.
type shader struct {
	key           string
	source        string
	frequency     rhi.ShaderFrequency
	rootSignature rhi.RootSignatureInfo
	varNames      map[int]map[int]string
	vertexLayouts map[int][]rhi.VertexBufferLayout
	workGroupSize [3]uint32
	entryPoint    string
}

// Shader is a loaded and parsed WGSL shader: its source, entry point,
// inferred root-signature bindings, vertex buffer layouts, and (for compute
// shaders) workgroup size — everything rdg's graphics/compute pipeline
// builders and respool's pooling keys need, with no backend-specific type
// anywhere in the contract.
type Shader interface {
	// Key is the unique identifier used for caching and lookups.
	Key() string

	// Source is the final WGSL source text (after any pre-processing).
	Source() string

	// Info returns the rhi.ShaderInfo ready to hand to
	// rhi.Backend.CreateShaderModule or embed in a pipeline info struct.
	Info() rhi.ShaderInfo

	// RootSignature returns the inferred root-signature bindings declared
	// by this shader's @group/@binding resource declarations.
	RootSignature() rhi.RootSignatureInfo

	// BindGroupVarName returns the variable name declared at the given
	// group and binding index, or "" if none was declared there.
	BindGroupVarName(group, binding int) string

	// VertexLayouts returns the vertex buffer layouts inferred from this
	// shader's vertex-input structs, keyed by sequential buffer index.
	// Empty for non-vertex shaders.
	VertexLayouts() map[int][]rhi.VertexBufferLayout

	// WorkgroupSize returns the compute shader's @workgroup_size dimensions,
	// defaulting to [1, 1, 1] per the WGSL specification when unannotated.
	// Returns [0, 0, 0] for non-compute shaders.
	WorkgroupSize() [3]uint32

	// Frequency returns which pipeline stage this shader targets.
	Frequency() rhi.ShaderFrequency
}

var _ Shader = (*shader)(nil)

// Load reads WGSL source from sourcePath and parses it into a Shader. The
// frequency selects which entry-point/layout extraction rules apply:
// rhi.ShaderFrequencyVertex parses vertex-input layouts,
// rhi.ShaderFrequencyCompute parses the workgroup size, and both (plus
// ShaderFrequencyFragment) get root-signature bindings parsed. Panics if the
// source cannot be read, matching the teacher's NewShader fail-fast
// behavior for a missing/invalid asset path.
func Load(key string, frequency rhi.ShaderFrequency, sourcePath string) Shader {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		panic(fmt.Sprintf("shadercompiler: failed to read source file %q: %v", sourcePath, err))
	}
	return Parse(key, frequency, string(data))
}

// Parse builds a Shader directly from in-memory WGSL source, used by tests
// and by generated/embedded shader sources that have no backing file.
func Parse(key string, frequency rhi.ShaderFrequency, source string) Shader {
	s := &shader{
		key:           key,
		source:        source,
		frequency:     frequency,
		vertexLayouts: make(map[int][]rhi.VertexBufferLayout),
		workGroupSize: [3]uint32{0, 0, 0},
	}
	s.entryPoint = parseEntryPoint(source, frequency)
	if frequency == rhi.ShaderFrequencyVertex {
		s.vertexLayouts = parseVertexLayouts(source)
	}
	if frequency == rhi.ShaderFrequencyCompute {
		s.workGroupSize = parseWorkgroupSize(source)
	}
	s.rootSignature, s.varNames = parseRootSignature(source, frequency)
	return s
}

func (s *shader) Key() string    { return s.key }
func (s *shader) Source() string { return s.source }
func (s *shader) Frequency() rhi.ShaderFrequency { return s.frequency }

func (s *shader) Info() rhi.ShaderInfo {
	return rhi.ShaderInfo{
		Key:        s.key,
		Source:     s.source,
		EntryPoint: s.entryPoint,
		Frequency:  s.frequency,
	}
}

func (s *shader) RootSignature() rhi.RootSignatureInfo {
	return s.rootSignature
}

func (s *shader) BindGroupVarName(group, binding int) string {
	if s.varNames[group] == nil {
		return ""
	}
	return s.varNames[group][binding]
}

func (s *shader) VertexLayouts() map[int][]rhi.VertexBufferLayout {
	return s.vertexLayouts
}

func (s *shader) WorkgroupSize() [3]uint32 {
	return s.workGroupSize
}
