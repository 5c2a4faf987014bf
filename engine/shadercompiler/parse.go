package shadercompiler

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/kestrel3d/rdgo/rhi"
)

var (
	structBlockRegex   = regexp.MustCompile(`struct\s+(\w+)\s*\{([^}]*)\}`)
	locationRegex      = regexp.MustCompile(`@location\((\d+)\)`)
	builtinRegex       = regexp.MustCompile(`@builtin\(\w+\)`)
	fieldRegex         = regexp.MustCompile(`(?:(?:@\w+\([^)]*\)\s*)*)*\s*(\w+)\s*:\s*(.+)`)
	vertexEntryRegex   = regexp.MustCompile(`(?s)@vertex\b.*?\bfn\s+(\w+)`)
	fragmentEntryRegex = regexp.MustCompile(`(?s)@fragment\b.*?\bfn\s+(\w+)`)
	computeEntryRegex  = regexp.MustCompile(`(?s)@compute\b.*?\bfn\s+(\w+)`)
	workgroupSizeRegex = regexp.MustCompile(`@workgroup_size\(\s*(\d+)\s*(?:,\s*(\d+)\s*(?:,\s*(\d+)\s*)?)?\)`)

	// bindGroupDeclRegex captures group, binding, optional address space,
	// variable name, and type from declarations like:
	// @group(0) @binding(0) var<uniform> camera: CameraUniform;
	bindGroupDeclRegex = regexp.MustCompile(`@group\((\d+)\)\s*@binding\((\d+)\)\s*var(?:<([^>]*)>)?\s+(\w+)\s*:\s*([^;]+?)\s*;`)
)

// parseVertexLayouts extracts vertex buffer layouts from WGSL source. Structs
// that are pure vertex inputs (@location fields, no @builtin) become one
// rhi.VertexBufferLayout each, keyed by sequential index. Grounded verbatim
// (algorithm only) on the teacher's parseVertexLayouts
// (engine/renderer/shader/wgsl_parser.go).
func parseVertexLayouts(source string) map[int][]rhi.VertexBufferLayout {
	result := make(map[int][]rhi.VertexBufferLayout)
	cleaned := stripLineComments(source)
	structs := parseStructBlocks(cleaned)

	layoutIndex := 0
	for _, ps := range structs {
		if !isVertexInputStruct(ps) {
			continue
		}
		layout, ok := buildVertexBufferLayout(ps)
		if !ok {
			continue
		}
		result[layoutIndex] = []rhi.VertexBufferLayout{layout}
		layoutIndex++
	}

	return result
}

// parseRootSignature extracts all @group(N) @binding(M) resource
// declarations from WGSL source into a single rhi.RootSignatureInfo (rdg's
// root signature is a flat binding list carrying its own Set index per
// entry, unlike the teacher's per-group wgpu.BindGroupLayoutDescriptor map —
// see rhi.RootSignatureBinding.Set). Also returns the declared variable name
// for each (group, binding) pair for Shader.BindGroupVarName lookups.
func parseRootSignature(source string, frequency rhi.ShaderFrequency) (rhi.RootSignatureInfo, map[int]map[int]string) {
	varNames := make(map[int]map[int]string)
	cleaned := stripComments(source)

	var bindings []rhi.RootSignatureBinding
	matches := bindGroupDeclRegex.FindAllStringSubmatch(cleaned, -1)
	for _, match := range matches {
		group, _ := strconv.Atoi(match[1])
		binding, _ := strconv.Atoi(match[2])
		addressSpace := strings.TrimSpace(match[3])
		varName := strings.TrimSpace(match[4])
		typeName := strings.TrimSpace(match[5])

		resType := classifyResource(addressSpace, typeName)

		bindings = append(bindings, rhi.RootSignatureBinding{
			Set:       uint32(group),
			Binding:   uint32(binding),
			Type:      resType,
			Frequency: frequency,
			Count:     1,
		})

		if varNames[group] == nil {
			varNames[group] = make(map[int]string)
		}
		varNames[group][binding] = varName
	}

	sort.Slice(bindings, func(i, j int) bool {
		if bindings[i].Set != bindings[j].Set {
			return bindings[i].Set < bindings[j].Set
		}
		return bindings[i].Binding < bindings[j].Binding
	})

	return rhi.RootSignatureInfo{Bindings: bindings}, varNames
}

// parseWorkgroupSize extracts the @workgroup_size(x, y, z) dimensions from
// WGSL source. Omitted dimensions default to 1 per the WGSL specification;
// absence of the annotation entirely also yields [1, 1, 1].
func parseWorkgroupSize(source string) [3]uint32 {
	cleaned := stripComments(source)
	result := [3]uint32{1, 1, 1}

	match := workgroupSizeRegex.FindStringSubmatch(cleaned)
	if match == nil {
		return result
	}
	if match[1] != "" {
		if v, err := strconv.ParseUint(match[1], 10, 32); err == nil {
			result[0] = uint32(v)
		}
	}
	if match[2] != "" {
		if v, err := strconv.ParseUint(match[2], 10, 32); err == nil {
			result[1] = uint32(v)
		}
	}
	if match[3] != "" {
		if v, err := strconv.ParseUint(match[3], 10, 32); err == nil {
			result[2] = uint32(v)
		}
	}
	return result
}

// parseEntryPoint extracts the entry point function name for the given
// shader type from WGSL source, or "" if no matching annotation is found.
func parseEntryPoint(source string, shaderType rhi.ShaderFrequency) string {
	cleaned := stripComments(source)

	var re *regexp.Regexp
	switch shaderType {
	case rhi.ShaderFrequencyVertex:
		re = vertexEntryRegex
	case rhi.ShaderFrequencyFragment:
		re = fragmentEntryRegex
	case rhi.ShaderFrequencyCompute:
		re = computeEntryRegex
	default:
		return ""
	}

	if match := re.FindStringSubmatch(cleaned); match != nil {
		return match[1]
	}
	return ""
}

func parseStructBlocks(source string) []parsedStruct {
	matches := structBlockRegex.FindAllStringSubmatch(source, -1)
	structs := make([]parsedStruct, 0, len(matches))

	for _, match := range matches {
		structs = append(structs, parsedStruct{
			name:   match[1],
			fields: parseStructFields(match[2]),
		})
	}
	return structs
}

func parseStructFields(body string) []parsedField {
	lines := splitAtTopLevelCommas(body)
	fields := make([]parsedField, 0, len(lines))

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var field parsedField
		if builtinRegex.MatchString(line) {
			field.isBuiltin = true
		}

		if locMatch := locationRegex.FindStringSubmatch(line); locMatch != nil {
			if loc, err := strconv.Atoi(locMatch[1]); err == nil {
				field.location = loc
			}
		} else {
			field.location = -1
		}

		fm := fieldRegex.FindStringSubmatch(line)
		if fm == nil {
			continue
		}
		field.name = fm[1]
		field.typeName = strings.TrimSpace(fm[2])

		fields = append(fields, field)
	}
	return fields
}

// isVertexInputStruct returns true if ps has at least one @location field
// and zero @builtin fields, distinguishing vertex inputs from vertex outputs
// (which mix @location with @builtin(position)).
func isVertexInputStruct(ps parsedStruct) bool {
	hasLocation := false
	for _, f := range ps.fields {
		if f.isBuiltin {
			return false
		}
		if f.location >= 0 {
			hasLocation = true
		}
	}
	return hasLocation
}

// buildVertexBufferLayout converts a parsed vertex input struct into an
// rhi.VertexBufferLayout, assigning sequential byte offsets. Returns false
// if a field's WGSL type has no rhi.Format mapping.
func buildVertexBufferLayout(ps parsedStruct) (rhi.VertexBufferLayout, bool) {
	attrs := make([]rhi.VertexAttribute, 0, len(ps.fields))
	var offset uint64

	for _, f := range ps.fields {
		info, ok := wgslVertexFormatMap[f.typeName]
		if !ok {
			return rhi.VertexBufferLayout{}, false
		}
		attrs = append(attrs, rhi.VertexAttribute{
			Format:         info.format,
			Offset:         offset,
			ShaderLocation: uint32(f.location),
		})
		offset += info.size
	}

	return rhi.VertexBufferLayout{Stride: offset, Attributes: attrs}, true
}

// splitAtTopLevelCommas splits a string at commas not nested inside angle
// brackets, so WGSL types like array<FrustumPlane, 6> are not split mid-type.
func splitAtTopLevelCommas(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// stripComments removes both single-line (//) and block (/* */) comments.
func stripComments(source string) string {
	return stripLineComments(stripBlockComments(source))
}

func stripLineComments(source string) string {
	var sb strings.Builder
	for _, line := range strings.Split(source, "\n") {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func stripBlockComments(source string) string {
	var sb strings.Builder
	sb.Grow(len(source))
	depth := 0
	i := 0
	for i < len(source) {
		if i+1 < len(source) {
			if source[i] == '/' && source[i+1] == '*' {
				depth++
				i += 2
				continue
			}
			if source[i] == '*' && source[i+1] == '/' {
				if depth > 0 {
					depth--
				}
				i += 2
				continue
			}
		}
		if depth == 0 {
			sb.WriteByte(source[i])
		}
		i++
	}
	return sb.String()
}
