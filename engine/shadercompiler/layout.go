package shadercompiler

import (
	"strconv"
	"strings"
)

// StructByteSize returns the WGSL-spec byte size of the named struct as
// declared in source, resolving inter-struct field dependencies, so a
// uniform/storage buffer can be sized from a shader's own declared types.
// No package in this module calls it.
func StructByteSize(source, structName string) (uint64, bool) {
	cleaned := stripComments(source)
	structs := parseStructBlocks(cleaned)
	sizes := computeStructSizes(structs)
	layout, ok := sizes[structName]
	return layout.size, ok
}

// roundUpAlign rounds value up to the next multiple of alignment. Alignment
// must be a power of two. Grounded verbatim on the teacher's
// engine/renderer/shader/wgsl_parser_backend.go — this is the WGSL
// specification's alignment rule, not backend-specific.
func roundUpAlign(alignment, value uint64) uint64 {
	if alignment == 0 {
		return value
	}
	return (value + alignment - 1) &^ (alignment - 1)
}

// resolveTypeLayout resolves a WGSL type name to its size and alignment
// using primitives and previously-computed struct layouts. Handles
// fixed-size arrays (array<T, N>) and returns false for runtime-sized
// arrays or unknown types.
func resolveTypeLayout(typeName string, knownTypes map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	if layout, ok := wgslPrimitiveLayoutMap[typeName]; ok {
		return layout, true
	}
	if layout, ok := knownTypes[typeName]; ok {
		return layout, true
	}

	if strings.HasPrefix(typeName, "array<") && strings.HasSuffix(typeName, ">") {
		inner := typeName[6 : len(typeName)-1]
		parts := strings.SplitN(inner, ",", 2)
		elemType := strings.TrimSpace(parts[0])

		elemLayout, ok := resolveTypeLayout(elemType, knownTypes)
		if !ok {
			return wgslTypeLayout{}, false
		}

		if len(parts) == 2 {
			countStr := strings.TrimSpace(parts[1])
			count, err := strconv.ParseUint(countStr, 10, 64)
			if err != nil {
				return wgslTypeLayout{}, false
			}
			stride := roundUpAlign(elemLayout.align, elemLayout.size)
			return wgslTypeLayout{count * stride, elemLayout.align}, true
		}

		// Runtime-sized array: no fixed size; computeStructLayout handles it
		// as a trailing field.
		return wgslTypeLayout{}, false
	}

	return wgslTypeLayout{}, false
}

// computeStructLayout computes the byte size and alignment of a single WGSL
// struct using WGSL struct layout rules: each field is placed at the next
// aligned offset, and the total size is rounded up to the struct's
// alignment. A runtime-sized array as the last field yields the fixed-size
// prefix offset as the size. Fields with @builtin attributes are skipped.
func computeStructLayout(ps parsedStruct, knownTypes map[string]wgslTypeLayout) (wgslTypeLayout, bool) {
	offset := uint64(0)
	maxAlign := uint64(1)

	for _, field := range ps.fields {
		if field.isBuiltin {
			continue
		}

		fieldLayout, ok := resolveTypeLayout(field.typeName, knownTypes)
		if !ok {
			if strings.HasPrefix(field.typeName, "array<") && !strings.Contains(field.typeName, ",") {
				offset = roundUpAlign(maxAlign, offset)
				if offset == 0 {
					inner := field.typeName[6 : len(field.typeName)-1]
					elemType := strings.TrimSpace(inner)
					if elemLayout, elemOk := resolveTypeLayout(elemType, knownTypes); elemOk {
						return wgslTypeLayout{roundUpAlign(elemLayout.align, elemLayout.size), elemLayout.align}, true
					}
				}
				return wgslTypeLayout{offset, maxAlign}, true
			}
			return wgslTypeLayout{}, false
		}

		offset = roundUpAlign(fieldLayout.align, offset)
		offset += fieldLayout.size

		if fieldLayout.align > maxAlign {
			maxAlign = fieldLayout.align
		}
	}

	size := roundUpAlign(maxAlign, offset)
	return wgslTypeLayout{size, maxAlign}, true
}

// computeStructSizes computes the byte size and alignment of every parsed
// WGSL struct, resolving inter-struct dependencies iteratively (a struct
// field typed as another struct resolves once that struct's own layout has
// been computed).
func computeStructSizes(structs []parsedStruct) map[string]wgslTypeLayout {
	resolved := make(map[string]wgslTypeLayout, len(structs))
	remaining := make([]parsedStruct, len(structs))
	copy(remaining, structs)

	for {
		progress := false
		next := remaining[:0]

		for _, ps := range remaining {
			if layout, ok := computeStructLayout(ps, resolved); ok {
				resolved[ps.name] = layout
				progress = true
			} else {
				next = append(next, ps)
			}
		}

		remaining = next
		if !progress || len(remaining) == 0 {
			break
		}
	}

	return resolved
}
