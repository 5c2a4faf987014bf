package asset

import "testing"

func TestGenerateNormalsProducesUpFacingNormalForXZTriangle(t *testing.T) {
	vertices := []Vertex{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{0, 0, 1}},
		{Position: [3]float32{1, 0, 0}},
	}
	indices := []uint32{0, 1, 2}

	generateNormals(vertices, indices)

	for i, v := range vertices {
		if v.Normal[1] < 0.99 {
			t.Fatalf("vertex %d: Normal = %v, want ~(0,1,0)", i, v.Normal)
		}
	}
}

func TestGenerateNormalsHandlesDegenerateTriangle(t *testing.T) {
	vertices := []Vertex{
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{0, 0, 0}},
		{Position: [3]float32{0, 0, 0}},
	}
	indices := []uint32{0, 1, 2}

	generateNormals(vertices, indices)

	if vertices[0].Normal != [3]float32{0, 1, 0} {
		t.Fatalf("degenerate triangle: Normal = %v, want default up vector", vertices[0].Normal)
	}
}

func TestGenerateTangentsOrthogonalToNormal(t *testing.T) {
	vertices := []Vertex{
		{Position: [3]float32{0, 0, 0}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{0, 0}},
		{Position: [3]float32{1, 0, 0}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{1, 0}},
		{Position: [3]float32{0, 0, 1}, Normal: [3]float32{0, 1, 0}, TexCoord: [2]float32{0, 1}},
	}
	indices := []uint32{0, 1, 2}

	generateTangents(vertices, indices)

	for i, v := range vertices {
		dot := v.Tangent[0]*v.Normal[0] + v.Tangent[1]*v.Normal[1] + v.Tangent[2]*v.Normal[2]
		if dot > 1e-4 || dot < -1e-4 {
			t.Fatalf("vertex %d: tangent not orthogonal to normal, dot = %v", i, dot)
		}
		if v.Tangent[3] != 1 && v.Tangent[3] != -1 {
			t.Fatalf("vertex %d: tangent handedness = %v, want +-1", i, v.Tangent[3])
		}
	}
}

func TestCalculateBoundingBox(t *testing.T) {
	positions := [][3]float32{
		{-1, 0, 2},
		{3, -4, 0},
		{0, 5, -2},
	}

	bmin, bmax := calculateBoundingBox(positions)

	wantMin := [3]float32{-1, -4, -2}
	wantMax := [3]float32{3, 5, 2}
	if bmin != wantMin {
		t.Fatalf("calculateBoundingBox: min = %v, want %v", bmin, wantMin)
	}
	if bmax != wantMax {
		t.Fatalf("calculateBoundingBox: max = %v, want %v", bmax, wantMax)
	}
}

func TestCalculateBoundingBoxEmpty(t *testing.T) {
	bmin, bmax := calculateBoundingBox(nil)
	if bmin != ([3]float32{}) || bmax != ([3]float32{}) {
		t.Fatalf("calculateBoundingBox(nil) = (%v, %v), want zero values", bmin, bmax)
	}
}

func TestExtractPrimitiveGeneratesSequentialIndicesWithoutAccessor(t *testing.T) {
	doc := &gltfDocument{
		Asset: gltfAsset{Version: "2.0"},
		Meshes: []gltfMesh{{
			Name: "triangle",
			Primitives: []gltfPrimitive{{
				Attributes: map[string]int{"POSITION": 0},
			}},
		}},
		Accessors: []gltfAccessor{
			{BufferView: ptr(0), ComponentType: gltfComponentTypeFloat, Count: 3, Type: gltfAccessorTypeVec3},
		},
		BufferViews: []gltfBufferView{{Buffer: 0, ByteLength: 36}},
		Buffers: []gltfBuffer{{
			ByteLength: 36,
			Data:       vec3Bytes([3][3]float32{{0, 0, 0}, {0, 0, 1}, {1, 0, 0}}),
		}},
	}

	extractor := newMeshExtractor(&gltfParser{document: doc})
	meshes, err := extractor.ExtractMesh(0)
	if err != nil {
		t.Fatalf("ExtractMesh: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("ExtractMesh: got %d meshes, want 1", len(meshes))
	}

	mesh := meshes[0]
	if len(mesh.Vertices) != 3 {
		t.Fatalf("Vertices: got %d, want 3", len(mesh.Vertices))
	}
	wantIndices := []uint32{0, 1, 2}
	for i, idx := range mesh.Indices {
		if idx != wantIndices[i] {
			t.Fatalf("Indices[%d] = %d, want %d", i, idx, wantIndices[i])
		}
	}
	if mesh.Vertices[0].Normal[1] < 0.99 {
		t.Fatalf("generated Normal = %v, want ~(0,1,0) for an XZ-plane triangle", mesh.Vertices[0].Normal)
	}
}

func ptr(i int) *int { return &i }

func vec3Bytes(vs [3][3]float32) []byte {
	out := make([]byte, 0, 36)
	for _, v := range vs {
		for _, f := range v {
			out = append(out, f32bytes(f)...)
		}
	}
	return out
}

func f32bytes(f float32) []byte {
	b := make([]byte, 4)
	putFloat32(b, f)
	return b
}
