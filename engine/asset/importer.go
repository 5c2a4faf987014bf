package asset

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Scene is the flattened result of importing one glTF/GLB document: every
// mesh primitive, material and texture it declares, ready to stage into
// rdg resources.
type Scene struct {
	Meshes    []Mesh
	Materials []Material
	Textures  []Texture
}

// Importer parses glTF/GLB documents and extracts their meshes, materials
// and textures. Mesh extraction and texture resolution both fan out across
// a worker pool (NewDynamicWorkerPool plus a WaitGroup barrier) — workers
// are reused across Load calls rather than spawned per-call.
type Importer struct {
	pool worker.DynamicWorkerPool
}

// NewImporter creates an Importer with one worker per CPU minus one (at
// least one worker).
func NewImporter() *Importer {
	workers := runtime.NumCPU() - 1
	if workers < 1 {
		workers = 1
	}
	return &Importer{pool: worker.NewDynamicWorkerPool(workers, 256, time.Second)}
}

// Load parses the glTF/GLB file at path and extracts its full Scene.
func (im *Importer) Load(path string) (*Scene, error) {
	parser := newGLTFParser()
	if err := parser.Parse(path); err != nil {
		return nil, fmt.Errorf("asset: parse %s: %w", path, err)
	}
	return im.extract(parser)
}

func (im *Importer) extract(parser *gltfParser) (*Scene, error) {
	doc := parser.Document()
	if doc == nil {
		return nil, fmt.Errorf("asset: no document loaded")
	}

	meshes, err := im.extractMeshes(parser, doc)
	if err != nil {
		return nil, err
	}

	textures, err := im.extractTextures(doc, parser.BaseDir())
	if err != nil {
		return nil, err
	}

	return &Scene{Meshes: meshes, Materials: extractMaterials(doc), Textures: textures}, nil
}

// extractMeshes runs one task per glTF mesh index — each mesh's primitives
// are independent once accessors are resolved, so this bounds concurrency
// by worker count rather than primitive count.
func (im *Importer) extractMeshes(parser *gltfParser, doc *gltfDocument) ([]Mesh, error) {
	extractor := newMeshExtractor(parser)

	results := make([][]Mesh, len(doc.Meshes))
	errs := make([]error, len(doc.Meshes))

	var wg sync.WaitGroup
	for i := range doc.Meshes {
		wg.Add(1)
		idx := i
		im.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				meshes, err := extractor.ExtractMesh(idx)
				results[idx] = meshes
				errs[idx] = err
				return nil, nil
			},
		})
	}
	wg.Wait()

	var meshes []Mesh
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("asset: mesh %d: %w", i, err)
		}
		meshes = append(meshes, results[i]...)
	}
	return meshes, nil
}

func extractMaterials(doc *gltfDocument) []Material {
	materials := make([]Material, len(doc.Materials))
	for i := range doc.Materials {
		m := &doc.Materials[i]
		out := Material{
			Name:             m.Name,
			BaseColor:        [4]float32{1, 1, 1, 1},
			Metallic:         1,
			Roughness:        1,
			BaseColorTexture: -1,
			NormalTexture:    -1,
		}
		if pbr := m.PbrMetallicRoughness; pbr != nil {
			if pbr.BaseColorFactor != nil {
				out.BaseColor = *pbr.BaseColorFactor
			}
			if pbr.MetallicFactor != nil {
				out.Metallic = *pbr.MetallicFactor
			}
			if pbr.RoughnessFactor != nil {
				out.Roughness = *pbr.RoughnessFactor
			}
			if pbr.BaseColorTexture != nil {
				out.BaseColorTexture = pbr.BaseColorTexture.Index
			}
		}
		if m.NormalTexture != nil {
			out.NormalTexture = m.NormalTexture.Index
		}
		materials[i] = out
	}
	return materials
}

// extractTextures resolves every gltfTexture to its source image in
// parallel: embedded bufferView/data-URI images are read into Data,
// external URIs are resolved to an on-disk Path. Decoding to RGBA8 pixels
// is left to Texture.Decode, called during GPU staging.
func (im *Importer) extractTextures(doc *gltfDocument, baseDir string) ([]Texture, error) {
	textures := make([]Texture, len(doc.Textures))
	errs := make([]error, len(doc.Textures))

	var wg sync.WaitGroup
	for i := range doc.Textures {
		tex := &doc.Textures[i]
		if tex.Source == nil {
			continue
		}
		idx, srcIdx := i, *tex.Source
		if srcIdx < 0 || srcIdx >= len(doc.Images) {
			return nil, fmt.Errorf("asset: texture %d references out-of-range image %d", idx, srcIdx)
		}

		wg.Add(1)
		im.pool.SubmitTask(worker.Task{
			ID: idx,
			Do: func() (any, error) {
				defer wg.Done()
				t, err := resolveImage(doc, srcIdx, baseDir)
				if err != nil {
					errs[idx] = err
					return nil, nil
				}
				textures[idx] = *t
				return nil, nil
			},
		})
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("asset: texture %d: %w", i, err)
		}
	}
	return textures, nil
}

// resolveImage locates an image's bytes: embedded in a bufferView (GLB),
// a base64 data URI, or an external file referenced by URI.
func resolveImage(doc *gltfDocument, imageIndex int, baseDir string) (*Texture, error) {
	img := &doc.Images[imageIndex]
	out := &Texture{Name: img.Name, MimeType: img.MimeType}

	switch {
	case img.BufferView != nil:
		bv := &doc.BufferViews[*img.BufferView]
		buf := &doc.Buffers[bv.Buffer]
		data := make([]byte, bv.ByteLength)
		copy(data, buf.Data[bv.ByteOffset:bv.ByteOffset+bv.ByteLength])
		out.Data = data

	case strings.HasPrefix(img.URI, "data:"):
		commaIdx := strings.Index(img.URI, ",")
		if commaIdx < 0 {
			return nil, fmt.Errorf("invalid image data URI")
		}
		data, err := base64.StdEncoding.DecodeString(img.URI[commaIdx+1:])
		if err != nil {
			return nil, fmt.Errorf("failed to decode image data URI: %w", err)
		}
		out.Data = data

	case img.URI != "":
		out.Path = filepath.Join(baseDir, img.URI)

	default:
		return nil, fmt.Errorf("image has neither bufferView nor URI")
	}

	return out, nil
}
