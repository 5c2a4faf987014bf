package rdg

import (
	"log"

	"github.com/kestrel3d/rdgo/cmdlist"
	"github.com/kestrel3d/rdgo/internal/dag"
	"github.com/kestrel3d/rdgo/respool"
	"github.com/kestrel3d/rdgo/rhi"
)

// BuilderOption configures a Builder at construction time, following the
// functional-options shape used throughout this module (SPEC_FULL.md §1).
type BuilderOption func(*Builder)

// WithFrameIndex sets the frame-in-flight counter used to scope descriptor
// set pooling (§3.5, §5). Defaults to 0.
func WithFrameIndex(i uint64) BuilderOption {
	return func(b *Builder) { b.frameIndex = i }
}

// Builder is RdgBuilder (§6.2): the fluent construction API, blackboard,
// and pass-execution engine for one frame's graph. A Builder instance is
// reusable across frames — Execute clears its graph and blackboard and
// replaces them with empty ones once it returns (§4.4).
type Builder struct {
	graph      *dag.Graph
	blackboard *blackboard
	backend    rhi.Backend
	pools      *respool.Manager
	cmd        *cmdlist.List
	frameIndex uint64

	// passes records pass node ids in declaration order across every pass
	// kind; Execute iterates this slice, not per-kind maps, since ordering
	// is global (§2 "Control flow per frame").
	passes []dag.NodeID
}

// New builds an RdgBuilder around a command list, a backend for resolving
// declared resources, and the pool manager transient resources are
// acquired from and released to.
func New(backend rhi.Backend, pools *respool.Manager, cmd *cmdlist.List, opts ...BuilderOption) *Builder {
	b := &Builder{
		graph:      dag.New(),
		blackboard: newBlackboard(),
		backend:    backend,
		pools:      pools,
		cmd:        cmd,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// CreateTexture begins declaring a texture resource node named name.
func (b *Builder) CreateTexture(name string) *TextureBuilder {
	return &TextureBuilder{b: b, name: name}
}

// CreateBuffer begins declaring a buffer resource node named name.
func (b *Builder) CreateBuffer(name string) *BufferBuilder {
	return &BufferBuilder{b: b, name: name}
}

// CreateRenderPass begins declaring a render pass node named name.
func (b *Builder) CreateRenderPass(name string) *RenderPassBuilder {
	return &RenderPassBuilder{b: b, name: name}
}

// CreateComputePass begins declaring a compute pass node named name.
func (b *Builder) CreateComputePass(name string) *ComputePassBuilder {
	return &ComputePassBuilder{b: b, name: name}
}

// CreateRayTracingPass begins declaring a ray-tracing pass node named name.
func (b *Builder) CreateRayTracingPass(name string) *RayTracingPassBuilder {
	return &RayTracingPassBuilder{b: b, name: name}
}

// CreateCopyPass begins declaring a copy pass node named name.
func (b *Builder) CreateCopyPass(name string) *CopyPassBuilder {
	return &CopyPassBuilder{b: b, name: name}
}

// CreatePresentPass begins declaring a present pass node named name.
func (b *Builder) CreatePresentPass(name string) *PresentPassBuilder {
	return &PresentPassBuilder{b: b, name: name}
}

// GetTexture looks up a previously declared texture by name.
func (b *Builder) GetTexture(name string) TextureHandle { return b.blackboard.getTexture(name) }

// GetBuffer looks up a previously declared buffer by name.
func (b *Builder) GetBuffer(name string) BufferHandle { return b.blackboard.getBuffer(name) }

// GetRenderPass looks up a previously declared render pass by name.
func (b *Builder) GetRenderPass(name string) RenderPassHandle {
	return b.blackboard.getRenderPass(name)
}

// GetComputePass looks up a previously declared compute pass by name.
func (b *Builder) GetComputePass(name string) ComputePassHandle {
	return b.blackboard.getComputePass(name)
}

// GetRayTracingPass looks up a previously declared ray-tracing pass by name.
func (b *Builder) GetRayTracingPass(name string) RayTracingPassHandle {
	return b.blackboard.getRayTracingPass(name)
}

// GetCopyPass looks up a previously declared copy pass by name.
func (b *Builder) GetCopyPass(name string) CopyPassHandle { return b.blackboard.getCopyPass(name) }

// GetPresentPass looks up a previously declared present pass by name.
func (b *Builder) GetPresentPass(name string) PresentPassHandle {
	return b.blackboard.getPresentPass(name)
}

func (b *Builder) textureNode(h TextureHandle) *textureNode {
	if !h.Valid() {
		return nil
	}
	n, _ := b.graph.GetNode(h.id).(*textureNode)
	return n
}

func (b *Builder) bufferNode(h BufferHandle) *bufferNode {
	if !h.Valid() {
		return nil
	}
	n, _ := b.graph.GetNode(h.id).(*bufferNode)
	return n
}

func (b *Builder) passNodeByID(id dag.NodeID) *passNode {
	if id == NoHandle {
		return nil
	}
	n, _ := b.graph.GetNode(id).(*passNode)
	return n
}

// warnMissingBinding logs the single soft-failure warning for a builder
// call gated on an invalid handle (§4.1, §7).
func warnMissingBinding(op, name string) {
	log.Printf("rdg: warn: %s: handle is NoHandle, binding dropped (name=%q)", op, name)
}
