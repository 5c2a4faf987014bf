package rdg

import (
	"github.com/kestrel3d/rdgo/internal/dag"
	"github.com/kestrel3d/rdgo/rhi"
)

// textureNode is the RDG specialization of a resource node for textures
// (§3.4). It is realized from the pool on first resolve and returned to it
// on its last use, unless imported.
type textureNode struct {
	id           dag.NodeID
	name         string
	info         rhi.TextureInfo
	imported     bool
	initialState rhi.ResourceState
	resolved     bool
	handle       rhi.Texture
	// currentState is the state the scheduler believes the resource is in
	// as of the most recently emitted barrier; seeded from initialState.
	currentState rhi.ResourceState
}

func (n *textureNode) ID() dag.NodeID     { return n.id }
func (n *textureNode) SetID(id dag.NodeID) { n.id = id }

// bufferNode is the buffer-node analogue of textureNode.
type bufferNode struct {
	id           dag.NodeID
	name         string
	info         rhi.BufferInfo
	imported     bool
	initialState rhi.ResourceState
	resolved     bool
	handle       rhi.Buffer
	currentState rhi.ResourceState
}

func (n *bufferNode) ID() dag.NodeID      { return n.id }
func (n *bufferNode) SetID(id dag.NodeID) { n.id = id }

// PassKind discriminates the variant payload a pass node carries, replacing
// the source's RTTI-style downcasts with a tagged union (§9).
type PassKind int

const (
	PassKindRender PassKind = iota
	PassKindCompute
	PassKindRayTracing
	PassKindPresent
	PassKindCopy
)

func (k PassKind) String() string {
	switch k {
	case PassKindRender:
		return "render"
	case PassKindCompute:
		return "compute"
	case PassKindRayTracing:
		return "ray tracing"
	case PassKindPresent:
		return "present"
	case PassKindCopy:
		return "copy"
	default:
		return "unknown"
	}
}

// passKindColor returns the per-kind debug-event/graph color recovered from
// original_source's rdg_node.h (§4 SUPPLEMENTED FEATURES): render=orange,
// compute=yellow, copy=lightgrey, present=lightblue, ray tracing=violet.
func passKindColor(k PassKind) [4]float32 {
	switch k {
	case PassKindRender:
		return [4]float32{1, 0.65, 0, 1}
	case PassKindCompute:
		return [4]float32{1, 1, 0, 1}
	case PassKindCopy:
		return [4]float32{0.83, 0.83, 0.83, 1}
	case PassKindPresent:
		return [4]float32{0.68, 0.85, 0.9, 1}
	case PassKindRayTracing:
		return [4]float32{0.93, 0.51, 0.93, 1}
	default:
		return [4]float32{1, 1, 1, 1}
	}
}

// colorAttachmentSlot binds one render-target slot of a render pass.
type colorAttachmentSlot struct {
	binding     uint32
	texture     dag.NodeID
	subresource rhi.TextureSubresourceRange
	loadOp      rhi.AttachmentLoadOp
	storeOp     rhi.AttachmentStoreOp
	clearColor  [4]float32
}

// depthAttachmentSlot binds the depth/stencil slot of a render pass.
type depthAttachmentSlot struct {
	texture           dag.NodeID
	subresource       rhi.TextureSubresourceRange
	depthLoadOp       rhi.AttachmentLoadOp
	depthStoreOp      rhi.AttachmentStoreOp
	depthClearValue   float32
	stencilLoadOp     rhi.AttachmentLoadOp
	stencilStoreOp    rhi.AttachmentStoreOp
	stencilClearValue uint32
	readOnly          bool
}

// copyEndpoint names one side of a copy or present pass's texture
// reference.
type copyEndpoint struct {
	texture dag.NodeID
	layers  rhi.TextureSubresourceLayers
}

// pooledView is a texture view checked out of the view pool during
// descriptor-set preparation, returned to it at the end of the owning
// pass's execution (§4.4 step 9).
type pooledView struct {
	view rhi.TextureView
}

// pooledDescriptorSet is a descriptor set checked out of the pool during
// descriptor-set preparation, returned to it once the frame finishes.
type pooledDescriptorSet struct {
	slot   uint32
	layout rhi.RootSignature
	set    rhi.DescriptorSet
}

// passNode is the RDG specialization of a unit-of-GPU-work node (§3.4). One
// struct hosts every pass kind's fields; PassKind selects which are
// meaningful, matching the tagged-variant approach of §9.
type passNode struct {
	id            dag.NodeID
	name          string
	kind          PassKind
	rootSignature rhi.RootSignatureInfo
	hasRootSig    bool
	rootSigHandle rhi.RootSignature
	descriptorSets [rhi.MaxDescriptorSets]rhi.DescriptorSet
	culled        bool
	passIndex     [3]uint32
	executeFn     func(*PassContext)

	colors       []colorAttachmentSlot
	depth        *depthAttachmentSlot

	copyFrom, copyTo     *copyEndpoint
	generateMipsOnCopy   bool

	presentSrc, presentDst *copyEndpoint

	pooledViews []pooledView
	pooledSets  []pooledDescriptorSet
}

func (n *passNode) ID() dag.NodeID      { return n.id }
func (n *passNode) SetID(id dag.NodeID) { n.id = id }
