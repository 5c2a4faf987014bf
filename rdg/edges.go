package rdg

import (
	"github.com/kestrel3d/rdgo/internal/dag"
	"github.com/kestrel3d/rdgo/rhi"
)

// EdgeRole is the bitset of usage roles an RDG edge may carry (§3.4). Every
// role maps to exactly one rhi.ResourceState via requiredState, and to a
// direction (pass->resource for writes/outputs, resource->pass for reads)
// via isOutputRole.
type EdgeRole uint32

const (
	AsColor EdgeRole = 1 << iota
	AsDepthStencil
	AsShaderRead
	AsShaderReadWrite
	AsOutputRead
	AsOutputReadWrite
	AsPresent
	AsTransferSrc
	AsTransferDst
	AsOutputIndirectDraw
	ReadOnlyDepth
)

// Has reports whether all bits in mask are set in r.
func (r EdgeRole) Has(mask EdgeRole) bool { return r&mask == mask }

// isOutputRole reports whether role r gives the edge pass->resource
// direction. AsDepthStencil only counts as an output when it is not also
// ReadOnlyDepth: a read-only depth attachment is bound for testing, not
// writing, so the resource is consumed rather than produced (§3.5 "edges
// with role AsOutput* have direction pass->resource" generalizes to every
// write-shaped role here, not only the two literally named AsOutput*).
func isOutputRole(r EdgeRole) bool {
	switch {
	case r.Has(AsDepthStencil):
		return !r.Has(ReadOnlyDepth)
	case r.Has(AsColor), r.Has(AsShaderReadWrite), r.Has(AsOutputRead), r.Has(AsOutputReadWrite),
		r.Has(AsPresent), r.Has(AsTransferDst), r.Has(AsOutputIndirectDraw):
		return true
	default:
		return false
	}
}

// isRenderTargetRole reports whether r binds a render-pass attachment slot.
// Despite being output-direction edges (isOutputRole), these must transition
// before BeginRenderPass, not after EndRenderPass like other outputs (§4.4
// steps 2-5 run render-target preparation and its barrier ahead of the pass
// body; S1's trace confirms the Present->ColorAttachment barrier precedes
// begin-render-pass even though the edge is the one drawn red in §6.2).
func isRenderTargetRole(r EdgeRole) bool {
	return r.Has(AsColor) || r.Has(AsDepthStencil)
}

// requiredState maps an edge's role to the GPU state its resource must be
// in for the edge's pass to use it.
func requiredState(r EdgeRole) rhi.ResourceState {
	switch {
	case r.Has(AsColor):
		return rhi.ResourceStateColorAttachment
	case r.Has(AsDepthStencil):
		return rhi.ResourceStateDepthStencilAttachment
	case r.Has(AsShaderRead):
		return rhi.ResourceStateShaderResource
	case r.Has(AsShaderReadWrite), r.Has(AsOutputRead), r.Has(AsOutputReadWrite):
		return rhi.ResourceStateUnorderedAccess
	case r.Has(AsPresent):
		return rhi.ResourceStatePresent
	case r.Has(AsTransferSrc):
		return rhi.ResourceStateTransferSrc
	case r.Has(AsTransferDst):
		return rhi.ResourceStateTransferDst
	case r.Has(AsOutputIndirectDraw):
		return rhi.ResourceStateIndirectArgument
	default:
		return rhi.ResourceStateCommon
	}
}

// TextureEdge is the RDG specialization of a dag.Edge between a pass node
// and a texture resource node (§3.4).
type TextureEdge struct {
	from, to   dag.NodeID
	passID     dag.NodeID
	resourceID dag.NodeID

	role        EdgeRole
	viewType    rhi.TextureViewType
	subresource rhi.TextureSubresourceRange
	set         uint32
	binding     uint32
	index       uint32
}

func (e *TextureEdge) From() dag.NodeID { return e.from }
func (e *TextureEdge) To() dag.NodeID   { return e.to }

func (e *TextureEdge) SetEndpoints(from, to dag.NodeID) {
	e.from, e.to = from, to
}

func (e *TextureEdge) isOutput() bool           { return isOutputRole(e.role) }
func (e *TextureEdge) state() rhi.ResourceState { return requiredState(e.role) }

// BufferEdge is the RDG specialization of a dag.Edge between a pass node
// and a buffer resource node (§3.4).
type BufferEdge struct {
	from, to   dag.NodeID
	passID     dag.NodeID
	resourceID dag.NodeID

	role    EdgeRole
	offset  uint64
	size    uint64
	set     uint32
	binding uint32
	index   uint32
}

func (e *BufferEdge) From() dag.NodeID { return e.from }
func (e *BufferEdge) To() dag.NodeID   { return e.to }

func (e *BufferEdge) SetEndpoints(from, to dag.NodeID) {
	e.from, e.to = from, to
}

func (e *BufferEdge) isOutput() bool           { return isOutputRole(e.role) }
func (e *BufferEdge) state() rhi.ResourceState { return requiredState(e.role) }

// newTextureEdge links pass and resource according to role's direction and
// returns the edge for further field population by the caller.
func newTextureEdge(passID, resourceID dag.NodeID, role EdgeRole) *TextureEdge {
	e := &TextureEdge{passID: passID, resourceID: resourceID, role: role}
	if isOutputRole(role) {
		e.from, e.to = passID, resourceID
	} else {
		e.from, e.to = resourceID, passID
	}
	return e
}

func newBufferEdge(passID, resourceID dag.NodeID, role EdgeRole) *BufferEdge {
	e := &BufferEdge{passID: passID, resourceID: resourceID, role: role}
	if isOutputRole(role) {
		e.from, e.to = passID, resourceID
	} else {
		e.from, e.to = resourceID, passID
	}
	return e
}
