package rdg

import (
	"github.com/kestrel3d/rdgo/internal/dag"
	"github.com/kestrel3d/rdgo/rhi"
)

// createPassNode allocates a pass node of the given kind and registers it
// in the builder's global declaration-order list, used by Execute to
// iterate every pass kind in the single order §2 describes.
func (b *Builder) createPassNode(name string, kind PassKind) *passNode {
	n := &passNode{name: name, kind: kind}
	id := b.graph.CreateNode(n)
	b.passes = append(b.passes, id)
	return n
}

// textureBinding bundles the parameters a pass builder's various
// texture-usage methods (Color, DepthStencil, Read, ReadWrite) all reduce
// to: a role, a view shape, and a binding coordinate.
type textureBinding struct {
	viewType    rhi.TextureViewType
	subresource rhi.TextureSubresourceRange
	set, binding, index uint32
}

// addTextureEdge links passID to tex's node with role, logging and
// no-oping if tex is the NoHandle sentinel (§4.1, §7).
func (b *Builder) addTextureEdge(passID dag.NodeID, op string, tex TextureHandle, role EdgeRole, tb textureBinding) {
	if !tex.Valid() {
		warnMissingBinding(op, "")
		return
	}
	e := newTextureEdge(passID, tex.id, role)
	e.viewType = tb.viewType
	e.subresource = tb.subresource
	e.set, e.binding, e.index = tb.set, tb.binding, tb.index
	b.graph.Link(e.from, e.to, e)
}

type bufferBinding struct {
	offset, size        uint64
	set, binding, index uint32
}

// addBufferEdge links passID to buf's node with role, logging and no-oping
// if buf is the NoHandle sentinel.
func (b *Builder) addBufferEdge(passID dag.NodeID, op string, buf BufferHandle, role EdgeRole, bb bufferBinding) {
	if !buf.Valid() {
		warnMissingBinding(op, "")
		return
	}
	e := newBufferEdge(passID, buf.id, role)
	e.offset, e.size = bb.offset, bb.size
	e.set, e.binding, e.index = bb.set, bb.binding, bb.index
	b.graph.Link(e.from, e.to, e)
}
