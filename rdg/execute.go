package rdg

import (
	"log"

	"github.com/kestrel3d/rdgo/internal/dag"
	"github.com/kestrel3d/rdgo/rhi"
)

// descriptorBindableRoles selects the edge roles that reserve a descriptor
// set slot during step 1 of pass execution (§4.4), as opposed to
// render-target attachments (AsColor/AsDepthStencil), copy/present
// endpoints, and indirect-draw argument buffers, all of which bind
// directly rather than through a descriptor set.
const descriptorBindableRoles = AsShaderRead | AsShaderReadWrite | AsOutputRead | AsOutputReadWrite

// Execute runs every declared, non-culled pass in declaration order (§4.4,
// §2 "Control flow per frame"), then releases every pass's descriptor sets
// back to the per-frame pool and replaces the graph and blackboard with
// fresh empty ones so the Builder is reusable for the next frame.
func (b *Builder) Execute() {
	for _, id := range b.passes {
		n := b.passNodeByID(id)
		if n == nil || n.culled {
			continue
		}
		b.executePass(n)
	}
	for _, id := range b.passes {
		n := b.passNodeByID(id)
		if n == nil {
			continue
		}
		for _, ps := range n.pooledSets {
			b.pools.DescriptorSets.Release(ps.set, b.frameIndex)
		}
	}
	b.passes = nil
	b.graph = dag.New()
	b.blackboard = newBlackboard()
}

func (b *Builder) executePass(n *passNode) {
	switch n.kind {
	case PassKindPresent:
		b.executePresentPass(n)
	case PassKindCopy:
		b.executeCopyPass(n)
	default:
		b.executeGenericPass(n)
	}
}

// executeGenericPass runs the ten-step sequence of §4.4 shared by render,
// compute, and ray-tracing passes; only render passes open/close an actual
// render pass around the executor callback.
func (b *Builder) executeGenericPass(n *passNode) {
	b.prepareDescriptors(n)

	isRender := n.kind == PassKindRender
	var rpInfo rhi.RenderPassBeginInfo
	if isRender {
		rpInfo = b.prepareRenderTargets(n)
	}

	b.cmd.PushDebugEvent(n.name, passKindColor(n.kind))
	b.emitInputBarriers(n)

	if isRender {
		b.cmd.BeginRenderPass(rpInfo)
	}
	if n.executeFn != nil {
		n.executeFn(&PassContext{
			Command:     b.cmd,
			Builder:     b,
			Descriptors: n.descriptorSets,
			PassIndex:   n.passIndex,
		})
	}
	if isRender {
		b.cmd.EndRenderPass()
	}

	b.emitOutputBarriers(n)
	b.releaseLastUseAndViews(n)
	b.cmd.PopDebugEvent()
}

// executeCopyPass implements the copy-pass specialization of §4.4: the
// single AsTransferSrc/AsTransferDst edge pair goes through the ordinary
// barrier machinery, generate_mips additionally sandwiches the destination
// texture's mip generation between a TransferDst->TransferSrc->TransferDst
// round trip.
func (b *Builder) executeCopyPass(n *passNode) {
	b.cmd.PushDebugEvent(n.name, passKindColor(n.kind))
	b.emitInputBarriers(n)
	b.emitOutputBarriers(n)

	if n.copyFrom != nil && n.copyTo != nil {
		srcNode, _ := b.graph.GetNode(n.copyFrom.texture).(*textureNode)
		dstNode, _ := b.graph.GetNode(n.copyTo.texture).(*textureNode)
		if srcNode != nil && dstNode != nil {
			extent := mipExtent(srcNode.info.Extent, n.copyFrom.layers.MipLevel)
			b.cmd.CopyTextureToTexture(srcNode.handle, n.copyFrom.layers, dstNode.handle, n.copyTo.layers, extent)
			if n.generateMipsOnCopy {
				b.cmd.TextureBarrier(rhi.TextureBarrier{Texture: dstNode.handle, Src: rhi.ResourceStateTransferDst, Dst: rhi.ResourceStateTransferSrc})
				b.cmd.GenerateMips(dstNode.handle)
				b.cmd.TextureBarrier(rhi.TextureBarrier{Texture: dstNode.handle, Src: rhi.ResourceStateTransferSrc, Dst: rhi.ResourceStateTransferDst})
				dstNode.currentState = rhi.ResourceStateTransferDst
			}
		}
	}

	b.releaseLastUseAndViews(n)
	b.cmd.PopDebugEvent()
}

// executePresentPass implements the present-pass specialization of §4.4:
// the source texture's barrier is ordinary (AsTransferSrc, input
// direction); the backbuffer takes an explicit two-step transition around
// the blit since its "true" target state (Present) cannot be the direct
// destination of a copy.
func (b *Builder) executePresentPass(n *passNode) {
	b.cmd.PushDebugEvent(n.name, passKindColor(n.kind))
	b.emitInputBarriers(n)

	if n.presentSrc != nil && n.presentDst != nil {
		srcNode, _ := b.graph.GetNode(n.presentSrc.texture).(*textureNode)
		dstNode := b.resolveTexture(n.presentDst.texture)
		if srcNode != nil && dstNode != nil {
			prev := dstNode.initialState
			if dstEdge := findTextureEdge(b.graph, n.id, n.presentDst.texture); dstEdge != nil {
				if p, ok := previousTextureState(b.graph, dstEdge, n.id, true); ok {
					prev = p
				}
			}
			b.cmd.TextureBarrier(rhi.TextureBarrier{Texture: dstNode.handle, Src: prev, Dst: rhi.ResourceStateTransferDst})
			extent := mipExtent(srcNode.info.Extent, n.presentSrc.layers.MipLevel)
			b.cmd.CopyTextureToTexture(srcNode.handle, n.presentSrc.layers, dstNode.handle, rhi.TextureSubresourceLayers{}, extent)
			b.cmd.TextureBarrier(rhi.TextureBarrier{Texture: dstNode.handle, Src: rhi.ResourceStateTransferDst, Dst: rhi.ResourceStatePresent})
			dstNode.currentState = rhi.ResourceStatePresent
		}
	}

	b.releaseLastUseAndViews(n)
	b.cmd.PopDebugEvent()
}

// resolveTexture realizes id's texture node from the pool on first use,
// seeding initial_state from the pool's last-known state at resolve time
// (§3.4 TextureNode lifecycle, §4.3).
func (b *Builder) resolveTexture(id dag.NodeID) *textureNode {
	n, _ := b.graph.GetNode(id).(*textureNode)
	if n == nil || n.resolved {
		return n
	}
	tex, state := b.pools.Textures.Acquire(n.info)
	n.handle = tex
	n.initialState = state
	n.currentState = state
	n.resolved = true
	return n
}

// resolveBuffer is the buffer analogue of resolveTexture.
func (b *Builder) resolveBuffer(id dag.NodeID) *bufferNode {
	n, _ := b.graph.GetNode(id).(*bufferNode)
	if n == nil || n.resolved {
		return n
	}
	buf, state := b.pools.Buffers.Acquire(n.info)
	n.handle = buf
	n.initialState = state
	n.currentState = state
	n.resolved = true
	return n
}

// prepareDescriptors is step 1 of §4.4: every edge touching the pass whose
// role reserves a descriptor-set slot gets its resource resolved, a pooled
// view checked out (textures only), and its descriptor written.
func (b *Builder) prepareDescriptors(n *passNode) {
	for _, e := range b.graph.AllEdgesOn(n.id) {
		switch edge := e.(type) {
		case *TextureEdge:
			if edge.passID != n.id || edge.role&descriptorBindableRoles == 0 {
				continue
			}
			b.bindTextureDescriptor(n, edge)
		case *BufferEdge:
			if edge.passID != n.id || edge.role&descriptorBindableRoles == 0 {
				continue
			}
			b.bindBufferDescriptor(n, edge)
		}
	}
}

func (b *Builder) bindTextureDescriptor(n *passNode, e *TextureEdge) {
	tn := b.resolveTexture(e.resourceID)
	if tn == nil {
		return
	}
	view := b.pools.TextureViews.Acquire(rhi.TextureViewInfo{
		Texture: tn.handle, ViewType: e.viewType, Subresource: e.subresource,
	})
	n.pooledViews = append(n.pooledViews, pooledView{view: view})
	set := b.ensureDescriptorSet(n, e.set)
	if set == nil {
		return
	}
	set.BindTexture(e.binding, view)
}

func (b *Builder) bindBufferDescriptor(n *passNode, e *BufferEdge) {
	bn := b.resolveBuffer(e.resourceID)
	if bn == nil {
		return
	}
	set := b.ensureDescriptorSet(n, e.set)
	if set == nil {
		return
	}
	set.BindBuffer(e.binding, bn.handle, e.offset, e.size)
}

// ensureDescriptorSet returns the descriptor set bound at setIndex for n,
// allocating it from the pool (and realizing n's root signature) on first
// request. Returns nil, with a logged warning, if n has no root signature
// or setIndex is out of range — the builder's one soft-failure path
// extended to this binding step (§4.1, §7).
func (b *Builder) ensureDescriptorSet(n *passNode, setIndex uint32) rhi.DescriptorSet {
	if !n.hasRootSig {
		log.Printf("rdg: warn: pass %q: descriptor bound with no root signature, binding dropped", n.name)
		return nil
	}
	if setIndex >= rhi.MaxDescriptorSets {
		log.Printf("rdg: warn: pass %q: set index %d exceeds MaxDescriptorSets, binding dropped", n.name, setIndex)
		return nil
	}
	if n.descriptorSets[setIndex] != nil {
		return n.descriptorSets[setIndex]
	}
	if n.rootSigHandle == nil {
		n.rootSigHandle = b.backend.CreateRootSignature(n.rootSignature)
	}
	set := b.pools.DescriptorSets.Acquire(n.rootSigHandle, setIndex, b.frameIndex)
	n.descriptorSets[setIndex] = set
	n.pooledSets = append(n.pooledSets, pooledDescriptorSet{slot: setIndex, layout: n.rootSigHandle, set: set})
	return set
}

// prepareRenderTargets is step 2 of §4.4: every AsColor edge fills a
// color-attachment slot keyed by binding, the single AsDepthStencil edge
// fills the depth/stencil slot, and the pass extent/layer count are
// inferred from the attached textures.
func (b *Builder) prepareRenderTargets(n *passNode) rhi.RenderPassBeginInfo {
	info := rhi.RenderPassBeginInfo{Label: n.name, Layers: 1}
	for _, c := range n.colors {
		tn := b.resolveTexture(c.texture)
		if tn == nil {
			continue
		}
		view := b.pools.TextureViews.Acquire(rhi.TextureViewInfo{Texture: tn.handle, ViewType: rhi.TextureViewType2D, Subresource: c.subresource})
		n.pooledViews = append(n.pooledViews, pooledView{view: view})
		info.Colors = append(info.Colors, rhi.ColorAttachment{View: view, LoadOp: c.loadOp, StoreOp: c.storeOp, ClearColor: c.clearColor})
		if info.Extent == (rhi.Extent2D{}) {
			info.Extent = rhi.Extent2D{Width: tn.info.Extent.Width, Height: tn.info.Extent.Height}
		}
		if c.subresource.LayerCount > 1 {
			info.Layers = c.subresource.LayerCount
		}
	}
	if n.depth != nil {
		if tn := b.resolveTexture(n.depth.texture); tn != nil {
			view := b.pools.TextureViews.Acquire(rhi.TextureViewInfo{Texture: tn.handle, ViewType: rhi.TextureViewType2D, Subresource: n.depth.subresource})
			n.pooledViews = append(n.pooledViews, pooledView{view: view})
			info.DepthStencil = &rhi.DepthStencilAttachment{
				View: view, DepthLoadOp: n.depth.depthLoadOp, DepthStoreOp: n.depth.depthStoreOp, DepthClearValue: n.depth.depthClearValue,
				StencilLoadOp: n.depth.stencilLoadOp, StencilStoreOp: n.depth.stencilStoreOp, StencilClearValue: n.depth.stencilClearValue,
				ReadOnlyDepth: n.depth.readOnly,
			}
			if info.Extent == (rhi.Extent2D{}) {
				info.Extent = rhi.Extent2D{Width: tn.info.Extent.Width, Height: tn.info.Extent.Height}
			}
			if n.depth.subresource.LayerCount > 1 {
				info.Layers = n.depth.subresource.LayerCount
			}
		}
	}
	return info
}

// emitInputBarriers handles step 4 of §4.4: every edge whose direction is
// resource->pass (InEdges, by construction of newTextureEdge/newBufferEdge)
// gets a transition to its required state. Render-target attachment edges
// (AsColor, AsDepthStencil) are output-direction but must transition before
// the render pass opens, so they ride along here rather than in
// emitOutputBarriers (isRenderTargetRole).
func (b *Builder) emitInputBarriers(n *passNode) {
	for _, e := range b.graph.InEdges(n.id) {
		switch edge := e.(type) {
		case *TextureEdge:
			b.emitTextureBarrier(edge, n.id, false)
		case *BufferEdge:
			b.emitBufferBarrier(edge, n.id, false)
		}
	}
	if n.kind != PassKindRender {
		return
	}
	for _, e := range b.graph.OutEdges(n.id) {
		te, ok := e.(*TextureEdge)
		if !ok || !isRenderTargetRole(te.role) {
			continue
		}
		b.emitTextureBarrier(te, n.id, true)
	}
}

// emitOutputBarriers handles step 8 of §4.4: every pass->resource edge gets
// a transition from the computed previous state to its required state,
// except render-target attachments already handled pre-pass by
// emitInputBarriers.
func (b *Builder) emitOutputBarriers(n *passNode) {
	for _, e := range b.graph.OutEdges(n.id) {
		switch edge := e.(type) {
		case *TextureEdge:
			if n.kind == PassKindRender && isRenderTargetRole(edge.role) {
				continue
			}
			b.emitTextureBarrier(edge, n.id, true)
		case *BufferEdge:
			b.emitBufferBarrier(edge, n.id, true)
		}
	}
}

func (b *Builder) emitTextureBarrier(e *TextureEdge, passID dag.NodeID, forOutput bool) {
	tn := b.resolveTexture(e.resourceID)
	if tn == nil {
		return
	}
	prev, ok := previousTextureState(b.graph, e, passID, forOutput)
	if !ok {
		prev = tn.initialState
	}
	dst := e.state()
	b.cmd.TextureBarrier(rhi.TextureBarrier{Texture: tn.handle, Src: prev, Dst: dst, Subresource: e.subresource})
	tn.currentState = dst
}

func (b *Builder) emitBufferBarrier(e *BufferEdge, passID dag.NodeID, forOutput bool) {
	bn := b.resolveBuffer(e.resourceID)
	if bn == nil {
		return
	}
	prev, ok := previousBufferState(b.graph, e, passID, forOutput)
	if !ok {
		prev = bn.initialState
	}
	dst := e.state()
	b.cmd.BufferBarrier(rhi.BufferBarrier{Buffer: bn.handle, Src: prev, Dst: dst, Range: rhi.BufferRange{Offset: e.offset, Size: e.size}})
	bn.currentState = dst
}

// releaseLastUseAndViews is step 9 of §4.4: every edge on this pass whose
// resource has no later reference returns that resource to its pool with
// the state it was left in; every pooled view this pass checked out is
// released unconditionally.
func (b *Builder) releaseLastUseAndViews(n *passNode) {
	for _, e := range b.graph.InEdges(n.id) {
		b.releaseIfLastUse(e, n.id, true)
	}
	for _, e := range b.graph.OutEdges(n.id) {
		b.releaseIfLastUse(e, n.id, false)
	}
	for _, pv := range n.pooledViews {
		b.pools.TextureViews.Release(pv.view)
	}
	n.pooledViews = nil
}

func (b *Builder) releaseIfLastUse(e dag.Edge, passID dag.NodeID, forInput bool) {
	switch edge := e.(type) {
	case *TextureEdge:
		if !isTextureLastUse(b.graph, edge.resourceID, passID, forInput) {
			return
		}
		tn, _ := b.graph.GetNode(edge.resourceID).(*textureNode)
		if tn == nil || tn.imported || !tn.resolved {
			return
		}
		b.pools.Textures.Release(tn.handle, tn.currentState)
		tn.resolved = false
		tn.handle = nil
	case *BufferEdge:
		if !isBufferLastUse(b.graph, edge.resourceID, passID, forInput) {
			return
		}
		bn, _ := b.graph.GetNode(edge.resourceID).(*bufferNode)
		if bn == nil || bn.imported || !bn.resolved {
			return
		}
		b.pools.Buffers.Release(bn.handle, bn.currentState)
		bn.resolved = false
		bn.handle = nil
	}
}

// findTextureEdge returns the texture edge linking passID to resourceID, or
// nil if none exists.
func findTextureEdge(g *dag.Graph, passID, resourceID dag.NodeID) *TextureEdge {
	for _, e := range g.AllEdgesOn(passID) {
		if te, ok := e.(*TextureEdge); ok && te.passID == passID && te.resourceID == resourceID {
			return te
		}
	}
	return nil
}

// mipExtent returns e shrunk by mip mip levels, halving each dimension down
// to a floor of 1, matching standard GPU mip-chain dimensioning.
func mipExtent(e rhi.Extent3D, mip uint32) rhi.Extent3D {
	w, h, d := e.Width, e.Height, e.Depth
	for i := uint32(0); i < mip; i++ {
		if w > 1 {
			w /= 2
		}
		if h > 1 {
			h /= 2
		}
		if d > 1 {
			d /= 2
		}
	}
	return rhi.Extent3D{Width: w, Height: h, Depth: d}
}
