package rdg

import (
	"github.com/kestrel3d/rdgo/internal/dag"
	"github.com/kestrel3d/rdgo/rhi"
)

// previousTextureState implements §4.4.1 for texture edge e, issued by pass
// passID. forOutput selects whether the result feeds an output barrier
// (candidates additionally include passID's own input edges on the same
// resource) or an input barrier (candidates are strictly-prior passes only).
// The second return value is false when no candidate qualifies, in which
// case the caller falls back to the resource node's initial_state.
func previousTextureState(g *dag.Graph, e *TextureEdge, passID dag.NodeID, forOutput bool) (rhi.ResourceState, bool) {
	var best *TextureEdge
	for _, cand := range g.AllEdgesOn(e.resourceID) {
		c, ok := cand.(*TextureEdge)
		if !ok || c.resourceID != e.resourceID {
			continue
		}
		if !textureCandidateEligible(c, passID, forOutput) {
			continue
		}
		if !c.subresource.Covers(e.subresource) {
			continue
		}
		if best == nil || textureCandidateWins(c, best, forOutput) {
			best = c
		}
	}
	if best == nil {
		return 0, false
	}
	return best.state(), true
}

func textureCandidateEligible(c *TextureEdge, passID dag.NodeID, forOutput bool) bool {
	if c.passID < passID {
		return true
	}
	return forOutput && c.passID == passID && !c.isOutput()
}

// textureCandidateWins reports whether candidate c supersedes the current
// best: a strictly larger pass id always wins; on a tie, an input edge wins
// when computing an output barrier and vice versa (§4.4.1 tie-break rule).
func textureCandidateWins(c, best *TextureEdge, forOutput bool) bool {
	if c.passID != best.passID {
		return c.passID > best.passID
	}
	if forOutput {
		return !c.isOutput() && best.isOutput()
	}
	return c.isOutput() && !best.isOutput()
}

// isTextureLastUse implements §4.4.2 for a texture referenced by pass
// passID: true iff no edge on the resource references a pass with a larger
// id. For an input-direction query, passID is additionally disqualified
// when it also holds an output edge on the same resource.
func isTextureLastUse(g *dag.Graph, resourceID, passID dag.NodeID, forInput bool) bool {
	if forInput {
		for _, cand := range g.AllEdgesOn(passID) {
			c, ok := cand.(*TextureEdge)
			if ok && c.resourceID == resourceID && c.passID == passID && c.isOutput() {
				return false
			}
		}
	}
	for _, cand := range g.AllEdgesOn(resourceID) {
		c, ok := cand.(*TextureEdge)
		if ok && c.resourceID == resourceID && c.passID > passID {
			return false
		}
	}
	return true
}

// previousBufferState mirrors previousTextureState for buffer edges, using
// (offset, size) as the coverage gate with (0,0) as the wildcard (§4.4.1
// "Buffer variant").
func previousBufferState(g *dag.Graph, e *BufferEdge, passID dag.NodeID, forOutput bool) (rhi.ResourceState, bool) {
	var best *BufferEdge
	eRange := rhi.BufferRange{Offset: e.offset, Size: e.size}
	for _, cand := range g.AllEdgesOn(e.resourceID) {
		c, ok := cand.(*BufferEdge)
		if !ok || c.resourceID != e.resourceID {
			continue
		}
		if !bufferCandidateEligible(c, passID, forOutput) {
			continue
		}
		cRange := rhi.BufferRange{Offset: c.offset, Size: c.size}
		if !cRange.Covers(eRange) {
			continue
		}
		if best == nil || bufferCandidateWins(c, best, forOutput) {
			best = c
		}
	}
	if best == nil {
		return 0, false
	}
	return best.state(), true
}

func bufferCandidateEligible(c *BufferEdge, passID dag.NodeID, forOutput bool) bool {
	if c.passID < passID {
		return true
	}
	return forOutput && c.passID == passID && !c.isOutput()
}

func bufferCandidateWins(c, best *BufferEdge, forOutput bool) bool {
	if c.passID != best.passID {
		return c.passID > best.passID
	}
	if forOutput {
		return !c.isOutput() && best.isOutput()
	}
	return c.isOutput() && !best.isOutput()
}

// isBufferLastUse mirrors isTextureLastUse for buffer edges.
func isBufferLastUse(g *dag.Graph, resourceID, passID dag.NodeID, forInput bool) bool {
	if forInput {
		for _, cand := range g.AllEdgesOn(passID) {
			c, ok := cand.(*BufferEdge)
			if ok && c.resourceID == resourceID && c.passID == passID && c.isOutput() {
				return false
			}
		}
	}
	for _, cand := range g.AllEdgesOn(resourceID) {
		c, ok := cand.(*BufferEdge)
		if ok && c.resourceID == resourceID && c.passID > passID {
			return false
		}
	}
	return true
}
