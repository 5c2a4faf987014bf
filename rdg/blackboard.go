package rdg

import "log"

// blackboard is the name->node map scoped to one Builder's graph (§4.4,
// GLOSSARY). Every lookup miss logs exactly one warning and returns a
// handle whose id is NoHandle — the graph's one soft-failure
// path (§4.1, §7).
type blackboard struct {
	textures         map[string]TextureHandle
	buffers          map[string]BufferHandle
	renderPasses     map[string]RenderPassHandle
	computePasses    map[string]ComputePassHandle
	rayTracingPasses map[string]RayTracingPassHandle
	copyPasses       map[string]CopyPassHandle
	presentPasses    map[string]PresentPassHandle
}

func newBlackboard() *blackboard {
	return &blackboard{
		textures:         make(map[string]TextureHandle),
		buffers:          make(map[string]BufferHandle),
		renderPasses:     make(map[string]RenderPassHandle),
		computePasses:    make(map[string]ComputePassHandle),
		rayTracingPasses: make(map[string]RayTracingPassHandle),
		copyPasses:       make(map[string]CopyPassHandle),
		presentPasses:    make(map[string]PresentPassHandle),
	}
}

func (bb *blackboard) getTexture(name string) TextureHandle {
	if h, ok := bb.textures[name]; ok {
		return h
	}
	log.Printf("rdg: warn: get_texture(%q): not found", name)
	return TextureHandle{id: NoHandle}
}

func (bb *blackboard) getBuffer(name string) BufferHandle {
	if h, ok := bb.buffers[name]; ok {
		return h
	}
	log.Printf("rdg: warn: get_buffer(%q): not found", name)
	return BufferHandle{id: NoHandle}
}

func (bb *blackboard) getRenderPass(name string) RenderPassHandle {
	if h, ok := bb.renderPasses[name]; ok {
		return h
	}
	log.Printf("rdg: warn: get_render_pass(%q): not found", name)
	return RenderPassHandle{id: NoHandle}
}

func (bb *blackboard) getComputePass(name string) ComputePassHandle {
	if h, ok := bb.computePasses[name]; ok {
		return h
	}
	log.Printf("rdg: warn: get_compute_pass(%q): not found", name)
	return ComputePassHandle{id: NoHandle}
}

func (bb *blackboard) getRayTracingPass(name string) RayTracingPassHandle {
	if h, ok := bb.rayTracingPasses[name]; ok {
		return h
	}
	log.Printf("rdg: warn: get_ray_tracing_pass(%q): not found", name)
	return RayTracingPassHandle{id: NoHandle}
}

func (bb *blackboard) getCopyPass(name string) CopyPassHandle {
	if h, ok := bb.copyPasses[name]; ok {
		return h
	}
	log.Printf("rdg: warn: get_copy_pass(%q): not found", name)
	return CopyPassHandle{id: NoHandle}
}

func (bb *blackboard) getPresentPass(name string) PresentPassHandle {
	if h, ok := bb.presentPasses[name]; ok {
		return h
	}
	log.Printf("rdg: warn: get_present_pass(%q): not found", name)
	return PresentPassHandle{id: NoHandle}
}
