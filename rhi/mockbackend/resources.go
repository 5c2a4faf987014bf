package mockbackend

import "github.com/kestrel3d/rdgo/rhi"

// resourceBase implements rhi.Resource by delegating refcounting to the
// backend's live-resource tracker (§5). Every concrete handle type below
// embeds one.
type resourceBase struct {
	label   string
	backend *Backend
	live    *liveResource
}

func (r *resourceBase) Label() string { return r.label }

func (r *resourceBase) AddRef() {
	r.backend.mu.Lock()
	defer r.backend.mu.Unlock()
	r.live.refs++
}

func (r *resourceBase) Release() {
	r.backend.mu.Lock()
	defer r.backend.mu.Unlock()
	if r.live.refs > 0 {
		r.live.refs--
	}
}

type buffer struct {
	resourceBase
	info rhi.BufferInfo
}

func (b *buffer) Info() rhi.BufferInfo { return b.info }

func (b *Backend) CreateBuffer(info rhi.BufferInfo) rhi.Buffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	buf := &buffer{resourceBase: resourceBase{label: "buffer", backend: b}, info: info}
	buf.live = b.track(buf.label, func() {})
	return buf
}

type texture struct {
	resourceBase
	info rhi.TextureInfo
}

func (t *texture) Info() rhi.TextureInfo { return t.info }

func (b *Backend) CreateTexture(info rhi.TextureInfo) rhi.Texture {
	b.mu.Lock()
	defer b.mu.Unlock()
	tex := &texture{resourceBase: resourceBase{label: "texture", backend: b}, info: info.Normalized()}
	tex.live = b.track(tex.label, func() {})
	return tex
}

type textureView struct {
	resourceBase
	info rhi.TextureViewInfo
}

func (v *textureView) Info() rhi.TextureViewInfo { return v.info }

func (b *Backend) CreateTextureView(info rhi.TextureViewInfo) rhi.TextureView {
	b.mu.Lock()
	defer b.mu.Unlock()
	v := &textureView{resourceBase: resourceBase{label: "textureView", backend: b}, info: info}
	v.live = b.track(v.label, func() {})
	return v
}

type sampler struct {
	resourceBase
	info rhi.SamplerInfo
}

func (s *sampler) Info() rhi.SamplerInfo { return s.info }

func (b *Backend) CreateSampler(info rhi.SamplerInfo) rhi.Sampler {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := &sampler{resourceBase: resourceBase{label: "sampler", backend: b}, info: info}
	s.live = b.track(s.label, func() {})
	return s
}

type shaderModule struct {
	resourceBase
	info rhi.ShaderInfo
}

func (s *shaderModule) Info() rhi.ShaderInfo { return s.info }

func (b *Backend) CreateShaderModule(info rhi.ShaderInfo) rhi.ShaderModule {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := &shaderModule{resourceBase: resourceBase{label: info.Key, backend: b}, info: info}
	s.live = b.track(s.label, func() {})
	return s
}

type rootSignature struct {
	resourceBase
	info rhi.RootSignatureInfo
}

func (r *rootSignature) Info() rhi.RootSignatureInfo { return r.info }

func (b *Backend) CreateRootSignature(info rhi.RootSignatureInfo) rhi.RootSignature {
	b.mu.Lock()
	defer b.mu.Unlock()
	r := &rootSignature{resourceBase: resourceBase{label: info.Label, backend: b}, info: info}
	r.live = b.track(r.label, func() {})
	return r
}

type graphicsPipeline struct {
	resourceBase
	info rhi.GraphicsPipelineInfo
}

func (p *graphicsPipeline) Info() rhi.GraphicsPipelineInfo { return p.info }

func (b *Backend) CreateGraphicsPipeline(info rhi.GraphicsPipelineInfo) rhi.GraphicsPipeline {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := &graphicsPipeline{resourceBase: resourceBase{label: info.Label, backend: b}, info: info}
	p.live = b.track(p.label, func() {})
	return p
}

type computePipeline struct {
	resourceBase
	info rhi.ComputePipelineInfo
}

func (p *computePipeline) Info() rhi.ComputePipelineInfo { return p.info }

func (b *Backend) CreateComputePipeline(info rhi.ComputePipelineInfo) rhi.ComputePipeline {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := &computePipeline{resourceBase: resourceBase{label: info.Label, backend: b}, info: info}
	p.live = b.track(p.label, func() {})
	return p
}

type rayTracingPipeline struct {
	resourceBase
	info rhi.RayTracingPipelineInfo
}

func (p *rayTracingPipeline) Info() rhi.RayTracingPipelineInfo { return p.info }

func (b *Backend) CreateRayTracingPipeline(info rhi.RayTracingPipelineInfo) rhi.RayTracingPipeline {
	b.mu.Lock()
	defer b.mu.Unlock()
	p := &rayTracingPipeline{resourceBase: resourceBase{label: info.Label, backend: b}, info: info}
	p.live = b.track(p.label, func() {})
	return p
}

type descriptorSet struct {
	resourceBase
	layout   rhi.RootSignature
	setIndex uint32
	bindings map[uint32]any
}

func (d *descriptorSet) Layout() rhi.RootSignature { return d.layout }
func (d *descriptorSet) SetIndex() uint32          { return d.setIndex }

func (d *descriptorSet) BindBuffer(binding uint32, buf rhi.Buffer, offset, size uint64) {
	d.bindings[binding] = buf
}

func (d *descriptorSet) BindTexture(binding uint32, view rhi.TextureView) {
	d.bindings[binding] = view
}

func (d *descriptorSet) BindSampler(binding uint32, samp rhi.Sampler) {
	d.bindings[binding] = samp
}

func (b *Backend) CreateDescriptorSet(layout rhi.RootSignature, setIndex uint32) rhi.DescriptorSet {
	b.mu.Lock()
	defer b.mu.Unlock()
	d := &descriptorSet{
		resourceBase: resourceBase{label: "descriptorSet", backend: b},
		layout:       layout,
		setIndex:     setIndex,
		bindings:     make(map[uint32]any),
	}
	d.live = b.track(d.label, func() {})
	return d
}

type fence struct {
	resourceBase
	signaled bool
}

func (f *fence) Wait()             { f.signaled = true }
func (f *fence) Signaled() bool    { return f.signaled }

func (b *Backend) CreateFence() rhi.Fence {
	b.mu.Lock()
	defer b.mu.Unlock()
	f := &fence{resourceBase: resourceBase{label: "fence", backend: b}}
	f.live = b.track(f.label, func() {})
	return f
}

type semaphore struct {
	resourceBase
}

func (b *Backend) CreateSemaphore() rhi.Semaphore {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := &semaphore{resourceBase: resourceBase{label: "semaphore", backend: b}}
	s.live = b.track(s.label, func() {})
	return s
}

type commandBuffer struct {
	resourceBase
}

type queue struct {
	resourceBase
	kind rhi.QueueKind
}

func (q *queue) Kind() rhi.QueueKind { return q.kind }

func (q *queue) Submit(cmds rhi.CommandBuffer, fenceOut rhi.Fence, signal rhi.Semaphore) {
	if fenceOut != nil {
		if f, ok := fenceOut.(*fence); ok {
			f.signaled = true
		}
	}
}

type swapchain struct {
	resourceBase
	info      rhi.SwapchainInfo
	images    []rhi.Texture
	frame     int
}

func (s *swapchain) GetNewFrame(fenceOut rhi.Fence, signal rhi.Semaphore) (rhi.Texture, error) {
	s.frame = (s.frame + 1) % len(s.images)
	if fenceOut != nil {
		if f, ok := fenceOut.(*fence); ok {
			f.signaled = true
		}
	}
	return s.images[s.frame], nil
}

func (s *swapchain) Present(wait rhi.Semaphore) error { return nil }
func (s *swapchain) CurrentFrameIndex() int           { return s.frame }
func (s *swapchain) Info() rhi.SwapchainInfo          { return s.info }
