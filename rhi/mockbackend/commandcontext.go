package mockbackend

import "github.com/kestrel3d/rdgo/rhi"

// recordedCall names one CommandContext method invocation, captured for
// assertions in rdg's pass-execution tests (did the barrier/bind/draw
// sequence come out in the order §4.4 specifies).
type recordedCall struct {
	Name string
	Args []any
}

// commandContext is the mock CommandContext: every call just appends a
// recordedCall to Calls instead of touching a real command buffer, so
// tests can assert on the exact sequence rdg.Builder.Execute produced.
type commandContext struct {
	backend *Backend
	Calls   []recordedCall
	inPass  bool
}

func newCommandContext(b *Backend) *commandContext {
	return &commandContext{backend: b}
}

// CallNames returns the ordered list of method names recorded on ctx, for
// assertions in rdg tests that only need the call sequence and not
// each call's full argument payload. Panics if ctx was not produced by this
// package.
func CallNames(ctx rhi.CommandContext) []string {
	cc := ctx.(*commandContext)
	names := make([]string, len(cc.Calls))
	for i, c := range cc.Calls {
		names[i] = c.Name
	}
	return names
}

var _ rhi.CommandContext = (*commandContext)(nil)

func (c *commandContext) record(name string, args ...any) {
	c.Calls = append(c.Calls, recordedCall{Name: name, Args: args})
}

func (c *commandContext) BeginCommand() error {
	c.record("BeginCommand")
	return nil
}

func (c *commandContext) EndCommand() error {
	c.record("EndCommand")
	return nil
}

func (c *commandContext) Execute(fenceOut rhi.Fence, wait, signal rhi.Semaphore) error {
	c.record("Execute")
	if fenceOut != nil {
		if f, ok := fenceOut.(*fence); ok {
			f.signaled = true
		}
	}
	return nil
}

func (c *commandContext) TextureBarrier(b rhi.TextureBarrier) {
	c.record("TextureBarrier", b)
}

func (c *commandContext) BufferBarrier(b rhi.BufferBarrier) {
	c.record("BufferBarrier", b)
}

func (c *commandContext) CopyBufferToBuffer(src rhi.Buffer, srcOffset uint64, dst rhi.Buffer, dstOffset uint64, size uint64) {
	c.record("CopyBufferToBuffer", src, srcOffset, dst, dstOffset, size)
}

func (c *commandContext) CopyTextureToTexture(src rhi.Texture, srcLayers rhi.TextureSubresourceLayers, dst rhi.Texture, dstLayers rhi.TextureSubresourceLayers, extent rhi.Extent3D) {
	c.record("CopyTextureToTexture", src, srcLayers, dst, dstLayers, extent)
}

func (c *commandContext) CopyBufferToTexture(src rhi.Buffer, srcOffset uint64, dst rhi.Texture, dstLayers rhi.TextureSubresourceLayers, extent rhi.Extent3D) {
	c.record("CopyBufferToTexture", src, srcOffset, dst, dstLayers, extent)
}

func (c *commandContext) GenerateMips(tex rhi.Texture) {
	if tex.Info().MipLevels <= 1 {
		return
	}
	c.record("GenerateMips", tex)
}

func (c *commandContext) PushDebugEvent(name string, color [4]float32) {
	c.record("PushDebugEvent", name, color)
}

func (c *commandContext) PopDebugEvent() {
	c.record("PopDebugEvent")
}

func (c *commandContext) BeginRenderPass(info rhi.RenderPassBeginInfo) {
	c.inPass = true
	c.record("BeginRenderPass", info)
}

func (c *commandContext) EndRenderPass() {
	c.inPass = false
	c.record("EndRenderPass")
}

func (c *commandContext) SetViewport(v rhi.Viewport) {
	c.record("SetViewport", v)
}

func (c *commandContext) SetScissor(r rhi.Rect2D) {
	c.record("SetScissor", r)
}

func (c *commandContext) SetDepthBias(constant, slopeScale float32) {
	c.record("SetDepthBias", constant, slopeScale)
}

func (c *commandContext) SetLineWidth(width float32) {
	c.record("SetLineWidth", width)
}

func (c *commandContext) BindGraphicsPipeline(p rhi.GraphicsPipeline) {
	c.record("BindGraphicsPipeline", p)
}

func (c *commandContext) BindComputePipeline(p rhi.ComputePipeline) {
	c.record("BindComputePipeline", p)
}

func (c *commandContext) BindRayTracingPipeline(p rhi.RayTracingPipeline) {
	c.record("BindRayTracingPipeline", p)
}

func (c *commandContext) PushConstants(data []byte, offset uint32, frequency rhi.ShaderFrequency) {
	c.record("PushConstants", append([]byte(nil), data...), offset, frequency)
}

func (c *commandContext) BindDescriptorSet(slot uint32, set rhi.DescriptorSet) {
	c.record("BindDescriptorSet", slot, set)
}

func (c *commandContext) BindConstantBuffer(slot uint32, buf rhi.Buffer, offset, size uint64) {
	c.record("BindConstantBuffer", slot, buf, offset, size)
}

func (c *commandContext) BindTextureSlot(slot uint32, view rhi.TextureView) {
	c.record("BindTextureSlot", slot, view)
}

func (c *commandContext) BindSamplerSlot(slot uint32, samp rhi.Sampler) {
	c.record("BindSamplerSlot", slot, samp)
}

func (c *commandContext) BindVertexBuffer(slot uint32, buf rhi.Buffer, offset uint64) {
	c.record("BindVertexBuffer", slot, buf, offset)
}

func (c *commandContext) BindIndexBuffer(buf rhi.Buffer, offset uint64, width rhi.IndexWidth) {
	c.record("BindIndexBuffer", buf, offset, width)
}

func (c *commandContext) Dispatch(groupsX, groupsY, groupsZ uint32) {
	c.record("Dispatch", groupsX, groupsY, groupsZ)
}

func (c *commandContext) DispatchIndirect(args rhi.Buffer, offset uint64) {
	c.record("DispatchIndirect", args, offset)
}

func (c *commandContext) TraceRays(width, height, depth uint32) {
	c.record("TraceRays", width, height, depth)
}

func (c *commandContext) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	c.record("Draw", vertexCount, instanceCount, firstVertex, firstInstance)
}

func (c *commandContext) DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	c.record("DrawIndexed", indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
}

func (c *commandContext) DrawIndirect(args rhi.Buffer, offset uint64) {
	c.record("DrawIndirect", args, offset)
}

func (c *commandContext) DrawIndexedIndirect(args rhi.Buffer, offset uint64) {
	c.record("DrawIndexedIndirect", args, offset)
}

func (c *commandContext) ImguiNewFrame() {
	c.record("ImguiNewFrame")
}

func (c *commandContext) ImguiRender() {
	c.record("ImguiRender")
}
