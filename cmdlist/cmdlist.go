// Package cmdlist implements the command-list wrapper from §4.5 of the
// spec: a recordable queue of deferred RHI calls, or a thin passthrough to
// an immediate context, selectable per-list via "bypass". Both modes are
// observationally equivalent — same GPU effect, same completion semantics —
// because queued mode simply defers forwarding the exact same calls bypass
// mode makes immediately.
package cmdlist

import "github.com/kestrel3d/rdgo/rhi"

// command is one deferred RHI call, captured as a closure over its
// arguments at record time.
type command func(ctx rhi.CommandContext)

// List is a command list in either bypass or queued mode. In bypass mode
// every call is forwarded to the underlying context immediately; in queued
// mode calls are appended as command records and replayed in order at
// Execute time. List itself implements rhi.CommandContext so pass executor
// callbacks can treat it exactly like a raw context.
type List struct {
	ctx     rhi.CommandContext
	bypass  bool
	commands []command
}

var _ rhi.CommandContext = (*List)(nil)

// New wraps ctx as a command list. When bypass is true, every recorded call
// is forwarded immediately; when false, calls are appended and flushed in
// order at Execute time.
func New(ctx rhi.CommandContext, bypass bool) *List {
	return &List{ctx: ctx, bypass: bypass}
}

// Bypass reports whether this list is in bypass (immediate) mode.
func (l *List) Bypass() bool {
	return l.bypass
}

// record either runs fn immediately (bypass) or appends it for later replay.
func (l *List) record(fn command) {
	if l.bypass {
		fn(l.ctx)
		return
	}
	l.commands = append(l.commands, fn)
}

func (l *List) BeginCommand() error {
	return l.ctx.BeginCommand()
}

func (l *List) EndCommand() error {
	return l.ctx.EndCommand()
}

// Execute first replays every recorded command against the underlying
// context in order (a no-op in bypass mode, since nothing was queued), then
// delegates to the context's own Execute for queue submission. List never
// returns the context to the backend's command pool; whoever created the
// context does (engine.renderFrame defers ReleaseCommandContext).
func (l *List) Execute(fence rhi.Fence, wait, signal rhi.Semaphore) error {
	for _, c := range l.commands {
		c(l.ctx)
	}
	l.commands = l.commands[:0]
	return l.ctx.Execute(fence, wait, signal)
}

func (l *List) TextureBarrier(b rhi.TextureBarrier) {
	l.record(func(ctx rhi.CommandContext) { ctx.TextureBarrier(b) })
}

func (l *List) BufferBarrier(b rhi.BufferBarrier) {
	l.record(func(ctx rhi.CommandContext) { ctx.BufferBarrier(b) })
}

func (l *List) CopyBufferToBuffer(src rhi.Buffer, srcOffset uint64, dst rhi.Buffer, dstOffset uint64, size uint64) {
	l.record(func(ctx rhi.CommandContext) { ctx.CopyBufferToBuffer(src, srcOffset, dst, dstOffset, size) })
}

func (l *List) CopyTextureToTexture(src rhi.Texture, srcLayers rhi.TextureSubresourceLayers, dst rhi.Texture, dstLayers rhi.TextureSubresourceLayers, extent rhi.Extent3D) {
	l.record(func(ctx rhi.CommandContext) { ctx.CopyTextureToTexture(src, srcLayers, dst, dstLayers, extent) })
}

func (l *List) CopyBufferToTexture(src rhi.Buffer, srcOffset uint64, dst rhi.Texture, dstLayers rhi.TextureSubresourceLayers, extent rhi.Extent3D) {
	l.record(func(ctx rhi.CommandContext) { ctx.CopyBufferToTexture(src, srcOffset, dst, dstLayers, extent) })
}

func (l *List) GenerateMips(tex rhi.Texture) {
	l.record(func(ctx rhi.CommandContext) { ctx.GenerateMips(tex) })
}

func (l *List) PushDebugEvent(name string, color [4]float32) {
	l.record(func(ctx rhi.CommandContext) { ctx.PushDebugEvent(name, color) })
}

func (l *List) PopDebugEvent() {
	l.record(func(ctx rhi.CommandContext) { ctx.PopDebugEvent() })
}

func (l *List) BeginRenderPass(info rhi.RenderPassBeginInfo) {
	l.record(func(ctx rhi.CommandContext) { ctx.BeginRenderPass(info) })
}

func (l *List) EndRenderPass() {
	l.record(func(ctx rhi.CommandContext) { ctx.EndRenderPass() })
}

func (l *List) SetViewport(v rhi.Viewport) {
	l.record(func(ctx rhi.CommandContext) { ctx.SetViewport(v) })
}

func (l *List) SetScissor(r rhi.Rect2D) {
	l.record(func(ctx rhi.CommandContext) { ctx.SetScissor(r) })
}

func (l *List) SetDepthBias(constant, slopeScale float32) {
	l.record(func(ctx rhi.CommandContext) { ctx.SetDepthBias(constant, slopeScale) })
}

func (l *List) SetLineWidth(width float32) {
	l.record(func(ctx rhi.CommandContext) { ctx.SetLineWidth(width) })
}

func (l *List) BindGraphicsPipeline(p rhi.GraphicsPipeline) {
	l.record(func(ctx rhi.CommandContext) { ctx.BindGraphicsPipeline(p) })
}

func (l *List) BindComputePipeline(p rhi.ComputePipeline) {
	l.record(func(ctx rhi.CommandContext) { ctx.BindComputePipeline(p) })
}

func (l *List) BindRayTracingPipeline(p rhi.RayTracingPipeline) {
	l.record(func(ctx rhi.CommandContext) { ctx.BindRayTracingPipeline(p) })
}

func (l *List) PushConstants(data []byte, offset uint32, frequency rhi.ShaderFrequency) {
	cp := append([]byte(nil), data...)
	l.record(func(ctx rhi.CommandContext) { ctx.PushConstants(cp, offset, frequency) })
}

func (l *List) BindDescriptorSet(slot uint32, set rhi.DescriptorSet) {
	l.record(func(ctx rhi.CommandContext) { ctx.BindDescriptorSet(slot, set) })
}

func (l *List) BindConstantBuffer(slot uint32, buf rhi.Buffer, offset, size uint64) {
	l.record(func(ctx rhi.CommandContext) { ctx.BindConstantBuffer(slot, buf, offset, size) })
}

func (l *List) BindTextureSlot(slot uint32, view rhi.TextureView) {
	l.record(func(ctx rhi.CommandContext) { ctx.BindTextureSlot(slot, view) })
}

func (l *List) BindSamplerSlot(slot uint32, samp rhi.Sampler) {
	l.record(func(ctx rhi.CommandContext) { ctx.BindSamplerSlot(slot, samp) })
}

func (l *List) BindVertexBuffer(slot uint32, buf rhi.Buffer, offset uint64) {
	l.record(func(ctx rhi.CommandContext) { ctx.BindVertexBuffer(slot, buf, offset) })
}

func (l *List) BindIndexBuffer(buf rhi.Buffer, offset uint64, width rhi.IndexWidth) {
	l.record(func(ctx rhi.CommandContext) { ctx.BindIndexBuffer(buf, offset, width) })
}

func (l *List) Dispatch(groupsX, groupsY, groupsZ uint32) {
	l.record(func(ctx rhi.CommandContext) { ctx.Dispatch(groupsX, groupsY, groupsZ) })
}

func (l *List) DispatchIndirect(args rhi.Buffer, offset uint64) {
	l.record(func(ctx rhi.CommandContext) { ctx.DispatchIndirect(args, offset) })
}

func (l *List) TraceRays(width, height, depth uint32) {
	l.record(func(ctx rhi.CommandContext) { ctx.TraceRays(width, height, depth) })
}

func (l *List) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	l.record(func(ctx rhi.CommandContext) { ctx.Draw(vertexCount, instanceCount, firstVertex, firstInstance) })
}

func (l *List) DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) {
	l.record(func(ctx rhi.CommandContext) {
		ctx.DrawIndexed(indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
	})
}

func (l *List) DrawIndirect(args rhi.Buffer, offset uint64) {
	l.record(func(ctx rhi.CommandContext) { ctx.DrawIndirect(args, offset) })
}

func (l *List) DrawIndexedIndirect(args rhi.Buffer, offset uint64) {
	l.record(func(ctx rhi.CommandContext) { ctx.DrawIndexedIndirect(args, offset) })
}

func (l *List) ImguiNewFrame() {
	l.record(func(ctx rhi.CommandContext) { ctx.ImguiNewFrame() })
}

func (l *List) ImguiRender() {
	l.record(func(ctx rhi.CommandContext) { ctx.ImguiRender() })
}
