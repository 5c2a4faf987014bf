package rdg

import "github.com/kestrel3d/rdgo/rhi"

// BufferBuilder is the fluent declaration API for one buffer resource node
// (§4.4 "create_buffer(name)...finish()").
type BufferBuilder struct {
	b    *Builder
	name string

	info           rhi.BufferInfo
	imported       bool
	importedHandle rhi.Buffer
	initialState   rhi.ResourceState
}

func (bb *BufferBuilder) Size(size uint64) *BufferBuilder {
	bb.info.Size = size
	return bb
}

func (bb *BufferBuilder) Stride(stride uint32) *BufferBuilder {
	bb.info.Stride = stride
	return bb
}

func (bb *BufferBuilder) MemoryUsage(u rhi.MemoryUsage) *BufferBuilder {
	bb.info.MemoryUsage = u
	return bb
}

func (bb *BufferBuilder) AllowVertex() *BufferBuilder {
	bb.info.Type |= rhi.ResourceTypeVertexBuffer
	return bb
}

func (bb *BufferBuilder) AllowIndex() *BufferBuilder {
	bb.info.Type |= rhi.ResourceTypeIndexBuffer
	return bb
}

func (bb *BufferBuilder) AllowRead() *BufferBuilder {
	bb.info.Type |= rhi.ResourceTypeUniformBuffer
	return bb
}

func (bb *BufferBuilder) AllowReadWrite() *BufferBuilder {
	bb.info.Type |= rhi.ResourceTypeRwBuffer
	return bb
}

func (bb *BufferBuilder) AllowIndirect() *BufferBuilder {
	bb.info.Type |= rhi.ResourceTypeIndirectBuffer
	return bb
}

// Import registers the node as wrapping an externally-owned RHI buffer
// already in initialState.
func (bb *BufferBuilder) Import(buf rhi.Buffer, initialState rhi.ResourceState) *BufferBuilder {
	bb.imported = true
	bb.importedHandle = buf
	bb.initialState = initialState
	if buf != nil {
		bb.info = buf.Info()
	}
	return bb
}

// Finish allocates the node, registers it in the blackboard under its
// declared name, and returns its handle.
func (bb *BufferBuilder) Finish() BufferHandle {
	n := &bufferNode{
		name:         bb.name,
		info:         bb.info,
		imported:     bb.imported,
		handle:       bb.importedHandle,
		initialState: bb.initialState,
		currentState: bb.initialState,
	}
	if bb.imported {
		n.resolved = true
	}
	id := bb.b.graph.CreateNode(n)
	h := BufferHandle{id: id}
	bb.b.blackboard.buffers[bb.name] = h
	return h
}
