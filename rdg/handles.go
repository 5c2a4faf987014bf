// Package rdg implements the render dependency graph: a per-frame typed
// specialization of internal/dag whose nodes are GPU resources and passes,
// and whose Builder resolves, barriers, binds, and executes them in
// declaration order (§3.4, §4.4 of the design this package realizes).
package rdg

import "github.com/kestrel3d/rdgo/internal/dag"

// NoHandle is the sentinel id returned by a blackboard miss — the only
// soft-failure path in the graph (§4.1). Builder methods gated on a handle
// carrying this id no-op with a single warning log line.
const NoHandle = dag.NoNode

// TextureHandle is a thin, frame-scoped wrapper around a dag.NodeID typed
// to a texture resource node. Handles are value types: cheap to copy,
// comparable, and meaningless once the owning Builder's graph is cleared.
type TextureHandle struct{ id dag.NodeID }

func (h TextureHandle) Valid() bool { return h.id != NoHandle }

// BufferHandle is the buffer-node analogue of TextureHandle.
type BufferHandle struct{ id dag.NodeID }

func (h BufferHandle) Valid() bool { return h.id != NoHandle }

// RenderPassHandle identifies a render pass node.
type RenderPassHandle struct{ id dag.NodeID }

func (h RenderPassHandle) Valid() bool { return h.id != NoHandle }

// ComputePassHandle identifies a compute pass node.
type ComputePassHandle struct{ id dag.NodeID }

func (h ComputePassHandle) Valid() bool { return h.id != NoHandle }

// RayTracingPassHandle identifies a ray-tracing pass node.
type RayTracingPassHandle struct{ id dag.NodeID }

func (h RayTracingPassHandle) Valid() bool { return h.id != NoHandle }

// CopyPassHandle identifies a copy pass node.
type CopyPassHandle struct{ id dag.NodeID }

func (h CopyPassHandle) Valid() bool { return h.id != NoHandle }

// PresentPassHandle identifies a present pass node.
type PresentPassHandle struct{ id dag.NodeID }

func (h PresentPassHandle) Valid() bool { return h.id != NoHandle }
