// Package mockbackend is a software rhi.Backend implementation with no GPU
// dependency, so respool and rdg can be exercised in ordinary `go test`
// runs. It tracks the same refcount/grace-tick lifecycle the real backend
// does (§4.2, §5) but every "GPU object" is just a plain Go struct; Tick
// and resource destruction are observable through counters instead of
// driver calls, which is what this package's own tests assert against.
package mockbackend

import (
	"fmt"
	"sync"

	"github.com/kestrel3d/rdgo/rhi"
)

// Backend is the mock rhi.Backend singleton. It is safe for concurrent use
// for the same future-proofing reason the real backend takes a mutex
// (§4.2): nothing in this module records commands from more than one
// goroutine today.
type Backend struct {
	mu      sync.Mutex
	info    rhi.BackendInfo
	tracked []*liveResource
	cmdPool []*commandContext
	immCmd  rhi.CommandContext
	queue   *queue

	// DestroyedCount counts resources the tracker has actually destroyed
	// via Tick, for test assertions.
	DestroyedCount int
}

// New builds a mock backend. Unlike the real backend this is not a global
// singleton — tests construct one per test so they never share state.
func New(info rhi.BackendInfo) *Backend {
	return &Backend{info: info}
}

var _ rhi.Backend = (*Backend)(nil)

// liveResource is the tracker's bookkeeping record for one handle, mirroring
// the refcount + grace-tick model every resource type shares (§5).
type liveResource struct {
	label      string
	refs       int
	graceTicks int
	destroy    func()
	destroyed  bool
}

func (b *Backend) track(label string, destroy func()) *liveResource {
	// One ref for the tracker itself, one for the handle returned to the caller.
	lr := &liveResource{label: label, refs: 2, destroy: destroy}
	b.tracked = append(b.tracked, lr)
	return lr
}

// Tick ages every tracked resource whose only remaining ref is the
// tracker's own (refs == 1) by one grace tick, destroying it once it has
// sat there for rhi.ResourceGraceTicks consecutive ticks.
func (b *Backend) Tick() {
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.tracked[:0]
	for _, lr := range b.tracked {
		if lr.destroyed {
			continue
		}
		if lr.refs > 1 {
			lr.graceTicks = 0
			kept = append(kept, lr)
			continue
		}
		lr.graceTicks++
		if lr.graceTicks >= rhi.ResourceGraceTicks {
			lr.destroy()
			lr.destroyed = true
			b.DestroyedCount++
			continue
		}
		kept = append(kept, lr)
	}
	b.tracked = kept
}

// Destroy destroys every still-tracked resource immediately, in reverse
// creation order, regardless of refcount. Idempotent.
func (b *Backend) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.tracked) - 1; i >= 0; i-- {
		lr := b.tracked[i]
		if !lr.destroyed {
			lr.destroy()
			lr.destroyed = true
			b.DestroyedCount++
		}
	}
	b.tracked = nil
}

func (b *Backend) CompileShader(source, entry, profile string) []byte {
	if source == "" {
		return nil
	}
	return []byte(fmt.Sprintf("%s:%s:%s", profile, entry, source))
}

func (b *Backend) GetImmediateCommand() rhi.CommandContext {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.immCmd == nil {
		b.immCmd = newCommandContext(b)
	}
	return b.immCmd
}

func (b *Backend) GetQueue(info rhi.QueueInfo) rhi.Queue {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.queue == nil {
		q := &queue{resourceBase: resourceBase{label: "queue", backend: b}, kind: info.Kind}
		q.live = b.track(q.label, func() {})
		b.queue = q
	}
	return b.queue
}

func (b *Backend) CreateSurface(window rhi.NativeWindow) rhi.Surface {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := &resourceBase{label: "surface", backend: b}
	s.live = b.track(s.label, func() {})
	return s
}

func (b *Backend) CreateSwapchain(info rhi.SwapchainInfo) rhi.Swapchain {
	sc := &swapchain{resourceBase: resourceBase{label: "swapchain", backend: b}, info: info}
	b.mu.Lock()
	sc.live = b.track(sc.label, func() {})
	b.mu.Unlock()
	for i := uint32(0); i < info.ImageCount; i++ {
		sc.images = append(sc.images, b.CreateTexture(rhi.TextureInfo{
			Format:      info.Format,
			Extent:      rhi.Extent3D{Width: info.Extent.Width, Height: info.Extent.Height, Depth: 1},
			ArrayLayers: 1,
			MipLevels:   1,
			MemoryUsage: rhi.MemoryUsageGpuOnly,
			Type:        rhi.ResourceTypeRenderTarget,
		}))
	}
	return sc
}

func (b *Backend) CreateCommandContext() rhi.CommandContext {
	b.mu.Lock()
	defer b.mu.Unlock()
	ctx := newCommandContext(b)
	b.cmdPool = append(b.cmdPool, ctx)
	return ctx
}

func (b *Backend) ReleaseCommandContext(ctx rhi.CommandContext) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, c := range b.cmdPool {
		if rhi.CommandContext(c) == ctx {
			b.cmdPool = append(b.cmdPool[:i], b.cmdPool[i+1:]...)
			return
		}
	}
}
