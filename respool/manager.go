package respool

import "github.com/kestrel3d/rdgo/rhi"

// Manager bundles the four transient pools behind one handle, matching the
// shape rdg.Builder holds a single reference to across its lifetime (§3.5).
// A process normally owns exactly one Manager per Backend, mirroring the
// backend itself being a singleton (§4.2).
type Manager struct {
	Buffers         *BufferPool
	Textures        *TexturePool
	TextureViews    *TextureViewPool
	DescriptorSets  *DescriptorSetPool
}

// NewManager builds the four pools over backend.
func NewManager(backend rhi.Backend) *Manager {
	return &Manager{
		Buffers:        NewBufferPool(backend),
		Textures:       NewTexturePool(backend),
		TextureViews:   NewTextureViewPool(backend),
		DescriptorSets: NewDescriptorSetPool(backend),
	}
}

// Clear empties every pool's free lists, releasing their backend
// references. Intended for shutdown or test teardown; a running engine
// never needs to call this since resources age out through the backend's
// own Tick/ResourceGraceTicks mechanism instead.
func (m *Manager) Clear() {
	m.Buffers.Clear()
	m.Textures.Clear()
	m.TextureViews.Clear()
	m.DescriptorSets.Clear()
}
