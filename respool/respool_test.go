package respool

import (
	"testing"

	"github.com/kestrel3d/rdgo/rhi"
	"github.com/kestrel3d/rdgo/rhi/mockbackend"
)

func TestBufferPoolReusesReleasedBuffer(t *testing.T) {
	backend := mockbackend.New(rhi.BackendInfo{})
	pool := NewBufferPool(backend)

	info := rhi.BufferInfo{Size: 1024, MemoryUsage: rhi.MemoryUsageGpuOnly, Type: rhi.ResourceTypeBuffer}
	buf1, state := pool.Acquire(info)
	if state != rhi.ResourceStateUndefined {
		t.Fatalf("BufferPool.Acquire: fresh buffer state = %v, want Undefined", state)
	}
	pool.Release(buf1, rhi.ResourceStateTransferDst)
	buf2, state2 := pool.Acquire(info)
	if state2 != rhi.ResourceStateTransferDst {
		t.Fatalf("BufferPool.Acquire: reused buffer state = %v, want TransferDst", state2)
	}

	if buf1 != buf2 {
		t.Fatal("BufferPool.Acquire: expected the released buffer back, got a new allocation")
	}
	if got := pool.AllocatedSize(); got != 1 {
		t.Fatalf("BufferPool.AllocatedSize: got %d, want 1", got)
	}
}

func TestBufferPoolAcceptsLargerExistingBuffer(t *testing.T) {
	backend := mockbackend.New(rhi.BackendInfo{})
	pool := NewBufferPool(backend)

	key := rhi.BufferInfo{MemoryUsage: rhi.MemoryUsageGpuOnly, Type: rhi.ResourceTypeBuffer}
	big := key
	big.Size = 4096
	buf, _ := pool.Acquire(big)
	pool.Release(buf, rhi.ResourceStateUndefined)

	small := key
	small.Size = 64
	got, _ := pool.Acquire(small)
	if got != buf {
		t.Fatal("BufferPool.Acquire: a larger pooled buffer should satisfy a smaller request")
	}
	if pool.AllocatedSize() != 1 {
		t.Fatalf("BufferPool.AllocatedSize: got %d, want 1 (no new allocation expected)", pool.AllocatedSize())
	}
}

func TestBufferPoolDoesNotReuseAcrossDifferentKeys(t *testing.T) {
	backend := mockbackend.New(rhi.BackendInfo{})
	pool := NewBufferPool(backend)

	a := rhi.BufferInfo{Size: 256, MemoryUsage: rhi.MemoryUsageGpuOnly, Type: rhi.ResourceTypeBuffer}
	b := rhi.BufferInfo{Size: 256, MemoryUsage: rhi.MemoryUsageCpuOnly, Type: rhi.ResourceTypeBuffer}

	buf, _ := pool.Acquire(a)
	pool.Release(buf, rhi.ResourceStateUndefined)
	pool.Acquire(b)

	if pool.AllocatedSize() != 2 {
		t.Fatalf("BufferPool.AllocatedSize: got %d, want 2 for distinct pool keys", pool.AllocatedSize())
	}
}

func TestTexturePoolKeyIncludesNormalizedMips(t *testing.T) {
	backend := mockbackend.New(rhi.BackendInfo{})
	pool := NewTexturePool(backend)

	info := rhi.TextureInfo{Extent: rhi.Extent3D{Width: 16, Height: 16, Depth: 1}, ArrayLayers: 1}
	tex1, _ := pool.Acquire(info)
	pool.Release(tex1, rhi.ResourceStateUndefined)
	tex2, _ := pool.Acquire(info)

	if tex1 != tex2 {
		t.Fatal("TexturePool.Acquire: expected the released texture back for an identical request")
	}
	if tex1.Info().MipLevels != 5 {
		t.Fatalf("TexturePool.Acquire: MipLevels = %d, want 5", tex1.Info().MipLevels)
	}
}

func TestDescriptorSetPoolRingsAcrossFramesInFlight(t *testing.T) {
	backend := mockbackend.New(rhi.BackendInfo{})
	pool := NewDescriptorSetPool(backend)
	layout := backend.CreateRootSignature(rhi.RootSignatureInfo{Label: "test"})

	set0 := pool.Acquire(layout, 0, 0)
	set1 := pool.Acquire(layout, 0, 1)
	if set0 == set1 {
		t.Fatal("DescriptorSetPool.Acquire: frame 0 and frame 1 must not alias the same set")
	}

	pool.Release(set0, 0)
	set0Again := pool.Acquire(layout, 0, rhi.FramesInFlight)
	if set0Again != set0 {
		t.Fatal("DescriptorSetPool.Acquire: frame index wrapping modulo FramesInFlight should reuse the same ring slot")
	}
}

func TestManagerClearReleasesPooledResources(t *testing.T) {
	backend := mockbackend.New(rhi.BackendInfo{})
	mgr := NewManager(backend)

	buf, _ := mgr.Buffers.Acquire(rhi.BufferInfo{Size: 128, MemoryUsage: rhi.MemoryUsageGpuOnly})
	mgr.Buffers.Release(buf, rhi.ResourceStateUndefined)
	if mgr.Buffers.PooledSize() != 1 {
		t.Fatalf("Buffers.PooledSize: got %d, want 1 before Clear", mgr.Buffers.PooledSize())
	}

	mgr.Clear()
	if mgr.Buffers.PooledSize() != 0 {
		t.Fatalf("Buffers.PooledSize: got %d, want 0 after Clear", mgr.Buffers.PooledSize())
	}
}
