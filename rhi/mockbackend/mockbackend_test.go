package mockbackend

import (
	"testing"

	"github.com/kestrel3d/rdgo/rhi"
)

func TestTickDestroysAfterGraceTicks(t *testing.T) {
	b := New(rhi.BackendInfo{})
	buf := b.CreateBuffer(rhi.BufferInfo{Size: 256})
	buf.Release()

	for i := 0; i < rhi.ResourceGraceTicks-1; i++ {
		b.Tick()
		if b.DestroyedCount != 0 {
			t.Fatalf("Tick: destroyed early at tick %d, have %d want 0", i, b.DestroyedCount)
		}
	}
	b.Tick()
	if b.DestroyedCount != 1 {
		t.Fatalf("Tick: DestroyedCount = %d, want 1", b.DestroyedCount)
	}
}

func TestTickResetsGraceOnAddRef(t *testing.T) {
	b := New(rhi.BackendInfo{})
	buf := b.CreateBuffer(rhi.BufferInfo{Size: 256})
	buf.Release()
	b.Tick()
	buf.AddRef()
	for i := 0; i < rhi.ResourceGraceTicks; i++ {
		b.Tick()
	}
	if b.DestroyedCount != 0 {
		t.Fatalf("Tick: DestroyedCount = %d, want 0 after AddRef reset the grace counter", b.DestroyedCount)
	}
}

func TestDestroyIsImmediateAndIdempotent(t *testing.T) {
	b := New(rhi.BackendInfo{})
	b.CreateBuffer(rhi.BufferInfo{Size: 256})
	b.CreateTexture(rhi.TextureInfo{Extent: rhi.Extent3D{Width: 4, Height: 4, Depth: 1}, ArrayLayers: 1, MipLevels: 1})
	b.Destroy()
	if b.DestroyedCount != 2 {
		t.Fatalf("Destroy: DestroyedCount = %d, want 2", b.DestroyedCount)
	}
	b.Destroy()
	if b.DestroyedCount != 2 {
		t.Fatalf("Destroy: second call changed DestroyedCount to %d, want 2", b.DestroyedCount)
	}
}

func TestCompileShaderEmptyOnFailure(t *testing.T) {
	b := New(rhi.BackendInfo{})
	if got := b.CompileShader("", "main", "vs"); got != nil {
		t.Fatalf("CompileShader: got %v, want nil for empty source", got)
	}
	if got := b.CompileShader("fn main() {}", "main", "vs"); len(got) == 0 {
		t.Fatalf("CompileShader: got empty result for non-empty source")
	}
}

func TestTextureNormalizesMipLevels(t *testing.T) {
	b := New(rhi.BackendInfo{})
	tex := b.CreateTexture(rhi.TextureInfo{Extent: rhi.Extent3D{Width: 16, Height: 16, Depth: 1}, ArrayLayers: 1})
	if got := tex.Info().MipLevels; got != 5 {
		t.Fatalf("CreateTexture: MipLevels = %d, want 5 for a 16x16 texture", got)
	}
}

func TestImmediateCommandIsReused(t *testing.T) {
	b := New(rhi.BackendInfo{})
	c1 := b.GetImmediateCommand()
	c2 := b.GetImmediateCommand()
	if c1 != c2 {
		t.Fatal("GetImmediateCommand: expected the same context on repeat calls")
	}
}
