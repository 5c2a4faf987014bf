package rdg

import (
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/kestrel3d/rdgo/cmdlist"
	"github.com/kestrel3d/rdgo/respool"
	"github.com/kestrel3d/rdgo/rhi"
	"github.com/kestrel3d/rdgo/rhi/mockbackend"
)

// testHarness bundles the mock backend, its raw command context (for
// call-sequence assertions), and a Builder wrapping it in bypass mode.
type testHarness struct {
	backend *mockbackend.Backend
	ctx     rhi.CommandContext
	builder *Builder
}

func newTestHarness() *testHarness {
	backend := mockbackend.New(rhi.BackendInfo{Type: rhi.BackendTypeMock})
	pools := respool.NewManager(backend)
	ctx := backend.CreateCommandContext()
	list := cmdlist.New(ctx, true)
	return &testHarness{backend: backend, ctx: ctx, builder: New(backend, pools, list)}
}

func (h *testHarness) callNames() []string {
	return mockbackend.CallNames(h.ctx)
}

// TestTriangleScenario exercises S1: a single render pass writing to an
// imported swapchain color texture with Clear/Store, asserting the
// execution call order.
func TestTriangleScenario(t *testing.T) {
	h := newTestHarness()
	b := h.builder

	backbuffer := h.backend.CreateTexture(rhi.TextureInfo{
		Format:      rhi.FormatR8Unorm,
		Extent:      rhi.Extent3D{Width: 64, Height: 64, Depth: 1},
		ArrayLayers: 1,
		MipLevels:   1,
		Type:        rhi.ResourceTypeRenderTarget,
	})

	colorTex := b.CreateTexture("ColorTex").
		Format(rhi.FormatR8Unorm).
		Extent(rhi.Extent3D{Width: 64, Height: 64, Depth: 1}).
		AllowRenderTarget().
		Import(backbuffer, rhi.ResourceStatePresent).
		Finish()

	drew := false
	b.CreateRenderPass("ForwardPass").
		Color(0, colorTex, rhi.LoadOpClear, rhi.StoreOpStore, [4]float32{0.1, 0.2, 0.4, 1.0}).
		Execute(func(pc *PassContext) {
			drew = true
			pc.Command.Draw(3, 1, 0, 0)
		}).
		Finish()

	b.Execute()

	if !drew {
		t.Fatal("executor callback never ran")
	}

	got := h.callNames()
	want := []string{"PushDebugEvent", "TextureBarrier", "BeginRenderPass", "Draw", "EndRenderPass", "PopDebugEvent"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("call sequence = %v, want %v", got, want)
	}
}

// TestTriangleScenarioGraphviz exercises S1's DOT export shape: one orange
// pass rectangle, one green texture box, one red edge labeled Color.
func TestTriangleScenarioGraphviz(t *testing.T) {
	h := newTestHarness()
	b := h.builder

	colorTex := b.CreateTexture("ColorTex").
		Format(rhi.FormatR8Unorm).
		Extent(rhi.Extent3D{Width: 64, Height: 64, Depth: 1}).
		AllowRenderTarget().
		Finish()

	b.CreateRenderPass("ForwardPass").
		Color(0, colorTex, rhi.LoadOpClear, rhi.StoreOpStore, [4]float32{0.1, 0.2, 0.4, 1.0}).
		Execute(func(*PassContext) {}).
		Finish()

	path := t.TempDir() + "/triangle.dot"
	if err := b.ExportGraphviz(path); err != nil {
		t.Fatalf("ExportGraphviz: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dot file: %v", err)
	}
	dot := string(data)
	for _, want := range []string{
		`label="ForwardPass" shape=rectangle style=filled fillcolor=orange`,
		`label="ColorTex" shape=box style=filled fillcolor=green`,
		`color=red label="Color"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("dot output missing %q\ngot:\n%s", want, dot)
		}
	}
}

// TestComputeThenReadTransition exercises S2: a compute pass writes a
// RwTexture a subsequent render pass reads as SRV. Property 2: the inserted
// transition is UnorderedAccess -> ShaderResource, emitted between the two
// callback invocations.
func TestComputeThenReadTransition(t *testing.T) {
	h := newTestHarness()
	b := h.builder

	outputTex := b.CreateTexture("OutputTex").
		Format(rhi.FormatR8Unorm).
		Extent(rhi.Extent3D{Width: 32, Height: 32, Depth: 1}).
		AllowReadWrite().
		AllowShaderRead().
		Finish()

	var order []string
	b.CreateComputePass("Compute").
		OutputReadWriteTexture(0, 0, 0, outputTex).
		Execute(func(*PassContext) { order = append(order, "compute") }).
		Finish()

	b.CreateRenderPass("PostProcess").
		ReadTexture(0, 0, 0, outputTex).
		Execute(func(*PassContext) { order = append(order, "render") }).
		Finish()

	b.Execute()

	if !reflect.DeepEqual(order, []string{"compute", "render"}) {
		t.Fatalf("callback order = %v", order)
	}

	got := h.callNames()
	// One TextureBarrier after the compute callback (step 8, UAV), one
	// before the render callback (step 4, SRV) — none for descriptor-only
	// binding in between.
	barrierIdx := []int{}
	for i, name := range got {
		if name == "TextureBarrier" {
			barrierIdx = append(barrierIdx, i)
		}
	}
	if len(barrierIdx) != 2 {
		t.Fatalf("expected exactly 2 TextureBarrier calls, got %v in %v", barrierIdx, got)
	}
}

// TestCopyPassGenerateMips exercises the copy-pass generate_mips
// specialization: a TransferDst->TransferSrc->TransferDst round trip
// sandwiching GenerateMips, after the ordinary transfer barriers.
func TestCopyPassGenerateMips(t *testing.T) {
	h := newTestHarness()
	b := h.builder

	src := b.CreateTexture("Src").
		Format(rhi.FormatR8Unorm).
		Extent(rhi.Extent3D{Width: 16, Height: 16, Depth: 1}).
		Finish()
	dst := b.CreateTexture("Dst").
		Format(rhi.FormatR8Unorm).
		Extent(rhi.Extent3D{Width: 16, Height: 16, Depth: 1}).
		MipLevels(4).
		Finish()

	b.CreateCopyPass("Mips").
		From(src, rhi.TextureSubresourceLayers{LayerCount: 1}).
		To(dst, rhi.TextureSubresourceLayers{LayerCount: 1}).
		GenerateMips().
		Finish()

	b.Execute()

	got := h.callNames()
	want := []string{
		"PushDebugEvent", "TextureBarrier", "TextureBarrier",
		"CopyTextureToTexture",
		"TextureBarrier", "GenerateMips", "TextureBarrier",
		"PopDebugEvent",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("call sequence = %v, want %v", got, want)
	}
}

// TestPresentPassBlit exercises the present-pass specialization: an
// explicit Present->TransferDst transition, a blit, then
// TransferDst->Present.
func TestPresentPassBlit(t *testing.T) {
	h := newTestHarness()
	b := h.builder

	backbufferHandle := h.backend.CreateTexture(rhi.TextureInfo{
		Format: rhi.FormatR8Unorm, Extent: rhi.Extent3D{Width: 64, Height: 64, Depth: 1},
		ArrayLayers: 1, MipLevels: 1, Type: rhi.ResourceTypeRenderTarget,
	})

	sceneColor := b.CreateTexture("SceneColor").
		Format(rhi.FormatR8Unorm).
		Extent(rhi.Extent3D{Width: 64, Height: 64, Depth: 1}).
		Finish()
	backbuffer := b.CreateTexture("Backbuffer").
		Format(rhi.FormatR8Unorm).
		Extent(rhi.Extent3D{Width: 64, Height: 64, Depth: 1}).
		Import(backbufferHandle, rhi.ResourceStatePresent).
		Finish()

	b.CreatePresentPass("Present").
		Texture(sceneColor, rhi.TextureSubresourceLayers{LayerCount: 1}).
		PresentTexture(backbuffer).
		Finish()

	b.Execute()

	got := h.callNames()
	want := []string{
		"PushDebugEvent", "TextureBarrier",
		"TextureBarrier", "CopyTextureToTexture", "TextureBarrier",
		"PopDebugEvent",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("call sequence = %v, want %v", got, want)
	}
}
