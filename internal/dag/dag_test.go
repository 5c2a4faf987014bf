package dag

import "testing"

type testNode struct {
	id   NodeID
	name string
}

func (n *testNode) ID() NodeID       { return n.id }
func (n *testNode) SetID(id NodeID)  { n.id = id }

type testEdge struct {
	from, to NodeID
	kind     string
}

func (e *testEdge) From() NodeID               { return e.from }
func (e *testEdge) To() NodeID                 { return e.to }
func (e *testEdge) SetEndpoints(from, to NodeID) {
	e.from, e.to = from, to
}

func TestCreateNodeAssignsMonotonicIDs(t *testing.T) {
	g := New()
	a := g.CreateNode(&testNode{name: "a"})
	b := g.CreateNode(&testNode{name: "b"})
	c := g.CreateNode(&testNode{name: "c"})

	if a != 0 || b != 1 || c != 2 {
		t.Fatalf("CreateNode ids:\nhave %d,%d,%d\nwant 0,1,2", a, b, c)
	}
	if g.NodeCount() != 3 {
		t.Fatalf("NodeCount:\nhave %d\nwant 3", g.NodeCount())
	}
}

func TestGetNodeMissReturnsNil(t *testing.T) {
	g := New()
	g.CreateNode(&testNode{name: "a"})

	if n := g.GetNode(NoNode); n != nil {
		t.Fatalf("GetNode(NoNode):\nhave %v\nwant nil", n)
	}
	if n := g.GetNode(99); n != nil {
		t.Fatalf("GetNode(99):\nhave %v\nwant nil", n)
	}
}

func TestLinkAppendsAdjacencyInOrder(t *testing.T) {
	g := New()
	a := g.CreateNode(&testNode{name: "a"})
	b := g.CreateNode(&testNode{name: "b"})
	c := g.CreateNode(&testNode{name: "c"})

	g.Link(a, b, &testEdge{kind: "ab"})
	g.Link(a, c, &testEdge{kind: "ac"})

	out := g.OutEdges(a)
	if len(out) != 2 {
		t.Fatalf("OutEdges(a):\nhave %d edges\nwant 2", len(out))
	}
	if out[0].(*testEdge).kind != "ab" || out[1].(*testEdge).kind != "ac" {
		t.Fatalf("OutEdges(a) order:\nhave %q,%q\nwant ab,ac", out[0].(*testEdge).kind, out[1].(*testEdge).kind)
	}

	in := g.InEdges(b)
	if len(in) != 1 || in[0].(*testEdge).kind != "ab" {
		t.Fatalf("InEdges(b):\nhave %v\nwant [ab]", in)
	}
}

func TestLinkPanicsOnOutOfRangeEndpoint(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("Link with bad endpoint: expected panic, got none")
		}
	}()
	g := New()
	a := g.CreateNode(&testNode{name: "a"})
	g.Link(a, 42, &testEdge{})
}

func TestFilterEdgesByKind(t *testing.T) {
	g := New()
	a := g.CreateNode(&testNode{})
	b := g.CreateNode(&testNode{})
	g.Link(a, b, &testEdge{kind: "x"})
	g.Link(a, b, &testEdge{kind: "y"})

	filtered := FilterEdges(g.OutEdges(a), func(e Edge) bool {
		return e.(*testEdge).kind == "y"
	})
	if len(filtered) != 1 || filtered[0].(*testEdge).kind != "y" {
		t.Fatalf("FilterEdges:\nhave %v\nwant [y]", filtered)
	}
}

func TestAllEdgesOnCombinesInAndOut(t *testing.T) {
	g := New()
	a := g.CreateNode(&testNode{})
	b := g.CreateNode(&testNode{})
	c := g.CreateNode(&testNode{})
	g.Link(a, b, &testEdge{kind: "in"})
	g.Link(b, c, &testEdge{kind: "out"})

	all := g.AllEdgesOn(b)
	if len(all) != 2 {
		t.Fatalf("AllEdgesOn(b):\nhave %d\nwant 2", len(all))
	}
	if all[0].(*testEdge).kind != "in" || all[1].(*testEdge).kind != "out" {
		t.Fatalf("AllEdgesOn(b) order:\nhave %q,%q\nwant in,out", all[0].(*testEdge).kind, all[1].(*testEdge).kind)
	}
}
