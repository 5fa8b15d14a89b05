package dag

import (
	"slices"
	"testing"
)

func TestAddNodeErrors(t *testing.T) {
	g := New()
	if err := g.AddNode(Node{}); err != ErrInvalidNodeID {
		t.Errorf("empty ID: %v", err)
	}
	_ = g.AddNode(Node{ID: "a"})
	if err := g.AddNode(Node{ID: "a"}); err != ErrDuplicateNodeID {
		t.Errorf("duplicate: %v", err)
	}
}

func TestAddEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b", Row: 1})

	tests := []struct {
		name string
		e    Edge
		want error
	}{
		{"ok", Edge{From: "a", To: "b"}, nil},
		{"duplicate ignored", Edge{From: "a", To: "b"}, nil},
		{"unknown source", Edge{From: "x", To: "b"}, ErrUnknownSourceNode},
		{"unknown target", Edge{From: "a", To: "x"}, ErrUnknownTargetNode},
		{"self loop", Edge{From: "a", To: "a"}, ErrSelfLoop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.AddEdge(tt.e); err != tt.want {
				t.Errorf("AddEdge() = %v, want %v", err, tt.want)
			}
		})
	}
	if g.EdgeCount() != 1 {
		t.Errorf("EdgeCount() = %d, want 1", g.EdgeCount())
	}
}

func TestRemoveEdge(t *testing.T) {
	g := New()
	_ = g.AddNode(Node{ID: "a"})
	_ = g.AddNode(Node{ID: "b", Row: 1})
	_ = g.AddEdge(Edge{From: "a", To: "b"})
	g.RemoveEdge("a", "b")
	g.RemoveEdge("a", "missing")

	if g.EdgeCount() != 0 || len(g.Children("a")) != 0 || len(g.Parents("b")) != 0 {
		t.Error("edge not fully removed")
	}
}

func TestSetRowsKeepsInsertionOrder(t *testing.T) {
	g := New()
	for _, id := range []string{"c", "a", "b", "d"} {
		_ = g.AddNode(Node{ID: id})
	}
	g.SetRows(map[string]int{"a": 1, "d": 1})

	if got := NodeIDs(g.NodesInRow(0)); !slices.Equal(got, []string{"c", "b"}) {
		t.Errorf("row 0 = %v", got)
	}
	if got := NodeIDs(g.NodesInRow(1)); !slices.Equal(got, []string{"a", "d"}) {
		t.Errorf("row 1 = %v", got)
	}
	if g.MaxRow() != 1 || !slices.Equal(g.RowIDs(), []int{0, 1}) {
		t.Errorf("MaxRow = %d, RowIDs = %v", g.MaxRow(), g.RowIDs())
	}
	if rows := g.Rows(); rows["a"] != 1 || rows["c"] != 0 {
		t.Errorf("Rows() = %v", rows)
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		g := New()
		_ = g.AddNode(Node{ID: "a", Row: 0})
		_ = g.AddNode(Node{ID: "b", Row: 1})
		_ = g.AddEdge(Edge{From: "a", To: "b"})
		if err := g.Validate(); err != nil {
			t.Error(err)
		}
	})
	t.Run("long edge", func(t *testing.T) {
		g := New()
		_ = g.AddNode(Node{ID: "a", Row: 0})
		_ = g.AddNode(Node{ID: "b", Row: 2})
		_ = g.AddEdge(Edge{From: "a", To: "b"})
		if err := g.Validate(); err != ErrNonConsecutiveRows {
			t.Errorf("Validate() = %v", err)
		}
	})
	t.Run("cycle", func(t *testing.T) {
		g := New()
		_ = g.AddNode(Node{ID: "a"})
		_ = g.AddNode(Node{ID: "b"})
		_ = g.AddEdge(Edge{From: "a", To: "b"})
		_ = g.AddEdge(Edge{From: "b", To: "a"})
		if err := g.detectCycles(); err != ErrGraphHasCycle {
			t.Errorf("detectCycles() = %v", err)
		}
	})
}

func TestEffectiveID(t *testing.T) {
	if id := (Node{ID: "dad_sub_1", MasterID: "dad", Kind: NodeKindSubdivider}).EffectiveID(); id != "dad" {
		t.Errorf("EffectiveID = %q", id)
	}
	if id := (Node{ID: "dad"}).EffectiveID(); id != "dad" {
		t.Errorf("EffectiveID = %q", id)
	}
}

func TestCountCrossings(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b"} {
		_ = g.AddNode(Node{ID: id, Row: 0})
	}
	for _, id := range []string{"x", "y", "z"} {
		_ = g.AddNode(Node{ID: id, Row: 1})
	}
	_ = g.AddEdge(Edge{From: "a", To: "z"})
	_ = g.AddEdge(Edge{From: "b", To: "x"})
	_ = g.AddEdge(Edge{From: "b", To: "y"})

	tests := []struct {
		name  string
		upper []string
		lower []string
		want  int
	}{
		{"worst", []string{"a", "b"}, []string{"x", "y", "z"}, 2},
		{"best", []string{"b", "a"}, []string{"x", "y", "z"}, 0},
		{"one", []string{"a", "b"}, []string{"x", "z", "y"}, 1},
		{"empty", nil, []string{"x"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountCrossings(g, map[int][]string{0: tt.upper, 1: tt.lower})
			if got != tt.want {
				t.Errorf("CountCrossings() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCountPairCrossingsWithPos(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b"} {
		_ = g.AddNode(Node{ID: id, Row: 0})
	}
	for _, id := range []string{"x", "y"} {
		_ = g.AddNode(Node{ID: id, Row: 1})
	}
	_ = g.AddEdge(Edge{From: "a", To: "y"})
	_ = g.AddEdge(Edge{From: "b", To: "x"})

	pos := PosMap([]string{"x", "y"})
	if got := CountPairCrossingsWithPos(g, "a", "b", pos, false); got != 1 {
		t.Errorf("a,b = %d, want 1", got)
	}
	if got := CountPairCrossingsWithPos(g, "b", "a", pos, false); got != 0 {
		t.Errorf("b,a = %d, want 0", got)
	}
	upper := PosMap([]string{"a", "b"})
	if got := CountPairCrossingsWithPos(g, "x", "y", upper, true); got != 1 {
		t.Errorf("x,y via parents = %d, want 1", got)
	}
}
