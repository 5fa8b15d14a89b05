package layout

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/matzehuels/familytower/pkg/family"
	"github.com/matzehuels/familytower/pkg/graph"
)

func sequence() family.IDFunc {
	n := 0
	return func() string { n++; return fmt.Sprintf("m%d", n) }
}

// parents returns m1 (1990) with father m2 and mother m3.
func parents(t *testing.T) (*family.Mutator, *family.Registry) {
	t.Helper()
	m := family.NewMutator(nil, sequence())
	reg, root, _, err := m.AddRoot(family.NewRegistry(), family.Draft{Surname: "Doe", BirthYear: "1990"})
	if err != nil {
		t.Fatal(err)
	}
	reg, dad, err := m.Add(reg, family.Draft{FirstName: "John", BirthYear: "1960", Gender: family.Male}, family.RelationParent, root.ID)
	if err != nil {
		t.Fatal(err)
	}
	reg, _, err = m.Add(reg, family.Draft{FirstName: "Mary", BirthYear: "1962"}, family.RelationSpouse, dad.ID)
	if err != nil {
		t.Fatal(err)
	}
	return m, reg
}

func positions(nodes []Positioned) map[string]Point {
	out := make(map[string]Point, len(nodes))
	for _, n := range nodes {
		out[n.ID] = n.Position
	}
	return out
}

func TestLayeredSingleNode(t *testing.T) {
	reg, _ := family.FromMembers([]family.Member{{ID: "a"}})
	e := New(Options{})
	got := e.Layout(graph.Build(reg, "a", ""), nil, nil)
	if len(got) != 1 || got[0].Position != (Point{X: 50, Y: 50}) {
		t.Errorf("Layout = %+v, want a at (50,50)", got)
	}
}

func TestLayeredParentsAboveChild(t *testing.T) {
	_, reg := parents(t)
	e := New(Options{})
	got := positions(e.Layout(graph.Build(reg, "m1", ""), nil, nil))

	want := map[string]Point{
		"m2": {X: 50, Y: 50},
		"m3": {X: 350, Y: 50},
		"m1": {X: 200, Y: 270},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("positions = %v, want %v", got, want)
	}
}

func TestLayeredSlots(t *testing.T) {
	_, reg := parents(t)
	slots := New(Options{}).Layered(graph.Build(reg, "m1", ""))
	if slots["m2"].Rank != 0 || slots["m3"].Rank != 0 || slots["m1"].Rank != 1 {
		t.Errorf("ranks = %v", slots)
	}
	if slots["m2"].Col+1 != slots["m3"].Col {
		t.Errorf("spouses not adjacent: %v", slots)
	}
}

func TestLayeredSkipsWaypoints(t *testing.T) {
	// grandparent linked straight to a grandchild spans two rows
	reg, err := family.FromMembers([]family.Member{
		{ID: "g", Children: []string{"p", "k"}},
		{ID: "p", Parents: []string{"g"}, Children: []string{"k"}},
		{ID: "k", Parents: []string{"g", "p"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	slots := New(Options{}).Layered(graph.Build(reg, "k", ""))
	if len(slots) != 3 {
		t.Fatalf("slots = %v, want only member nodes", slots)
	}
	if slots["g"].Rank != 0 || slots["p"].Rank != 1 || slots["k"].Rank != 2 {
		t.Errorf("ranks = %v", slots)
	}
}

func TestSpouseGroupsShareRow(t *testing.T) {
	// in-law whose own parent is known must still sit beside the partner
	reg, err := family.FromMembers([]family.Member{
		{ID: "a", Children: []string{"b"}},
		{ID: "b", Parents: []string{"a"}, Children: []string{"c"}, Spouses: []string{"x"}},
		{ID: "c", Parents: []string{"b", "x"}},
		{ID: "x", Spouses: []string{"b"}, Children: []string{"c"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	slots := New(Options{}).Layered(graph.Build(reg, "c", ""))
	if slots["b"].Rank != slots["x"].Rank {
		t.Errorf("spouses on rows %d and %d", slots["b"].Rank, slots["x"].Rank)
	}
	if d := slots["b"].Col - slots["x"].Col; d != 1 && d != -1 {
		t.Errorf("spouses not adjacent: %v", slots)
	}
}

func TestLayoutIsDeterministic(t *testing.T) {
	_, reg := parents(t)
	g := graph.Build(reg, "m1", "")
	e := New(Options{})
	first := e.Layout(g, nil, nil)
	for range 5 {
		if got := e.Layout(g, nil, nil); !reflect.DeepEqual(got, first) {
			t.Fatalf("layout changed between runs:\n%v\n%v", first, got)
		}
	}
}

func TestLayoutIsIdempotent(t *testing.T) {
	_, reg := parents(t)
	g := graph.Build(reg, "m1", "")
	e := New(Options{})
	first := e.Layout(g, nil, nil)
	again := e.Layout(g, first, nil)
	if !reflect.DeepEqual(positions(first), positions(again)) {
		t.Errorf("relayout moved nodes: %v -> %v", positions(first), positions(again))
	}
}

func TestStickyPositions(t *testing.T) {
	_, reg := parents(t)
	g := graph.Build(reg, "m1", "")
	prev := []Positioned{
		{Node: graph.Node{ID: "m1"}, Position: Point{X: -400, Y: 999}},
		{Node: graph.Node{ID: "m2"}, Position: Point{X: 7, Y: 8}},
	}
	got := positions(New(Options{}).Layout(g, prev, nil))
	if got["m1"] != (Point{X: -400, Y: 999}) || got["m2"] != (Point{X: 7, Y: 8}) {
		t.Errorf("previous positions not kept: %v", got)
	}
	// m3 is new and unplaced: layered coordinate
	if got["m3"] != (Point{X: 350, Y: 50}) {
		t.Errorf("m3 = %v, want layered (350,50)", got["m3"])
	}
}

func TestPlacement(t *testing.T) {
	m, reg := parents(t)
	e := New(Options{})
	prev := e.Layout(graph.Build(reg, "m1", ""), nil, nil)
	// m1 (200,270), m2 (50,50), m3 (350,50)

	tests := []struct {
		name    string
		rel     family.Relation
		related string
		want    Point
	}{
		{"parent above", family.RelationParent, "m1", Point{X: 200, Y: 50}},
		{"spouse right and lifted", family.RelationSpouse, "m1", Point{X: 500, Y: 240}},
		{"child past placed siblings", family.RelationChild, "m2", Point{X: 350, Y: 270}},
		{"child of childless member", family.RelationChild, "m1", Point{X: 200, Y: 490}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := family.Draft{FirstName: "New", BirthYear: "1940"}
			if tt.rel == family.RelationChild {
				d.BirthYear = "2015"
			}
			if tt.rel == family.RelationSpouse {
				d.BirthYear = "1991"
			}
			next, added, err := m.Add(reg, d, tt.rel, tt.related)
			if err != nil {
				t.Fatal(err)
			}
			got := positions(e.Layout(graph.Build(next, "m1", ""), prev, &Placement{RelatedID: tt.related, Relation: tt.rel}))
			if got[added.ID] != tt.want {
				t.Errorf("%s at %v, want %v", added.ID, got[added.ID], tt.want)
			}
			for id, p := range positions(prev) {
				if got[id] != p {
					t.Errorf("%s moved from %v to %v", id, p, got[id])
				}
			}
		})
	}
}

func TestPlacementUnknownRelatedFallsBack(t *testing.T) {
	_, reg := parents(t)
	g := graph.Build(reg, "m1", "")
	e := New(Options{})
	want := e.Layout(g, nil, nil)
	got := e.Layout(g, nil, &Placement{RelatedID: "m2", Relation: family.RelationSpouse})
	if !reflect.DeepEqual(positions(got), positions(want)) {
		t.Errorf("placement without previous position changed layout: %v", positions(got))
	}
}

func TestCustomOptions(t *testing.T) {
	_, reg := parents(t)
	e := New(Options{NodeWidth: 100, NodeHeight: 50, RankSep: 50, NodeSep: 20})
	got := positions(e.Layout(graph.Build(reg, "m1", ""), nil, nil))
	if got["m3"] != (Point{X: 170, Y: 50}) || got["m1"] != (Point{X: 110, Y: 150}) {
		t.Errorf("positions = %v", got)
	}
}

func TestFindAndBounds(t *testing.T) {
	_, reg := parents(t)
	e := New(Options{})
	nodes := e.Layout(graph.Build(reg, "m1", ""), nil, nil)

	c, ok := e.Find(nodes, "m1")
	if !ok || c != (Point{X: 300, Y: 320}) {
		t.Errorf("Find(m1) = %v, %v", c, ok)
	}
	if _, ok := e.Find(nodes, "nope"); ok {
		t.Error("Find(nope) should fail")
	}

	lo, hi := e.Bounds(nodes)
	if lo != (Point{X: 50, Y: 50}) || hi != (Point{X: 550, Y: 370}) {
		t.Errorf("Bounds = %v, %v", lo, hi)
	}
}

func TestPullSpousesTogether(t *testing.T) {
	spouses := map[string][]string{"a": {"c"}, "c": {"a"}}
	got := pullSpousesTogether([]string{"a", "b", "c", "d"}, spouses)
	if want := []string{"a", "c", "b", "d"}; !reflect.DeepEqual(got, want) {
		t.Errorf("pullSpousesTogether = %v, want %v", got, want)
	}
}
