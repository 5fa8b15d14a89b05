// Package ordering arranges the nodes of each row to reduce edge crossings.
package ordering

import (
	"cmp"
	"maps"
	"slices"

	"github.com/matzehuels/familytower/pkg/dag"
)

// Orderer determines the left-to-right sequence of nodes in each row.
type Orderer interface {
	OrderRows(g *dag.DAG) map[int][]string
}

// DefaultPasses is the number of sweeps Barycentric runs when Passes is 0.
const DefaultPasses = 24

// Barycentric is the classic layer-by-layer sweep heuristic. Each pass sorts
// one row by the mean position of its neighbours in the adjacent row,
// alternating downward (parents) and upward (children) sweeps, followed by a
// transpose step that swaps adjacent nodes while that lowers crossings. The
// ordering with the fewest crossings seen is returned.
//
// The result depends only on the graph's insertion order, never on map
// iteration, so identical input yields identical rows.
type Barycentric struct {
	Passes int
}

// OrderRows implements Orderer.
func (b Barycentric) OrderRows(g *dag.DAG) map[int][]string {
	orders := make(map[int][]string)
	for _, r := range g.RowIDs() {
		orders[r] = dag.NodeIDs(g.NodesInRow(r))
	}
	rows := slices.Sorted(maps.Keys(orders))
	if len(rows) < 2 {
		return orders
	}

	passes := b.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}

	best := cloneOrders(orders)
	bestCrossings := dag.CountCrossings(g, orders)
	for pass := 0; pass < passes && bestCrossings > 0; pass++ {
		if pass%2 == 0 {
			for _, r := range rows[1:] {
				sortByBarycenter(orders[r], orders[r-1], g.Parents)
			}
		} else {
			for i := len(rows) - 2; i >= 0; i-- {
				r := rows[i]
				sortByBarycenter(orders[r], orders[r+1], g.Children)
			}
		}
		transpose(g, orders, rows)

		if c := dag.CountCrossings(g, orders); c < bestCrossings {
			bestCrossings = c
			best = cloneOrders(orders)
		}
	}
	return best
}

// sortByBarycenter reorders row in place by the mean index of each node's
// neighbours in adj. Nodes without neighbours in adj keep their own index as
// weight, so they stay roughly where they were.
func sortByBarycenter(row, adj []string, neighbours func(string) []string) {
	if len(row) < 2 {
		return
	}
	adjPos := dag.PosMap(adj)
	weight := make(map[string]float64, len(row))
	for i, id := range row {
		sum, n := 0, 0
		for _, nb := range neighbours(id) {
			if p, ok := adjPos[nb]; ok {
				sum += p
				n++
			}
		}
		if n == 0 {
			weight[id] = float64(i)
		} else {
			weight[id] = float64(sum) / float64(n)
		}
	}
	slices.SortStableFunc(row, func(a, b string) int {
		return cmp.Compare(weight[a], weight[b])
	})
}

// transpose swaps adjacent pairs while doing so strictly lowers the crossings
// against both neighbouring rows.
func transpose(g *dag.DAG, orders map[int][]string, rows []int) {
	for range len(rows) * 4 {
		improved := false
		for _, r := range rows {
			row := orders[r]
			above := dag.PosMap(orders[r-1])
			below := dag.PosMap(orders[r+1])
			for i := 0; i+1 < len(row); i++ {
				a, b := row[i], row[i+1]
				keep := dag.CountPairCrossingsWithPos(g, a, b, above, true) +
					dag.CountPairCrossingsWithPos(g, a, b, below, false)
				swap := dag.CountPairCrossingsWithPos(g, b, a, above, true) +
					dag.CountPairCrossingsWithPos(g, b, a, below, false)
				if swap < keep {
					row[i], row[i+1] = b, a
					improved = true
				}
			}
		}
		if !improved {
			return
		}
	}
}

func cloneOrders(orders map[int][]string) map[int][]string {
	out := make(map[int][]string, len(orders))
	for r, ids := range orders {
		out[r] = slices.Clone(ids)
	}
	return out
}
