package fgraph

// dsu is an iterative disjoint-set (union-find) structure with path
// compression and union by rank, indexed over the bipartite node space
// {0, ..., NVars-1} ∪ {NVars, ..., NVars+NFactors-1}.
type dsu struct {
	parent []int
	rank   []int
}

func newDSU(n int) *dsu {
	d := &dsu{parent: make([]int, n), rank: make([]int, n)}
	for i := range d.parent {
		d.parent[i] = i
	}
	return d
}

func (d *dsu) find(x int) int {
	for d.parent[x] != x {
		d.parent[x] = d.parent[d.parent[x]]
		x = d.parent[x]
	}
	return x
}

// union reports whether x and y were already in the same component (i.e.
// merging them closes a cycle).
func (d *dsu) union(x, y int) bool {
	rx, ry := d.find(x), d.find(y)
	if rx == ry {
		return true
	}
	if d.rank[rx] < d.rank[ry] {
		rx, ry = ry, rx
	}
	d.parent[ry] = rx
	if d.rank[rx] == d.rank[ry] {
		d.rank[rx]++
	}
	return false
}

// IsCyclic reports whether the graph's undirected bipartite var/factor
// skeleton contains a cycle. When multiTraces is true (the BP state is
// tracking more than one trace, nmulti > 1), any variable that is not
// itself per-trace (Var.Multi == false) couples every trace together
// through its single belief, which this method also treats as inducing a
// cycle — acyclic propagation requires both an acyclic skeleton and, under
// multiple traces, no single ("shared") variable acting as a hidden join.
func (g *FactorGraph) IsCyclic(multiTraces bool) bool {
	if multiTraces {
		for i := range g.Vars {
			if !g.Vars[i].Multi {
				return true
			}
		}
	}

	nVars := len(g.Vars)
	d := newDSU(nVars + len(g.Factors))
	for _, e := range g.Edges {
		if d.union(int(e.Var), nVars+int(e.Factor)) {
			return true
		}
	}
	return false
}
