package fgraph

import "fmt"

// NodeKind distinguishes the two node classes of the bipartite var/factor
// graph, as they appear in a PropagationOrder step.
type NodeKind int

const (
	NodeVar NodeKind = iota
	NodeFactor
)

// ScheduleStep is one node of the propagation order produced by
// PropagationOrder: the node itself (Kind + Var or Fac) and the edge
// leading toward the destination variable (ToEdge), i.e. the only edge
// that node must still send a message across
// once every other one of its edges has already received a message.
type ScheduleStep struct {
	Kind NodeKind
	Var  VarID    // valid when Kind == NodeVar
	Fac  FactorID // valid when Kind == NodeFactor

	// IsRoot is true for the final step, the destination variable itself,
	// which has no outgoing edge left to propagate across.
	IsRoot bool
	// ToEdge is the edge this node must propagate across, directed toward
	// dest. Unused when IsRoot.
	ToEdge EdgeID
}

// PropagationOrder computes the leaf-to-root traversal order for exact
// (acyclic) belief propagation toward dest: every node of the bipartite
// skeleton reachable from dest visited once (nodes in other connected
// components are not included), ordered so a node's message toward dest is only
// ready once all of its other incident edges have already been consumed.
//
// Steps:
//  1. Run a DFS from dest over the undirected var/factor skeleton,
//     recording each node's parent edge.
//  2. Reverse the DFS visit order: leaves first, dest (the root) last.
//  3. For each non-root node, its ToEdge is the edge toward its DFS
//     parent; the root gets IsRoot = true and no ToEdge.
//
// PropagationOrder assumes the graph is acyclic for the relevant nmulti
// setting — see FactorGraph.IsCyclic. On a cyclic graph the walk still
// visits each reachable node once, following a spanning tree, and edges
// outside that tree get no step, so the order does not give exact
// messages; bp.BPState checks IsCyclic before calling this.
func (g *FactorGraph) PropagationOrder(dest VarID) []ScheduleStep {
	nVars := len(g.Vars)
	total := nVars + len(g.Factors)

	visited := make([]bool, total)
	order := make([]int, 0, total)
	parentEdge := make([]EdgeID, total)
	hasParent := make([]bool, total)

	type frame struct {
		node int
	}
	stack := []frame{{node: int(dest)}}
	visited[int(dest)] = true

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, top.node)

		if top.node < nVars {
			v := &g.Vars[top.node]
			for _, r := range v.Edges {
				fNode := nVars + int(r.Factor)
				if !visited[fNode] {
					visited[fNode] = true
					parentEdge[fNode] = r.Edge
					hasParent[fNode] = true
					stack = append(stack, frame{node: fNode})
				}
			}
		} else {
			f := &g.Factors[top.node-nVars]
			for _, r := range f.Edges {
				vNode := int(r.Var)
				if !visited[vNode] {
					visited[vNode] = true
					parentEdge[vNode] = r.Edge
					hasParent[vNode] = true
					stack = append(stack, frame{node: vNode})
				}
			}
		}
	}

	steps := make([]ScheduleStep, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		node := order[i]
		step := ScheduleStep{}
		if node < nVars {
			step.Kind = NodeVar
			step.Var = VarID(node)
		} else {
			step.Kind = NodeFactor
			step.Fac = FactorID(node - nVars)
		}
		if node == int(dest) {
			step.IsRoot = true
		} else {
			if !hasParent[node] {
				panic(fmt.Sprintf("fgraph: PropagationOrder: node %d unreachable from dest %d (graph is cyclic or disconnected)", node, dest))
			}
			step.ToEdge = parentEdge[node]
		}
		steps = append(steps, step)
	}
	return steps
}
