// Package fgraph defines the factor-graph data model consumed by the bp
// package: variables, factors, edges and lookup tables over a finite domain
// of cardinality Nc.
//
// A FactorGraph is built once (by fgbuilder, or by any other caller willing
// to populate the exported struct fields directly) and is read-only from
// that point on — bp.BPState never mutates the graphs it is given, only the
// distributions layered on top of it. There is deliberately no mutex here:
// unlike a general-purpose mutable graph, a FactorGraph has no concurrent
// writers to guard against once construction is finished.
//
//	vars/     — unknowns over {0, ..., Nc-1}, either shared across traces
//	            (single) or per-trace (multi/PARA).
//	factors/  — arithmetic or bitwise constraints over a scope of variables:
//	            AND, XOR, NOT, ADD, MUL, LOOKUP.
//	edges/    — the var-factor incidence; each Var and each Factor holds an
//	            ordered list of edges, and edge index 0 of a has-result
//	            factor is always its result variable.
//
// Building and parsing a textual factor-graph description is out of scope
// for this package (and for this module): FactorGraph is the boundary that a
// compiler, a test helper (fgbuilder), or a hand-written literal can all
// produce.
package fgraph
