// Package dist implements Distribution, the probability-vector container
// belief propagation passes along every edge of a factor graph: either a
// single vector of length Nc shared across traces, or a stack of Nmulti
// independent vectors ("multi"/PARA).
//
// A Distribution that has never been constrained carries no backing array
// at all (IsFull() == false) — the "uniform" sentinel from spec.md's data
// model. Kernels must check IsFull before transforming and must produce
// uniform outputs without allocating whenever the inputs permit it; this is
// the single biggest allocation saver in the whole engine; see EnsureFull.
//
// Every operation here preserves the multi flag, and single×multi
// interactions broadcast the single row across every trace.
package dist
