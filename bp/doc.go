// Package bp implements the sum-product belief-propagation core: BPState,
// the six factor message kernels (XOR, NOT, AND, ADD, MUL, LOOKUP), the
// variable update, and the acyclic/loopy schedulers, over a fgraph.FactorGraph
// and dist.Distribution.
//
// BPState is not safe for concurrent mutation — no internal mutex, unlike
// core.Graph's sync.RWMutex in the teacher repo. The graph it references is
// shared-immutable and may back many BPStates at once; parallelism within
// one BPState is expressed through Nmulti rows inside a single call, never
// through concurrent calls on the same state.
package bp
