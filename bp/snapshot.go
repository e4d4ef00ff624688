package bp

import "github.com/katalvlaran/scalib-bp/dist"

// Snapshot is a point-in-time copy of every mutable slot of a BPState
// (evidence, posterior estimates, and both message directions on every
// edge), letting a caller try a schedule and roll back without rebuilding
// the state from scratch. This supplements spec.md's described operations
// (not named there) for the common "explore several propagation orders
// against the same evidence" workflow.
type Snapshot struct {
	evidence      []dist.Distribution
	varState      []dist.Distribution
	beliefFromVar []dist.Distribution
	beliefToVar   []dist.Distribution
}

// Snapshot deep-copies every mutable slot of s.
func (s *BPState) Snapshot() Snapshot {
	return Snapshot{
		evidence:      cloneAll(s.evidence),
		varState:      cloneAll(s.varState),
		beliefFromVar: cloneAll(s.beliefFromVar),
		beliefToVar:   cloneAll(s.beliefToVar),
	}
}

// Restore overwrites s's mutable slots with a deep copy of snap, leaving
// snap itself reusable for further restores.
func (s *BPState) Restore(snap Snapshot) {
	s.evidence = cloneAll(snap.evidence)
	s.varState = cloneAll(snap.varState)
	s.beliefFromVar = cloneAll(snap.beliefFromVar)
	s.beliefToVar = cloneAll(snap.beliefToVar)
}

func cloneAll(ds []dist.Distribution) []dist.Distribution {
	out := make([]dist.Distribution, len(ds))
	for i, d := range ds {
		out[i] = d.Clone()
	}
	return out
}
