package bp

import (
	"github.com/katalvlaran/scalib-bp/dist"
	"github.com/katalvlaran/scalib-bp/fgraph"
)

// nonZeroFloor is the magnitude every WHT-domain entry is clamped to (away
// from zero, preserving sign) before a product, per spec.md §9's numerical
// stability note: a transformed zero carries no information about how it
// was approached and must not be allowed to silently collapse a product.
const nonZeroFloor = 1e-12

// propagateFactor is the single entry point every kernel goes through:
// reset the destination slots to uniform, dispatch by kind, then (if
// requested) clear every non-destination incoming message — the factor
// side's mirror of propagateVarTo's clearBeliefs.
func (s *BPState) propagateFactor(f fgraph.FactorID, dest []int, clearIncoming bool) {
	fac := &s.graph.Factors[f]
	for _, d := range dest {
		e := fac.Edges[d].Edge
		s.beliefToVar[e] = s.beliefToVar[e].AsUniform()
	}

	switch fac.Kind {
	case fgraph.KindXOR, fgraph.KindNOT:
		s.factorXor(f, dest)
	case fgraph.KindADD:
		s.factorAdd(f, dest)
	case fgraph.KindAND:
		s.factorGenAnd(f, dest)
	case fgraph.KindMUL:
		s.factorMul(f, dest)
	case fgraph.KindLOOKUP:
		s.factorLookup(f, dest)
	}

	if clearIncoming {
		destSet := make(map[int]bool, len(dest))
		for _, d := range dest {
			destSet[d] = true
		}
		for i, r := range fac.Edges {
			if !destSet[i] {
				s.beliefFromVar[r.Edge] = s.beliefFromVar[r.Edge].AsUniform()
			}
		}
	}
}

func (s *BPState) nmultiFor(fac *fgraph.Factor) int {
	if fac.Multi {
		return s.nmulti
	}
	return 1
}

// constDistribution builds the Dirac-like distribution for a factor's
// public value (NOT folds in nc-1 rather than consulting pubReduced, since
// NOT's public value is definitionally the complement constant).
func (s *BPState) constDistribution(fac *fgraph.Factor, f fgraph.FactorID) dist.Distribution {
	nc := s.graph.Nc
	if fac.Kind == fgraph.KindNOT {
		c := nc - 1
		return dist.NewConstant(fac.Multi, nc, s.nmultiFor(fac), func(int) int { return c })
	}
	pub := s.pubReduced[f]
	return dist.NewConstant(fac.Multi, nc, s.nmultiFor(fac), func(r int) int { return int(pub.At(r)) })
}

func multiplyExcluding(base dist.Distribution, all []dist.Distribution, skip int) dist.Distribution {
	ops := make([]dist.Distribution, 0, len(all))
	for i, d := range all {
		if i == skip {
			continue
		}
		ops = append(ops, d)
	}
	return dist.Multiply(base, ops...)
}

func negateIf(d dist.Distribution, neg bool) dist.Distribution {
	if neg {
		return d.Not()
	}
	return d
}

// --- XOR / NOT -------------------------------------------------------

// factorXor implements factor_xor (and, since NOT's reduced public value is
// just XOR with nc-1, factor_not as the same code path). Uniform incoming
// operands need no special-case bookkeeping: EnsureFull materializes a
// uniform row to the real (1/nc,...,1/nc) array, whose WHT is exactly a
// scaled delta at frequency 0 — a genuine multiplicative annihilator of
// every other frequency once multiplied pointwise (up to the nonZeroFloor
// clamp), so "≥1 uniform among the other edges collapses the message to
// uniform" falls out of the ordinary transform-and-multiply path rather than
// needing to be detected up front.
func (s *BPState) factorXor(f fgraph.FactorID, dest []int) {
	fac := &s.graph.Factors[f]
	n := len(fac.Edges)
	pub := s.pubReduced[f]

	if n == 2 && fac.Kind != fgraph.KindNOT && !pub.IsMulti() {
		s.xorTwoEdge(fac, dest, int(pub.Single()))
		return
	}
	if n == 2 && fac.Kind == fgraph.KindNOT {
		s.xorTwoEdge(fac, dest, s.graph.Nc-1)
		return
	}

	constT := s.constDistribution(fac, f)
	constT.WHT()

	transformed := make([]dist.Distribution, n)
	for i, r := range fac.Edges {
		d := s.beliefFromVar[r.Edge].Clone()
		d.WHT()
		d.MakeNonZeroSigned(nonZeroFloor)
		transformed[i] = d
	}

	for _, d := range dest {
		e := fac.Edges[d].Edge
		msg := multiplyExcluding(constT, transformed, d)
		msg.WHT()
		msg.Regularize()
		s.beliefToVar[e] = msg
	}
}

func (s *BPState) xorTwoEdge(fac *fgraph.Factor, dest []int, pub int) {
	for _, d := range dest {
		other := 1 - d
		e := fac.Edges[d].Edge
		msg := s.beliefFromVar[fac.Edges[other].Edge].Clone()
		msg = dist.XorCst(msg, pub)
		msg.Regularize()
		s.beliefToVar[e] = msg
	}
}

// --- ADD ---------------------------------------------------------------

// factorAdd implements factor_add over a real FFT of length Nc. Edge 0 is
// the sum (x0 = Σ operands + pub); solving for the sum needs every operand
// FFT un-conjugated and a +pub phase, while solving for an operand needs
// the sum's own FFT un-conjugated, every OTHER operand conjugated (encoding
// subtraction), and a -pub phase — i.e. conjugate(i, d) holds exactly when
// both i and d are operand edges (index ≥ 1).
func (s *BPState) factorAdd(f fgraph.FactorID, dest []int) {
	fac := &s.graph.Factors[f]
	n := len(fac.Edges)
	pub := s.pubReduced[f]

	if n == 2 && !pub.IsMulti() {
		s.addTwoEdge(fac, dest, int(pub.Single()))
		return
	}

	for _, d := range dest {
		e := fac.Edges[d].Edge
		destIsSum := d == 0
		constT := s.signedConstSpectrum(fac, f, destIsSum)
		acc := constT
		for i, r := range fac.Edges {
			if i == d {
				continue
			}
			neg := i != 0 && d != 0
			spec := s.beliefFromVar[r.Edge].FFTTo(neg)
			acc = acc.Multiply(spec)
		}
		msg := dist.IFFT(acc, fac.Multi, false)
		msg.Regularize()
		s.beliefToVar[e] = msg
	}
}

// signedConstSpectrum builds the FFT of the public constant (or its
// negation mod Nc, when solving for an operand) as the starting point of
// the destination's accumulator.
func (s *BPState) signedConstSpectrum(fac *fgraph.Factor, f fgraph.FactorID, positive bool) dist.FFTSpectrum {
	nc := s.graph.Nc
	pub := s.pubReduced[f]
	classOf := func(r int) int {
		c := int(pub.At(r))
		if !positive {
			c = (nc - c) % nc
		}
		return c
	}
	d := dist.NewConstant(fac.Multi, nc, s.nmultiFor(fac), classOf)
	return d.FFTTo(false)
}

func (s *BPState) addTwoEdge(fac *fgraph.Factor, dest []int, pub int) {
	for _, d := range dest {
		other := 1 - d
		e := fac.Edges[d].Edge
		msg := s.beliefFromVar[fac.Edges[other].Edge].Clone()
		msg = dist.AddCst(msg, pub, d != 0)
		msg.Regularize()
		s.beliefToVar[e] = msg
	}
}

// --- AND -----------------------------------------------------------

// factorGenAnd implements factor_gen_and. Edge 0 (the result) forward-
// transforms with the self-inverse Opandt when it is used as an input
// (i.e. some operand is the destination); every operand edge (index ≥ 1),
// including the folded public constant, forward-transforms with Cumt. The
// destination's own inverse is the opposite of its forward role: Cumti
// when solving for the result (decoding the Cumt-domain product of every
// operand back to class-value space), Opandt when solving for an operand
// (Opandt is self-inverse), matching the original engine's
// `res.cumti()`-for-result / `res.opandt()`-otherwise split.
func (s *BPState) factorGenAnd(f fgraph.FactorID, dest []int) {
	fac := &s.graph.Factors[f]
	n := len(fac.Edges)
	pub := s.pubReduced[f]

	if n == 2 && !pub.IsMulti() {
		s.andTwoEdge(fac, dest, int(pub.Single()))
		return
	}

	constT := s.constDistribution(fac, f)
	constT.Cumt()

	transformed := make([]dist.Distribution, n)
	for i, r := range fac.Edges {
		neg := i < len(fac.VarsNeg) && fac.VarsNeg[i]
		d := negateIf(s.beliefFromVar[r.Edge].Clone(), neg)
		if i == 0 {
			d.Opandt()
		} else {
			d.Cumt()
		}
		transformed[i] = d
	}

	for _, d := range dest {
		e := fac.Edges[d].Edge
		msg := multiplyExcluding(constT, transformed, d)
		if d == 0 {
			msg.Cumti()
		} else {
			msg.Opandt()
		}
		neg := d < len(fac.VarsNeg) && fac.VarsNeg[d]
		msg = negateIf(msg, neg)
		msg.Regularize()
		s.beliefToVar[e] = msg
	}
}

func (s *BPState) andTwoEdge(fac *fgraph.Factor, dest []int, pub int) {
	for _, d := range dest {
		other := 1 - d
		e := fac.Edges[d].Edge
		negOther := other < len(fac.VarsNeg) && fac.VarsNeg[other]
		msg := negateIf(s.beliefFromVar[fac.Edges[other].Edge].Clone(), negOther)
		if d == 0 {
			msg = dist.AndCst(msg, pub)
		} else {
			msg = dist.InvAndCst(msg, pub)
		}
		negDest := d < len(fac.VarsNeg) && fac.VarsNeg[d]
		msg = negateIf(msg, negDest)
		msg.Regularize()
		s.beliefToVar[e] = msg
	}
}

// --- MUL -----------------------------------------------------------

// factorMul implements factor_mul: a direct O(Nc²) sum-product over the
// domain, no fast transform (MUL has none, spec.md §4.3). The public
// constant is folded in as a Dirac operand via op_multiply/op_multiply_factor
// rather than the scalar op_multiply_cst helpers, so a per-trace public
// value (PublicMulti) is handled for free by the same code path as the
// scalar case.
func (s *BPState) factorMul(f fgraph.FactorID, dest []int) {
	fac := &s.graph.Factors[f]
	constT := s.constDistribution(fac, f)

	for _, d := range dest {
		e := fac.Edges[d].Edge
		combine := dist.OpMultiply
		if d != 0 {
			combine = dist.OpMultiplyFactor
		}
		msg := constT
		for i, r := range fac.Edges {
			if i == d {
				continue
			}
			msg = combine(msg, s.beliefFromVar[r.Edge])
		}
		msg.Regularize()
		s.beliefToVar[e] = msg
	}
}

// --- LOOKUP ----------------------------------------------------------

// factorLookup implements factor_lookup: edge 0 is the result y = T[x],
// edge 1 the operand x.
func (s *BPState) factorLookup(f fgraph.FactorID, dest []int) {
	fac := &s.graph.Factors[f]
	table := s.graph.Tables[fac.Table].Values
	tbl := make([]int, len(table))
	for i, v := range table {
		tbl[i] = int(v)
	}

	for _, d := range dest {
		other := 1 - d
		e := fac.Edges[d].Edge
		belief := s.beliefFromVar[fac.Edges[other].Edge]
		var msg dist.Distribution
		if d == 0 {
			msg = dist.MapTable(belief, tbl)
		} else {
			msg = dist.MapTableInv(belief, tbl)
		}
		msg.Regularize()
		s.beliefToVar[e] = msg
	}
}
