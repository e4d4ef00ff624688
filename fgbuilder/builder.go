package fgbuilder

import (
	"fmt"

	"github.com/katalvlaran/scalib-bp/fgraph"
)

// Option configures a Builder at construction time, same shape as the
// teacher's BuilderOption/GraphOption functional-options types.
type Option func(*config)

type config struct {
	namePrefix string
}

// WithNamePrefix stores a name prefix in the Builder's configuration. No
// Builder method reads it: every name comes from the explicit argument to
// AddVar/AddXor/etc., unchanged.
func WithNamePrefix(prefix string) Option {
	return func(c *config) { c.namePrefix = prefix }
}

func newConfig(opts ...Option) config {
	var c config
	for _, o := range opts {
		o(&c)
	}
	return c
}

// Builder accumulates Var and Factor declarations and produces a
// *fgraph.FactorGraph via Build(). IDs are assigned in call order, so the
// same sequence of calls always yields an identical graph.
type Builder struct {
	nc      int
	cfg     config
	vars    []fgraph.Var
	factors []fgraph.Factor
	edges   []fgraph.Edge
	tables  []fgraph.Table
	varSeen map[string]bool
	facSeen map[string]bool
	err     error
}

// New starts a Builder for a graph over the domain {0, ..., nc-1}.
func New(nc int, opts ...Option) *Builder {
	return &Builder{
		nc:      nc,
		cfg:     newConfig(opts...),
		varSeen: make(map[string]bool),
		facSeen: make(map[string]bool),
	}
}

// AddVar declares a new variable and returns its id. multi marks a
// per-trace (PARA) variable.
func (b *Builder) AddVar(name string, multi bool) (fgraph.VarID, error) {
	if b.err != nil {
		return 0, b.err
	}
	if b.varSeen[name] {
		b.err = fmt.Errorf("%w: %q", ErrDuplicateVar, name)
		return 0, b.err
	}
	b.varSeen[name] = true
	id := fgraph.VarID(len(b.vars))
	b.vars = append(b.vars, fgraph.Var{Name: name, Multi: multi})
	return id, nil
}

// AddTable registers a lookup table and returns its index for use with
// AddLookup.
func (b *Builder) AddTable(name string, values []fgraph.ClassVal) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	if len(values) != b.nc {
		b.err = fmt.Errorf("%w: table %q has %d entries, want %d", ErrBadTableSize, name, len(values), b.nc)
		return 0, b.err
	}
	idx := len(b.tables)
	cp := make([]fgraph.ClassVal, len(values))
	copy(cp, values)
	b.tables = append(b.tables, fgraph.Table{Name: name, Values: cp})
	return idx, nil
}

func (b *Builder) validVar(v fgraph.VarID) bool {
	return int(v) >= 0 && int(v) < len(b.vars)
}

// addFactor wires result (if hasRes) as edge 0 followed by operands, in
// order, recording the var<->factor incidence on both sides.
func (b *Builder) addFactor(name string, kind fgraph.FactorKind, hasRes bool, result fgraph.VarID, operands []fgraph.VarID, varsNeg []bool, table int) (fgraph.FactorID, error) {
	if b.err != nil {
		return 0, b.err
	}
	if b.facSeen[name] {
		b.err = fmt.Errorf("%w: %q", ErrDuplicateFactor, name)
		return 0, b.err
	}
	if len(operands) == 0 {
		b.err = fmt.Errorf("%w: %q", ErrEmptyScope, name)
		return 0, b.err
	}
	scope := operands
	if hasRes {
		scope = append([]fgraph.VarID{result}, operands...)
	}
	if varsNeg != nil && len(varsNeg) != len(scope) {
		b.err = fmt.Errorf("%w: factor %q has %d edges, %d negation flags", ErrBadNegLength, name, len(scope), len(varsNeg))
		return 0, b.err
	}
	for _, v := range scope {
		if !b.validVar(v) {
			b.err = fmt.Errorf("%w: factor %q references var id %d", ErrUnknownVar, name, v)
			return 0, b.err
		}
	}
	multi := b.vars[scope[0]].Multi
	for _, v := range scope[1:] {
		if b.vars[v].Multi != multi {
			b.err = fmt.Errorf("%w: factor %q", ErrMixedMulti, name)
			return 0, b.err
		}
	}

	fid := fgraph.FactorID(len(b.factors))
	fac := fgraph.Factor{
		Name:    name,
		Kind:    kind,
		HasRes:  hasRes,
		Multi:   multi,
		VarsNeg: varsNeg,
		Table:   table,
	}
	for _, v := range scope {
		eid := fgraph.EdgeID(len(b.edges))
		b.edges = append(b.edges, fgraph.Edge{Var: v, Factor: fid})
		fac.Edges = append(fac.Edges, fgraph.FactorEdgeRef{Var: v, Edge: eid})
		b.vars[v].Edges = append(b.vars[v].Edges, fgraph.VarEdgeRef{Factor: fid, Edge: eid})
	}
	b.facSeen[name] = true
	b.factors = append(b.factors, fac)
	return fid, nil
}

// AddXor declares result = operands[0] ^ operands[1] ^ ... ^ pub.
func (b *Builder) AddXor(name string, result fgraph.VarID, operands []fgraph.VarID, pub fgraph.PublicValue) (fgraph.FactorID, error) {
	fid, err := b.addFactor(name, fgraph.KindXOR, true, result, operands, nil, 0)
	if err == nil {
		b.factors[fid].Public = pub
	}
	return fid, err
}

// AddNot declares result = ^operand (operand XOR (nc-1)).
func (b *Builder) AddNot(name string, result, operand fgraph.VarID) (fgraph.FactorID, error) {
	return b.addFactor(name, fgraph.KindNOT, true, result, []fgraph.VarID{operand}, nil, 0)
}

// AddAnd declares result = operands[0] & operands[1] & ... & pub, with each
// operand (and the result, at index 0) optionally complemented per negate.
// negate may be nil (no negation) or must have length len(operands)+1.
func (b *Builder) AddAnd(name string, result fgraph.VarID, operands []fgraph.VarID, negate []bool, pub fgraph.PublicValue) (fgraph.FactorID, error) {
	fid, err := b.addFactor(name, fgraph.KindAND, true, result, operands, negate, 0)
	if err == nil {
		b.factors[fid].Public = pub
	}
	return fid, err
}

// AddAdd declares result = operands[0] + operands[1] + ... + pub (mod nc).
func (b *Builder) AddAdd(name string, result fgraph.VarID, operands []fgraph.VarID, pub fgraph.PublicValue) (fgraph.FactorID, error) {
	fid, err := b.addFactor(name, fgraph.KindADD, true, result, operands, nil, 0)
	if err == nil {
		b.factors[fid].Public = pub
	}
	return fid, err
}

// AddMul declares result = operands[0] * operands[1] * ... * pub (mod nc).
func (b *Builder) AddMul(name string, result fgraph.VarID, operands []fgraph.VarID, pub fgraph.PublicValue) (fgraph.FactorID, error) {
	fid, err := b.addFactor(name, fgraph.KindMUL, true, result, operands, nil, 0)
	if err == nil {
		b.factors[fid].Public = pub
	}
	return fid, err
}

// AddLookup declares result = table[operand] for the table registered
// under tableIdx (see AddTable).
func (b *Builder) AddLookup(name string, result, operand fgraph.VarID, tableIdx int) (fgraph.FactorID, error) {
	if b.err == nil && (tableIdx < 0 || tableIdx >= len(b.tables)) {
		b.err = fmt.Errorf("fgbuilder: AddLookup %q references unknown table %d", name, tableIdx)
		return 0, b.err
	}
	return b.addFactor(name, fgraph.KindLOOKUP, true, result, []fgraph.VarID{operand}, nil, tableIdx)
}

// Build finalizes the graph. It returns the first error recorded by any
// prior Add* call, if any.
func (b *Builder) Build() (*fgraph.FactorGraph, error) {
	if b.err != nil {
		return nil, b.err
	}
	return fgraph.New(b.nc, b.vars, b.factors, b.edges, b.tables), nil
}
