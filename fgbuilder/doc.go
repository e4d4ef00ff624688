// Package fgbuilder assembles fgraph.FactorGraph values incrementally and
// deterministically: add variables by name, add factors over named scopes,
// then Build() to get the finished, name-indexed graph.
//
// A Builder mirrors the shape of a textual factor-graph description without
// parsing one: every Add* call corresponds to one line such a description
// would contain, and a malformed call returns an error, not a panic. Those
// errors wrap a sentinel from this package, except AddLookup's
// unknown-table error, which wraps none.
package fgbuilder
