// Package abstract derives semantic views from concrete data types.
//
// Views are computed on demand and never own the concrete nodes; each keeps
// a reference to the node it came from, and Concrete returns exactly that
// node, so projecting a view back re-encodes identically to the origin.
//
// Values that cannot be known before elaboration (an unresolved parameter
// in a packed dimension, x/z digits, division by zero) come back as
// Indeterminate rather than as errors:
//
//	v := abstract.NewIntegral(it) // logic [WIDTH-1:0]
//	v.Width()                     // Indeterminate
//	v.Signed()                    // false
//	v.MaximumValue()              // Indeterminate
//
// Cache memoises views per tree root for callers that query the same tree
// repeatedly.
package abstract
