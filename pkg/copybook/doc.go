// Package copybook expands COPY statements in raw source lines before
// normalization.
//
// A COPY statement is recognized when it is the only statement in the code
// window of a non-comment line:
//
//	COPY PAYREC.
//	COPY 'PAYREC' OF SHARED.
//
// The member is looked up in each configured directory in turn, trying every
// configured extension after the name ("" is the bare name). It replaces the
// statement line, wrapped in two comment sentinels:
//
//	      *COPYBOOK PAYREC
//	      ...member lines...
//	      *END COPYBOOK PAYREC
//
// Members are expanded recursively. A member that cannot be found, or one
// that is already being expanded further up the chain, leaves its COPY
// statement in place and is reported in [Expansion.Unresolved]; neither
// fails the unit.
//
// Every line produced by a member carries the line number of the outermost
// COPY statement it came from, so diagnostics on expanded code point at a
// line of the unit itself.
package copybook
