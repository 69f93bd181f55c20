// Package source reads COBOL source units and discovers them on disk.
//
// A unit is one program file. [ReadFile] splits it into raw [Line] values
// without decoding them: decoding is the normalizer's job, so that an
// invalid byte sequence is reported against the line it occurs on.
//
// [Discover] walks a source directory and returns the files matching the
// configured include globs (doublestar syntax, e.g. "**/*.cbl"), skipping
// anything matched by the ignore file (gitignore syntax, default
// ".cblignore") found at the root.
package source
