// Package normalize converts raw fixed-format source lines into canonical
// records.
//
// # Column contract
//
// Columns are 1-based and counted in runes after decoding. With the default
// [config.Normalize] the layout is the IBM reference format:
//
//	cols 1-6   sequence area (ignored)
//	col  7     indicator ('*' or '/' marks a comment)
//	cols 8-72  code window (areas A and B)
//	cols 73-80 identification area (ignored)
//
// A line is dropped when its indicator marks a comment, when it starts with
// an ignored prefix, or when its code window is blank. Every surviving line
// becomes a [Record] numbered from SeqStart. Lines shorter than the window
// are padded with spaces so that every Code has exactly CodeWidth runes.
//
// # Canonical format
//
// [Write] emits one record per line as
//
//	<seq zero-padded to SeqWidth><indicator><code window>
//
// which is the layout described by [config.Normalize.Canonical]. Normalizing
// a canonical file under that layout reproduces the same records.
package normalize
