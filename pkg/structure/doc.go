// Package structure extracts the paragraph table of a COBOL unit from its
// canonical records.
//
// Records before the division marker (PROCEDURE DIVISION by default) form
// the preamble, which is only scanned for PROGRAM-ID. After the marker
// header every record belongs to exactly one [Paragraph]: a label record
// opens a paragraph and the paragraph runs until the next label or the end
// of the unit.
//
// A label is a record whose code window starts in its first column (area A)
// with a single token "NAME." where NAME is 1-30 letters, digits or
// hyphens, not starting or ending with a hyphen, and not a reserved word.
// "NAME SECTION." headers open a block the same way.
package structure
