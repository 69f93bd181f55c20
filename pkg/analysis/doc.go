// Package analysis finds the control transfers and exit points of a unit's
// paragraphs.
//
// [Analyze] scans each paragraph body, label excluded, for:
//
//   - GO TO a [b ...] [DEPENDING ON x]: one [Jump] edge per target
//   - PERFORM a: a [Perform] edge
//   - PERFORM a THRU|THROUGH b: a [PerformRange] edge
//   - STOP RUN and GOBACK: [ProgramEnd] exits
//   - EXEC CICS XCTL, RETURN and ABEND: [ExternalTransfer], [Return] and
//     [ForcedStop] exits
//   - EXEC CICS SEND MAP, RECEIVE MAP, START TRANSID and LINK PROGRAM:
//     [Interaction] records
//
// Inline performs (PERFORM UNTIL, PERFORM VARYING, PERFORM n TIMES and the
// like) are not calls. Performs of trace routines, named by the configured
// trace pattern, are left out of the edge list and only counted.
//
// Targets are resolved case-insensitively against the paragraph table. A
// target that names no paragraph stays in the edge list with Resolved unset;
// it is data, not an error. Each bound of a range resolves on its own.
//
// Entry points are the first paragraph and every paragraph no resolved edge
// targets.
//
// The preamble's WORKING-STORAGE, LOCAL-STORAGE and LINKAGE sections are
// inventoried as [Variable] values. A variable's uses are its occurrences as
// a whole word outside literals, from the division marker on. Variables with
// no use are reported, not treated as errors.
package analysis
