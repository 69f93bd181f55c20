package errors

import "fmt"

// Position locates a canonical record in both the canonical sequence and
// the original source file.
type Position struct {
	Seq        int // canonical sequence number
	SourceLine int // 1-based line number in the raw source
}

func (p Position) String() string {
	return fmt.Sprintf("seq %06d (line %d)", p.Seq, p.SourceLine)
}

// DecodeError reports a line whose bytes are invalid for the declared input
// encoding. It is fatal for the unit: nothing of it is normalized.
type DecodeError struct {
	Unit     string
	Line     int
	Encoding string
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s: line %d is not valid %s", ErrCodeDecode, e.Unit, e.Line, e.Encoding)
}

// Code returns the error code for this error type.
func (e *DecodeError) Code() Code { return ErrCodeDecode }

// OrphanCodeError reports code after the division marker that precedes the
// first paragraph label.
type OrphanCodeError struct {
	Unit string
	At   Position
	Text string // offending code field, trimmed
}

// Error implements the error interface.
func (e *OrphanCodeError) Error() string {
	return fmt.Sprintf("%s: %s: code outside any paragraph at %s: %q", ErrCodeOrphanCode, e.Unit, e.At, e.Text)
}

// Code returns the error code for this error type.
func (e *OrphanCodeError) Code() Code { return ErrCodeOrphanCode }

// DuplicateParagraphError reports a label defined twice within one unit.
type DuplicateParagraphError struct {
	Unit   string
	Name   string
	First  Position
	Second Position
}

// Error implements the error interface.
func (e *DuplicateParagraphError) Error() string {
	return fmt.Sprintf("%s: %s: paragraph %s defined at %s and again at %s",
		ErrCodeDuplicateParagraph, e.Unit, e.Name, e.First, e.Second)
}

// Code returns the error code for this error type.
func (e *DuplicateParagraphError) Code() Code { return ErrCodeDuplicateParagraph }
