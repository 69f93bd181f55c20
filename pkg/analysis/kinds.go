package analysis

import "fmt"

// EdgeKind is the kind of an internal control transfer.
type EdgeKind int

const (
	Jump         EdgeKind = iota // GO TO
	Perform                      // PERFORM a
	PerformRange                 // PERFORM a THRU b
)

var edgeKindNames = [...]string{
	Jump:         "jump",
	Perform:      "perform",
	PerformRange: "perform-range",
}

func (k EdgeKind) String() string {
	if k < 0 || int(k) >= len(edgeKindNames) {
		return fmt.Sprintf("EdgeKind(%d)", int(k))
	}
	return edgeKindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k EdgeKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(edgeKindNames) {
		return nil, fmt.Errorf("invalid edge kind %d", int(k))
	}
	return []byte(edgeKindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *EdgeKind) UnmarshalText(b []byte) error {
	for i, name := range edgeKindNames {
		if name == string(b) {
			*k = EdgeKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown edge kind %q", b)
}

// ExitKind is the kind of a statement that leaves the paragraph chain.
type ExitKind int

const (
	ExternalTransfer ExitKind = iota // EXEC CICS XCTL
	Return                           // EXEC CICS RETURN [TRANSID]
	ProgramEnd                       // STOP RUN, GOBACK
	ForcedStop                       // EXEC CICS ABEND
)

// ExitKinds lists every exit kind in declaration order.
var ExitKinds = []ExitKind{ExternalTransfer, Return, ProgramEnd, ForcedStop}

var exitKindNames = [...]string{
	ExternalTransfer: "external-transfer",
	Return:           "return",
	ProgramEnd:       "program-end",
	ForcedStop:       "forced-stop",
}

func (k ExitKind) String() string {
	if k < 0 || int(k) >= len(exitKindNames) {
		return fmt.Sprintf("ExitKind(%d)", int(k))
	}
	return exitKindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k ExitKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(exitKindNames) {
		return nil, fmt.Errorf("invalid exit kind %d", int(k))
	}
	return []byte(exitKindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ExitKind) UnmarshalText(b []byte) error {
	for i, name := range exitKindNames {
		if name == string(b) {
			*k = ExitKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown exit kind %q", b)
}

// InteractionKind is a CICS terminal or program interaction that does not
// leave the program.
type InteractionKind int

const (
	SendMap InteractionKind = iota
	ReceiveMap
	StartTransaction
	LinkProgram
)

var interactionKindNames = [...]string{
	SendMap:          "send-map",
	ReceiveMap:       "receive-map",
	StartTransaction: "start-transaction",
	LinkProgram:      "link-program",
}

func (k InteractionKind) String() string {
	if k < 0 || int(k) >= len(interactionKindNames) {
		return fmt.Sprintf("InteractionKind(%d)", int(k))
	}
	return interactionKindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k InteractionKind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(interactionKindNames) {
		return nil, fmt.Errorf("invalid interaction kind %d", int(k))
	}
	return []byte(interactionKindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *InteractionKind) UnmarshalText(b []byte) error {
	for i, name := range interactionKindNames {
		if name == string(b) {
			*k = InteractionKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown interaction kind %q", b)
}
