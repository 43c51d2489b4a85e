package encoding

import "fmt"

// ErrorKind identifies the reason why the encoder rejected an operation.
type ErrorKind int

const (
	// NestingTooDeep is returned when a list or a dictionary would exceed the
	// maximum depth of the encoder.
	NestingTooDeep ErrorKind = iota + 1
	// UnsortedKeys is returned when a sorted dictionary receives a key that is
	// not strictly greater than the previous one.
	UnsortedKeys
	// DuplicateKey is returned when an unsorted dictionary receives the same
	// key twice.
	DuplicateKey
	// SingleItemReused is returned when a single item encoder is used after
	// its value has been emitted.
	SingleItemReused
	// MissingValue is returned when a dictionary pair is closed without a
	// value being emitted.
	MissingValue
	// Unfinished is returned when the output is requested while a list or a
	// dictionary is still open.
	Unfinished
)

func (k ErrorKind) String() string {
	switch k {
	case NestingTooDeep:
		return "nesting too deep"
	case UnsortedKeys:
		return "unsorted keys"
	case DuplicateKey:
		return "duplicate key"
	case SingleItemReused:
		return "single item encoder reused"
	case MissingValue:
		return "missing value"
	case Unfinished:
		return "unfinished output"
	default:
		return "unknown"
	}
}

// Sentinel errors that can be compared with xerrors.Is.
var (
	ErrNestingTooDeep   = Error{Kind: NestingTooDeep}
	ErrUnsortedKeys     = Error{Kind: UnsortedKeys}
	ErrDuplicateKey     = Error{Kind: DuplicateKey}
	ErrSingleItemReused = Error{Kind: SingleItemReused}
	ErrMissingValue     = Error{Kind: MissingValue}
	ErrUnfinished       = Error{Kind: Unfinished}
)

// Error is the error returned by the encoder when it refuses an operation.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func newError(kind ErrorKind, format string, args ...interface{}) Error {
	return Error{
		Kind:   kind,
		Detail: fmt.Sprintf(format, args...),
	}
}

// Error implements error. It returns the kind of error followed by the detail
// if any.
func (e Error) Error() string {
	if e.Detail == "" {
		return e.Kind.String()
	}

	return fmt.Sprintf("%v: %s", e.Kind, e.Detail)
}

// Is returns true when the other error is an encoding error of the same kind.
func (e Error) Is(err error) bool {
	other, ok := err.(Error)

	return ok && other.Kind == e.Kind
}
