package scaffold

import (
	stderrors "errors"
	"fmt"

	"github.com/pixie-sh/errors-go"
)

// Kind classifies a scaffold failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindUsage is an invalid or missing CLI argument or enum value.
	KindUsage
	// KindPrecondition means the target does not look like the expected project.
	KindPrecondition
	// KindUnsupported means no generator is registered for a valid flag combination.
	KindUnsupported
	// KindIO is a filesystem failure on a specific path.
	KindIO
	// KindInvalid means a checked artifact failed validation.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage error"
	case KindPrecondition:
		return "precondition failed"
	case KindUnsupported:
		return "unsupported combination"
	case KindIO:
		return "io error"
	case KindInvalid:
		return "validation failed"
	default:
		return "error"
	}
}

// Error is the error type returned by every scaffold operation.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UsageError reports an invalid argument.
func UsageError(format string, args ...interface{}) error {
	return &Error{Kind: KindUsage, Err: errors.New(format, args...)}
}

// PreconditionError reports a missing marker or an unexpected project layout.
func PreconditionError(format string, args ...interface{}) error {
	return &Error{Kind: KindPrecondition, Err: errors.New(format, args...)}
}

// UnsupportedCombinationError reports a catalog miss, e.g. "storage/redis".
func UnsupportedCombinationError(combination string) error {
	return &Error{Kind: KindUnsupported, Err: errors.New("%s", combination)}
}

// IOError wraps a filesystem failure with the offending path.
func IOError(path string, err error) error {
	return &Error{Kind: KindIO, Path: path, Err: err}
}

// InvalidError reports failed validation of an existing artifact.
func InvalidError(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalid, Err: errors.New(format, args...)}
}

// reportedError marks an error the Reporter has already printed.
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// Reported marks err as already shown to the user so callers up the stack do
// not print it again. A nil err stays nil.
func Reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err}
}

// IsReported reports whether err was marked with Reported.
func IsReported(err error) bool {
	var r reportedError
	return stderrors.As(err, &r)
}

// KindOf returns the kind of the first scaffold error in err's chain.
func KindOf(err error) Kind {
	var se *Error
	if stderrors.As(err, &se) {
		return se.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	return 1
}
