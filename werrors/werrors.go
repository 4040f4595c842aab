// Package werrors defines the error-kind taxonomy used across the variant
// calling core: InvalidFormat, InvalidArgument, IoError, Invariant,
// RegionEmpty, and BudgetExceeded. Each error carries a kind plus an
// optionally-wrapped cause, following the style of grailbio/base's
// kind-tagged errors but without taking on that package's dependency.
package werrors

import "github.com/pkg/errors"

// Kind classifies an error for propagation decisions by callers: most kinds
// are recoverable at the region or block level, Invariant is always fatal.
type Kind int

const (
	// InvalidFormat marks malformed input text: CIGAR tokens, BED lines,
	// region strings, reference index lines.
	InvalidFormat Kind = iota
	// InvalidArgument marks a caller-supplied argument combination that
	// can never be satisfied, such as mixed BED/region input.
	InvalidArgument
	// IoError marks a backing store that could not be opened or read.
	IoError
	// Invariant marks an internal consistency failure. Always fatal.
	Invariant
	// RegionEmpty marks a region whose decoded bounds are empty or inverted.
	RegionEmpty
	// BudgetExceeded marks a per-block resource cap being hit (kmer HMM
	// site count, combination enumeration cap).
	BudgetExceeded
)

func (k Kind) String() string {
	switch k {
	case InvalidFormat:
		return "InvalidFormat"
	case InvalidArgument:
		return "InvalidArgument"
	case IoError:
		return "IoError"
	case Invariant:
		return "Invariant"
	case RegionEmpty:
		return "RegionEmpty"
	case BudgetExceeded:
		return "BudgetExceeded"
	default:
		return "Unknown"
	}
}

// Error is a kind-tagged, optionally wrapped error.
type Error struct {
	Kind Kind
	msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.msg + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.msg
}

func (e *Error) Unwrap() error { return e.Err }

// New builds a Kind-tagged error from a message.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, msg: msg}
}

// Errorf builds a Kind-tagged error with a formatted message.
func Errorf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, msg: errors.Errorf(format, args...).Error()}
}

// Wrap annotates cause with a Kind and message, matching the
// errors.Wrap(err, msg) shape used throughout this codebase.
func Wrap(cause error, kind Kind, msg string) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: kind, msg: msg, Err: cause}
}

// Is reports whether err (or something it wraps) carries the given Kind.
func Is(err error, kind Kind) bool {
	var e *Error
	for err != nil {
		if ke, ok := err.(*Error); ok {
			e = ke
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return e != nil && e.Kind == kind
}
