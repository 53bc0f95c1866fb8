// Package errors provides the structured error taxonomy for secreon's
// threshold-sharing core: a fixed set of Kinds the facade can return, with
// CLI-facing exit codes attached.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
)

// Kind enumerates the sum of error conditions the core can raise.
type Kind string

// Error kinds, per the core's error handling design.
const (
	// KindInvalidArgument marks a programming error: malformed inputs such
	// as an out-of-range threshold, an odd-length master secret, a
	// non-ASCII passphrase, or an iteration exponent outside 0..15.
	KindInvalidArgument Kind = "InvalidArgument"

	// KindInvalidMnemonic marks a structurally malformed mnemonic: unknown
	// word, too short, bad padding, overflowing value, or an impossible
	// group_count/group_threshold relationship.
	KindInvalidMnemonic Kind = "InvalidMnemonic"

	// KindChecksumFailure marks an RS1024 verification failure.
	KindChecksumFailure Kind = "ChecksumFailure"

	// KindInconsistentShares marks a set of shares that disagree on their
	// common or group parameters.
	KindInconsistentShares Kind = "InconsistentShares"

	// KindInsufficientShares marks too few (or, for groups, too many)
	// complete groups, or a group with too few distinct member shares.
	KindInsufficientShares Kind = "InsufficientShares"

	// KindDigestMismatch marks an HMAC digest check failure after
	// interpolation: the supplied shares do not belong together.
	KindDigestMismatch Kind = "DigestMismatch"

	// KindArithmeticError marks a field-arithmetic failure, such as
	// duplicate x-coordinates during interpolation. It is also used when
	// reading from the random source fails.
	KindArithmeticError Kind = "ArithmeticError"

	// KindIoInputError is reserved for the external I/O layer; the core
	// never raises it directly.
	KindIoInputError Kind = "IoInputError"
)

// Exit codes surfaced by the CLI layer.
const (
	ExitSuccess  = 0
	ExitGeneral  = 1
	ExitInput    = 2
	ExitChecksum = 3
	ExitShares   = 4
)

// exitCodes maps each Kind to the process exit code a CLI should use.
var exitCodes = map[Kind]int{
	KindInvalidArgument:    ExitInput,
	KindInvalidMnemonic:    ExitInput,
	KindChecksumFailure:    ExitChecksum,
	KindInconsistentShares: ExitShares,
	KindInsufficientShares: ExitShares,
	KindDigestMismatch:     ExitShares,
	KindArithmeticError:    ExitGeneral,
	KindIoInputError:       ExitGeneral,
}

// Error is the core's structured error type.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// New constructs an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap constructs an Error of the given kind wrapping an underlying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error sharing the same Kind, so callers can use
// errors.Is(err, errors.New(KindChecksumFailure, "")) as a sentinel check.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Kind == t.Kind
	}
	return false
}

// Is reports whether err is (or wraps) an Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// ExitCode returns the process exit code appropriate for err.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		if code, ok := exitCodes[e.Kind]; ok {
			return code
		}
	}
	return ExitGeneral
}
