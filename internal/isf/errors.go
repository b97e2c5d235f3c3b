package isf

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is; use errors.As with *Error to get
// the field, token and byte counts that caused the failure.
var (
	ErrMalformedHeader     = errors.New("malformed header")
	ErrMissingField        = errors.New("missing header field")
	ErrUnsupportedEncoding = errors.New("unsupported encoding")
	ErrUnsupportedFormat   = errors.New("unsupported point format")
	ErrTruncatedPayload    = errors.New("truncated payload")
	ErrShapeMismatch       = errors.New("shape mismatch")
)

// Error describes a fatal codec failure.
type Error struct {
	Kind  error  // one of the Err* kinds above
	Field string // header field involved, if any
	Token string // offending token, if any
	Want  int    // expected byte (or element) count
	Got   int    // actual byte (or element) count
	Err   error  // underlying cause, if any
}

func (e *Error) Error() string {
	msg := "isf: " + e.Kind.Error()
	switch e.Kind {
	case ErrTruncatedPayload:
		msg += fmt.Sprintf(" (want=%d bytes, got=%d)", e.Want, e.Got)
	case ErrShapeMismatch:
		if e.Want != e.Got {
			msg += fmt.Sprintf(" (len(x)=%d, len(y)=%d)", e.Want, e.Got)
		}
	}
	if e.Field != "" {
		msg += " " + e.Field
	}
	if e.Token != "" {
		msg += fmt.Sprintf(" %q", e.Token)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func errMissing(field string) error {
	return &Error{Kind: ErrMissingField, Field: field}
}

func errMalformed(field, token string, cause error) error {
	return &Error{Kind: ErrMalformedHeader, Field: field, Token: token, Err: cause}
}

func errEncoding(field, token string) error {
	return &Error{Kind: ErrUnsupportedEncoding, Field: field, Token: token}
}

func errTruncated(want, got int) error {
	return &Error{Kind: ErrTruncatedPayload, Want: want, Got: got}
}
