package parser

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedMarkdown = errors.New("malformed markdown")
	ErrMissingTitle      = errors.New("no title found")
	// ErrUnrecognizedSpanKind means a bug in the parser, not a problem with the input.
	ErrUnrecognizedSpanKind = errors.New("unrecognized span kind")
)

// MalformedError reports an unmatched inline delimiter
type MalformedError struct {
	Delimiter string
	Text      string // text of the span that contains the delimiter
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("unmatched delimiter %q in %q", e.Delimiter, e.Text)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformedMarkdown
}
