package corpus

import "fmt"

// ParseError reports XML that could not be parsed even after the bare
// ampersand repair was considered.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("corpus: parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MissingFieldError reports a sentence element that lacks a required text
// field. Sentence is the 0-based position of the element in document order.
type MissingFieldError struct {
	Field    string
	Sentence int
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("corpus: sentence %d: missing required field <%s>", e.Sentence, e.Field)
}

// FormatError reports an alignment token that does not match the expected
// "int-int" pattern.
type FormatError struct {
	Field    string
	Sentence int
	Token    string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("corpus: sentence %d: field <%s>: malformed alignment token %q (want int-int)",
		e.Sentence, e.Field, e.Token)
}
