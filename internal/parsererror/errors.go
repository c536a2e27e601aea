// Package parsererror defines the error types surfaced by the statement rewriter
// and its command-line wrappers.
package parsererror

import "fmt"

// ParseError is returned when an input document is not well-formed XML.
// It is the only fatal error of a transformation.
type ParseError struct {
	Source string // file name or "<stdin>"; may be empty when bytes were passed directly
	Err    error
}

func (e *ParseError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to parse XML: %v", e.Err)
	}
	return fmt.Sprintf("%s: failed to parse XML: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WithSource returns a copy of the error naming the offending file.
func (e *ParseError) WithSource(source string) *ParseError {
	return &ParseError{Source: source, Err: e.Err}
}

// ValidationError represents a validation failure
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}

// InvalidFormatError is returned for well-formed XML that is not a
// statement in one of the expected namespaces.
type InvalidFormatError struct {
	FilePath string
	Expected string
	Actual   string // namespace found on the root element, may be empty
}

func (e *InvalidFormatError) Error() string {
	actual := e.Actual
	if actual == "" {
		actual = "(none)"
	}
	return fmt.Sprintf("%s: unexpected namespace %s, expected %s", e.FilePath, actual, e.Expected)
}
