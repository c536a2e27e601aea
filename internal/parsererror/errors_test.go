package parsererror

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		expected string
	}{
		{
			name:     "without source",
			err:      &ParseError{Err: errors.New("unexpected EOF")},
			expected: "failed to parse XML: unexpected EOF",
		},
		{
			name:     "with source",
			err:      &ParseError{Source: "statement.xml", Err: errors.New("unexpected EOF")},
			expected: "statement.xml: failed to parse XML: unexpected EOF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestParseError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	parseErr := &ParseError{Err: originalErr}

	assert.Equal(t, originalErr, parseErr.Unwrap())
	assert.True(t, errors.Is(parseErr, originalErr))
}

func TestParseError_WithSource(t *testing.T) {
	base := &ParseError{Err: errors.New("bad token")}
	named := base.WithSource("in.xml")

	assert.Equal(t, "in.xml", named.Source)
	assert.Empty(t, base.Source, "original error must not be modified")
	assert.ErrorIs(t, named, base.Err)
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{FilePath: "/tmp/a.xml", Reason: "missing BkToCstmrStmt"}
	assert.Equal(t, "validation failed for /tmp/a.xml: missing BkToCstmrStmt", err.Error())
}

func TestInvalidFormatError(t *testing.T) {
	err := &InvalidFormatError{FilePath: "a.xml", Expected: "camt.053", Actual: "urn:example"}
	assert.Equal(t, "a.xml: unexpected namespace urn:example, expected camt.053", err.Error())

	err.Actual = ""
	assert.Equal(t, "a.xml: unexpected namespace (none), expected camt.053", err.Error())
}

func TestErrorsAs(t *testing.T) {
	var err error = &ParseError{Source: "x.xml", Err: errors.New("boom")}
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, "x.xml", pe.Source)
}
