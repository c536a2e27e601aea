// Package xmlutils provides the read-only XML helpers used around the rewriter:
// charset-aware decoding, XPath extraction and camt.053 shape checks.
package xmlutils

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/camt-fix/internal/parsererror"

	"golang.org/x/net/html/charset"
	"gopkg.in/xmlpath.v2"
)

// XPath expressions for the parts of a camt.053 statement the tool inspects.
const (
	XPathStatement      = "//BkToCstmrStmt/Stmt"
	XPathStatementID    = "//BkToCstmrStmt/Stmt/Id"
	XPathEntry          = "//Ntry"
	XPathEntryStatus    = "//Ntry/Sts"
	XPathAccountSvcRef  = "//Ntry/AcctSvcrRef"
	XPathAddEntryInfo   = "//Ntry/AddtlNtryInf"
	XPathRemittanceInfo = "//Ntry/NtryDtls/TxDtls/RmtInf/Ustrd"
	XPathTotalEntries   = "//TtlNtries"
	XPathDateTime       = "//DtTm"
	XPathBookingDate    = "//Ntry/BookgDt/Dt"
	XPathValueDate      = "//Ntry/ValDt/Dt"
)

// CharsetReader decodes the encodings allowed in an XML declaration
// (ISO-8859-1, windows-1252, ...) into UTF-8. It has the signature expected
// by xml.Decoder.CharsetReader.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	return charset.NewReaderLabel(label, input)
}

// NewDecoder returns an xml.Decoder that understands non-UTF-8 documents.
func NewDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = CharsetReader
	return d
}

// LoadXML parses data and returns the XPath root node.
func LoadXML(data []byte) (*xmlpath.Node, error) {
	root, err := xmlpath.ParseDecoder(NewDecoder(bytes.NewReader(data)))
	if err != nil {
		return nil, &parsererror.ParseError{Err: err}
	}
	return root, nil
}

// ExtractFromXML extracts values from an XML node using an XPath expression
func ExtractFromXML(root *xmlpath.Node, xpath string) ([]string, error) {
	path, err := xmlpath.Compile(xpath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile XPath: %w", err)
	}

	var values []string
	iter := path.Iter(root)
	for iter.Next() {
		values = append(values, iter.Node().String())
	}

	return values, nil
}

// Count returns the number of nodes matching xpath.
func Count(root *xmlpath.Node, xpath string) (int, error) {
	values, err := ExtractFromXML(root, xpath)
	return len(values), err
}

// ValidateStatement checks that data is a camt.053 bank-to-customer statement
// containing at least one Stmt. Malformed XML yields a *parsererror.ParseError,
// a well-formed document of the wrong shape a *parsererror.ValidationError.
func ValidateStatement(source string, data []byte) error {
	root, err := LoadXML(data)
	if err != nil {
		var pe *parsererror.ParseError
		if errors.As(err, &pe) {
			return pe.WithSource(source)
		}
		return err
	}

	if !xmlpath.MustCompile("//BkToCstmrStmt").Exists(root) {
		return &parsererror.ValidationError{FilePath: source, Reason: "missing BkToCstmrStmt element, not a camt.053 statement"}
	}
	if !xmlpath.MustCompile(XPathStatement).Exists(root) {
		return &parsererror.ValidationError{FilePath: source, Reason: "BkToCstmrStmt contains no Stmt"}
	}
	return nil
}

// RootNamespace returns the namespace URI of the document element.
func RootNamespace(data []byte) (string, error) {
	dec := NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", &parsererror.ParseError{Err: err}
		}
		if start, ok := tok.(xml.StartElement); ok {
			return start.Name.Space, nil
		}
	}
}

// GetOrEmpty returns the value at the specified index in a slice, or an empty string if the index is out of bounds
func GetOrEmpty(slice []string, index int) string {
	if index >= 0 && index < len(slice) {
		return slice[index]
	}
	return ""
}

// CleanText collapses runs of whitespace (including newlines and tabs) in
// XML text content into single spaces and trims the ends.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
