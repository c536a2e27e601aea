// Package camtfix rewrites Wise camt.053.001.10 bank statements into the
// camt.053.001.02 dialect accepted by strict accounting importers.
//
// A transformation parses the input into a document tree, runs a fixed,
// ordered list of rewrite steps over it and serializes the result:
//
//  1. namespace downgrade (.10 to .02)
//  2. status flattening (<Sts><Cd>X</Cd></Sts> to <Sts>X</Sts>)
//  3. removal of TtlNtries
//  4. relocation of AddtlNtryInf into NtryDtls/TxDtls/RmtInf/Ustrd
//  5. AcctSvcrRef assurance
//  6. date-time truncation (DtTm to Dt)
//
// Only malformed XML is an error. Every step is a no-op when the structure it
// expects is absent, so already converted or foreign documents pass through.
package camtfix

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode"

	"fjacquet/camt-fix/internal/config"
	"fjacquet/camt-fix/internal/logging"
	"fjacquet/camt-fix/internal/parsererror"
	"fjacquet/camt-fix/internal/xmlutils"

	"github.com/beevik/etree"
)

const (
	// Namespace10 is the namespace of the statements exported by Wise.
	Namespace10 = "urn:iso:std:iso:20022:tech:xsd:camt.053.001.10"
	// Namespace02 is the namespace importers expect.
	Namespace02 = "urn:iso:std:iso:20022:tech:xsd:camt.053.001.02"

	xmlDeclaration = `version="1.0" encoding="UTF-8"`
)

var utf8BOM = []byte("\xef\xbb\xbf")

// Options tune the parts of the rewrite that are a matter of taste. None of
// them changes which steps run or in which order.
type Options struct {
	// Indent is the number of spaces per nesting level; 0 keeps the input layout.
	Indent int
	// RemittanceSeparator joins relocated text to existing Ustrd text.
	RemittanceSeparator string
	// ReferencePrefix starts synthesized AcctSvcrRef values.
	ReferencePrefix string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Indent:              2,
		RemittanceSeparator: " | ",
		ReferencePrefix:     "WISE",
	}
}

// OptionsFromConfig maps the application configuration onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return DefaultOptions()
	}
	return Options{
		Indent:              cfg.Output.Indent,
		RemittanceSeparator: cfg.Rewrite.RemittanceSeparator,
		ReferencePrefix:     cfg.Rewrite.ReferencePrefix,
	}
}

// Rewriter applies the statement rewrite pipeline. It holds no per-document
// state and is safe for concurrent use.
type Rewriter struct {
	opts   Options
	logger logging.Logger
}

// New creates a Rewriter. A nil logger discards log output.
func New(opts Options, logger logging.Logger) *Rewriter {
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.RemittanceSeparator == "" {
		opts.RemittanceSeparator = DefaultOptions().RemittanceSeparator
	}
	if opts.Indent < 0 {
		opts.Indent = 0
	}
	return &Rewriter{opts: opts, logger: logger}
}

// Transform rewrites one statement with default options.
func Transform(input []byte) ([]byte, error) {
	return New(DefaultOptions(), nil).Transform(input)
}

// Transform rewrites input and returns the serialized result. The only error
// is *parsererror.ParseError for input that is not well-formed XML.
func (r *Rewriter) Transform(input []byte) ([]byte, error) {
	out, _, err := r.TransformWithReport(input)
	return out, err
}

// TransformWithReport is Transform that also reports what was changed.
func (r *Rewriter) TransformWithReport(input []byte) ([]byte, *Report, error) {
	start := time.Now()

	doc, err := parse(input)
	if err != nil {
		return nil, nil, err
	}

	p := &pass{
		root:   doc.Root(),
		opts:   r.opts,
		log:    r.logger,
		report: &Report{},
	}
	for _, s := range pipeline {
		n := s.run(p)
		r.logger.Debug("Rewrite step applied",
			logging.F(logging.FieldStep, s.name),
			logging.F(logging.FieldCount, n))
	}
	p.report.Namespace = documentNamespace(p.root)
	p.report.Entries = len(collect(p.root, "Ntry"))

	out, err := r.serialize(doc)
	if err != nil {
		// Writing a tree that was just parsed only fails on a broken writer.
		return nil, nil, fmt.Errorf("failed to serialize statement: %w", err)
	}

	r.logger.Debug("Statement rewritten",
		logging.F(logging.FieldNamespace, p.report.Namespace),
		logging.F(logging.FieldCount, p.report.Entries),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return out, p.report, nil
}

// pass carries the state of one transformation through the steps.
type pass struct {
	root   *etree.Element
	opts   Options
	log    logging.Logger
	report *Report
}

type step struct {
	name string
	run  func(*pass) int
}

// pipeline is the fixed step order; later steps rely on earlier ones (the
// reference fallback reads the relocated remittance text, for one).
var pipeline = []step{
	{name: "namespace", run: downgradeNamespace},
	{name: "status", run: flattenStatuses},
	{name: "totals", run: removeTotals},
	{name: "remittance", run: relocateAdditionalInfo},
	{name: "reference", run: ensureServicerReferences},
	{name: "dates", run: truncateDateTimes},
}

// parse checks well-formedness with encoding/xml, which verifies matching end
// tags, then builds the mutable tree.
func parse(input []byte) (*etree.Document, error) {
	input = bytes.TrimPrefix(input, utf8BOM)
	if err := checkWellFormed(input); err != nil {
		return nil, &parsererror.ParseError{Err: err}
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = xmlutils.CharsetReader
	if err := doc.ReadFromBytes(input); err != nil {
		return nil, &parsererror.ParseError{Err: err}
	}
	if doc.Root() == nil {
		return nil, &parsererror.ParseError{Err: errors.New("document has no root element")}
	}
	return doc, nil
}

func checkWellFormed(input []byte) error {
	dec := xmlutils.NewDecoder(bytes.NewReader(input))
	depth, roots := 0, 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
				if roots > 1 {
					return fmt.Errorf("unexpected element %s after document end", t.Name.Local)
				}
			}
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			if depth == 0 && !isIgnorableOutsideRoot(string(t)) {
				return errors.New("unexpected character data outside root element")
			}
		}
	}
	if roots == 0 {
		return errors.New("document has no root element")
	}
	return nil
}

func isIgnorableOutsideRoot(data string) bool {
	return strings.TrimFunc(data, func(r rune) bool {
		return r == '\uFEFF' || unicode.IsSpace(r)
	}) == ""
}

// serialize writes the tree with a fresh UTF-8 declaration; the input
// declaration may name another charset that no longer applies.
func (r *Rewriter) serialize(doc *etree.Document) ([]byte, error) {
	for i := len(doc.Child) - 1; i >= 0; i-- {
		if pi, ok := doc.Child[i].(*etree.ProcInst); ok && pi.Target == "xml" {
			doc.RemoveChildAt(i)
		}
	}
	doc.InsertChildAt(0, etree.NewProcInst("xml", xmlDeclaration))

	if r.opts.Indent > 0 {
		doc.Indent(r.opts.Indent)
	} else if len(doc.Child) > 1 {
		if cd, ok := doc.Child[1].(*etree.CharData); !ok || !strings.HasPrefix(cd.Data, "\n") {
			doc.InsertChildAt(1, etree.NewCharData("\n"))
		}
	}

	return doc.WriteToBytes()
}
