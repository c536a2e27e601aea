// Package validate handles the statement check command
package validate

import (
	"errors"
	"fmt"

	"fjacquet/camt-fix/cmd/root"
	"fjacquet/camt-fix/internal/camtfix"
	"fjacquet/camt-fix/internal/fileutils"
	"fjacquet/camt-fix/internal/logging"
	"fjacquet/camt-fix/internal/parsererror"
	"fjacquet/camt-fix/internal/xmlutils"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate",
	Short: "Check whether an XML file is a CAMT.053 statement and which version",
	Long: `Check whether an XML file is a well-formed CAMT.053 statement and report whether
it still needs fixing (namespace camt.053.001.10) or is already in the .02 shape.

Example:
  camt-fix validate -i statement.xml`,
	RunE: validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) error {
	input := root.SharedFlags.Input
	if input == "" {
		return errors.New("input file must be specified with --input")
	}
	logger := root.GetLogger()

	data, err := fileutils.ReadFile(input)
	if err != nil {
		return err
	}

	summary, err := Check(input, data)
	if err != nil {
		logger.WithError(err).Debug("Statement check failed", logging.F(logging.FieldFile, input))
		return err
	}

	logger.Debug("Statement check passed",
		logging.F(logging.FieldFile, input),
		logging.F(logging.FieldStatus, summary.Status),
		logging.F(logging.FieldCount, summary.Entries))
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", input, summary)
	return nil
}

// Summary describes a checked statement.
type Summary struct {
	Status         string
	StatementID    string
	Entries        int
	AdditionalInfo int
	DateTimes      int
	Totals         int
}

func (s Summary) String() string {
	out := fmt.Sprintf("%s (statement %s, %d entries)", s.Status, s.StatementID, s.Entries)
	if s.Status == statusNeedsFixing {
		out += fmt.Sprintf(": %d additional infos, %d date-times, %d totals blocks to rewrite",
			s.AdditionalInfo, s.DateTimes, s.Totals)
	}
	return out
}

const (
	statusNeedsFixing  = "needs fixing"
	statusAlreadyFixed = "already fixed"
)

// Check reports whether data is a camt.053 statement that needs fixing or
// is already rewritten, with a few counts of what the rewrite would touch.
func Check(source string, data []byte) (Summary, error) {
	var summary Summary
	if err := xmlutils.ValidateStatement(source, data); err != nil {
		return summary, err
	}

	ns, err := xmlutils.RootNamespace(data)
	if err != nil {
		var pe *parsererror.ParseError
		if errors.As(err, &pe) {
			return summary, pe.WithSource(source)
		}
		return summary, err
	}

	switch ns {
	case camtfix.Namespace10:
		summary.Status = statusNeedsFixing
	case camtfix.Namespace02:
		summary.Status = statusAlreadyFixed
	default:
		return summary, &parsererror.InvalidFormatError{
			FilePath: source,
			Expected: "camt.053.001.10 or camt.053.001.02",
			Actual:   ns,
		}
	}

	root, err := xmlutils.LoadXML(data)
	if err != nil {
		return summary, err
	}
	ids, err := xmlutils.ExtractFromXML(root, xmlutils.XPathStatementID)
	if err != nil {
		return summary, err
	}
	summary.StatementID = xmlutils.CleanText(xmlutils.GetOrEmpty(ids, 0))

	for xpath, dst := range map[string]*int{
		xmlutils.XPathEntry:        &summary.Entries,
		xmlutils.XPathAddEntryInfo: &summary.AdditionalInfo,
		xmlutils.XPathDateTime:     &summary.DateTimes,
		xmlutils.XPathTotalEntries: &summary.Totals,
	} {
		if *dst, err = xmlutils.Count(root, xpath); err != nil {
			return summary, err
		}
	}
	return summary, nil
}
