package xmlutils

import (
	"errors"
	"testing"

	"fjacquet/camt-fix/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const statementXML = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.10">
  <BkToCstmrStmt>
    <Stmt>
      <Id>STMT-1</Id>
      <Ntry>
        <Sts><Cd>BOOK</Cd></Sts>
        <AddtlNtryInf>Card payment</AddtlNtryInf>
      </Ntry>
      <Ntry>
        <Sts><Cd>PDNG</Cd></Sts>
      </Ntry>
    </Stmt>
  </BkToCstmrStmt>
</Document>`

func TestGetOrEmpty(t *testing.T) {
	tests := []struct {
		name     string
		slice    []string
		index    int
		expected string
	}{
		{"valid index returns value", []string{"a", "b", "c"}, 1, "b"},
		{"index out of bounds returns empty", []string{"a", "b"}, 5, ""},
		{"negative index returns empty", []string{"a"}, -1, ""},
		{"nil slice returns empty", nil, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetOrEmpty(tt.slice, tt.index))
		})
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple text unchanged", "Card payment", "Card payment"},
		{"collapses spaces", "Card    payment", "Card payment"},
		{"newlines and tabs", "Card\n\tpayment", "Card payment"},
		{"trims", "  Card payment  ", "Card payment"},
		{"empty", "", ""},
		{"whitespace only", "   \n\t   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestLoadXML(t *testing.T) {
	t.Run("namespaced document", func(t *testing.T) {
		root, err := LoadXML([]byte(statementXML))
		require.NoError(t, err)
		assert.NotNil(t, root)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := LoadXML([]byte("<invalid><unclosed>"))
		require.Error(t, err)
		var pe *parsererror.ParseError
		assert.True(t, errors.As(err, &pe))
	})

	t.Run("latin-1 declaration is decoded", func(t *testing.T) {
		data := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><r><v>Z\xfcrich</v></r>")
		root, err := LoadXML(data)
		require.NoError(t, err)
		values, err := ExtractFromXML(root, "//v")
		require.NoError(t, err)
		assert.Equal(t, []string{"Zürich"}, values)
	})
}

func TestExtractFromXML(t *testing.T) {
	root, err := LoadXML([]byte(statementXML))
	require.NoError(t, err)

	t.Run("matches local names in the default namespace", func(t *testing.T) {
		values, err := ExtractFromXML(root, XPathEntryStatus)
		require.NoError(t, err)
		assert.Equal(t, []string{"BOOK", "PDNG"}, values)
	})

	t.Run("single value", func(t *testing.T) {
		values, err := ExtractFromXML(root, XPathAddEntryInfo)
		require.NoError(t, err)
		assert.Equal(t, []string{"Card payment"}, values)
	})

	t.Run("no matches", func(t *testing.T) {
		values, err := ExtractFromXML(root, XPathTotalEntries)
		require.NoError(t, err)
		assert.Empty(t, values)
	})

	t.Run("invalid xpath", func(t *testing.T) {
		_, err := ExtractFromXML(root, "[invalid xpath")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to compile XPath")
	})

	t.Run("count", func(t *testing.T) {
		n, err := Count(root, XPathEntry)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}

func TestValidateStatement(t *testing.T) {
	t.Run("valid statement", func(t *testing.T) {
		assert.NoError(t, ValidateStatement("ok.xml", []byte(statementXML)))
	})

	t.Run("not xml", func(t *testing.T) {
		err := ValidateStatement("broken.xml", []byte("not xml at all <"))
		var pe *parsererror.ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "broken.xml", pe.Source)
	})

	t.Run("foreign document", func(t *testing.T) {
		err := ValidateStatement("other.xml", []byte(`<Document><SomeOtherTag/></Document>`))
		var ve *parsererror.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Equal(t, "other.xml", ve.FilePath)
		assert.Contains(t, ve.Reason, "BkToCstmrStmt")
	})

	t.Run("statement container without Stmt", func(t *testing.T) {
		err := ValidateStatement("empty.xml", []byte(`<Document><BkToCstmrStmt><GrpHdr/></BkToCstmrStmt></Document>`))
		var ve *parsererror.ValidationError
		require.True(t, errors.As(err, &ve))
		assert.Contains(t, ve.Reason, "no Stmt")
	})
}

func TestRootNamespace(t *testing.T) {
	ns, err := RootNamespace([]byte(statementXML))
	require.NoError(t, err)
	assert.Equal(t, "urn:iso:std:iso:20022:tech:xsd:camt.053.001.10", ns)

	ns, err = RootNamespace([]byte(`<w:Document xmlns:w="urn:x"/>`))
	require.NoError(t, err)
	assert.Equal(t, "urn:x", ns)

	ns, err = RootNamespace([]byte(`<Document/>`))
	require.NoError(t, err)
	assert.Equal(t, "", ns)

	_, err = RootNamespace([]byte(""))
	var pe *parsererror.ParseError
	assert.True(t, errors.As(err, &pe))
}
