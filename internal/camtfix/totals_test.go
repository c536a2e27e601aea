package camtfix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveTotals(t *testing.T) {
	input := `<Stmt><Id>1</Id>` +
		`<TxsSummry><TtlNtries><NbOfNtries>2</NbOfNtries><Sum>3.00</Sum></TtlNtries>` +
		`<TtlCdtNtries><NbOfNtries>1</NbOfNtries></TtlCdtNtries></TxsSummry>` +
		`<TtlNtries><NbOfNtries>2</NbOfNtries></TtlNtries>` +
		`<Ntry/></Stmt>`

	p, doc, _ := newTestPass(t, input)

	n := removeTotals(p)

	assert.Equal(t, 2, n)
	assert.Equal(t, 2, p.report.TotalsRemoved)
	assert.Equal(t,
		`<Stmt><Id>1</Id><TxsSummry><TtlCdtNtries><NbOfNtries>1</NbOfNtries></TtlCdtNtries></TxsSummry><Ntry/></Stmt>`,
		render(t, doc))
}

func TestRemoveTotals_Absent(t *testing.T) {
	input := `<Stmt><Id>1</Id><Ntry/></Stmt>`
	p, doc, _ := newTestPass(t, input)

	assert.Equal(t, 0, removeTotals(p))
	assert.Equal(t, input, render(t, doc))
}
