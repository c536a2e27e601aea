package camtfix

import (
	"strings"

	"fjacquet/camt-fix/internal/logging"

	"github.com/beevik/etree"
)

// txDetailsAfterRemittance lists the TxDtls children that follow RmtInf in
// the camt.053 sequence; a created RmtInf goes in front of the first of them.
var txDetailsAfterRemittance = []string{
	"RltdDts", "RltdPric", "RltdQties", "FinInstrmId", "Tax", "RtrInf",
	"CorpActn", "SfkpgAcct", "CshDpst", "CardTx", "AddtlTxInf", "SplmtryData",
}

// relocateAdditionalInfo moves the text of each Ntry/AddtlNtryInf into the
// first NtryDtls/TxDtls/RmtInf/Ustrd of the entry, creating the missing
// levels. Existing Ustrd text is kept and the relocated text is appended.
func relocateAdditionalInfo(p *pass) int {
	relocated := 0
	for _, ntry := range collect(p.root, "Ntry") {
		for _, info := range children(ntry, "AddtlNtryInf") {
			text := textOf(info)
			if text == "" {
				remove(info)
				continue
			}

			ustrd := remittanceText(ntry, info.Index())
			switch existing := textOf(ustrd); {
			case existing == "":
				ustrd.SetText(text)
			case strings.Contains(existing, text):
				// the bank already repeated it there
			default:
				ustrd.SetText(existing + p.opts.RemittanceSeparator + text)
			}

			remove(info)
			relocated++
			p.log.Debug("Relocated additional entry information",
				logging.F(logging.FieldEntry, entryLabel(ntry)))
		}
	}
	p.report.InfosRelocated += relocated
	return relocated
}

// remittanceText returns the Ustrd element of the entry's first transaction,
// building NtryDtls, TxDtls, RmtInf and Ustrd where they are missing. A new
// NtryDtls takes the token position at, which is where AddtlNtryInf sits.
func remittanceText(ntry *etree.Element, at int) *etree.Element {
	details := firstChild(ntry, "NtryDtls")
	if details == nil {
		details = insertAt(ntry, "NtryDtls", at)
	}

	tx := firstChild(details, "TxDtls")
	if tx == nil {
		tx = insertAt(details, "TxDtls", -1)
	}

	rmt := firstChild(tx, "RmtInf")
	if rmt == nil {
		rmt = insertBefore(tx, "RmtInf", txDetailsAfterRemittance...)
	}

	ustrd := firstChild(rmt, "Ustrd")
	if ustrd == nil {
		// Ustrd precedes Strd.
		first := -1
		if elems := rmt.ChildElements(); len(elems) > 0 {
			first = elems[0].Index()
		}
		ustrd = insertAt(rmt, "Ustrd", first)
	}
	return ustrd
}

// entryLabel identifies an entry in log output.
func entryLabel(ntry *etree.Element) string {
	if ref := textOf(firstChild(ntry, "NtryRef")); ref != "" {
		return ref
	}
	if ref := textOf(firstChild(ntry, "AcctSvcrRef")); ref != "" {
		return ref
	}
	return ntry.GetPath()
}
