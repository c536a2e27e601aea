package camtfix

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"fjacquet/camt-fix/internal/dateutils"
	"fjacquet/camt-fix/internal/logging"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// maxReferenceLen is the Max35Text limit of AcctSvcrRef.
const maxReferenceLen = 35

// notProvided is the placeholder banks put in mandatory reference fields.
const notProvided = "NOTPROVIDED"

// entryFieldsBeforeReference are the Ntry children preceding AcctSvcrRef.
var entryFieldsBeforeReference = []string{
	"NtryRef", "Amt", "CdtDbtInd", "RvslInd", "Sts", "BookgDt", "ValDt",
}

// referenceNamespace seeds the name-based digests of synthesized references.
var referenceNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte(Namespace02))

// ensureServicerReferences gives every Ntry a non-empty AcctSvcrRef. Present
// values are kept. Missing ones are taken from the entry's own references
// when it has any, otherwise they are a digest of the entry's content, so the
// same input always gets the same value.
func ensureServicerReferences(p *pass) int {
	added := 0
	for _, ntry := range collect(p.root, "Ntry") {
		ref := firstChild(ntry, "AcctSvcrRef")
		if ref != nil && textOf(ref) != "" {
			continue
		}

		value := deriveReference(ntry, p.opts.ReferencePrefix)
		if ref == nil {
			ref = insertAfter(ntry, "AcctSvcrRef", entryFieldsBeforeReference...)
		}
		ref.SetText(value)
		added++

		p.log.Debug("Added servicer reference",
			logging.F(logging.FieldEntry, entryLabel(ntry)),
			logging.F(logging.FieldReference, value))
	}
	p.report.ReferencesAdded += added
	return added
}

// deriveReference picks, in order: the entry reference, the first usable
// transaction reference, or prefix + digest of the entry's identifying data.
func deriveReference(ntry *etree.Element, prefix string) string {
	if ref := textOf(firstChild(ntry, "NtryRef")); usable(ref) {
		return limit(ref)
	}

	if refs := descend(ntry, "NtryDtls", "TxDtls", "Refs"); refs != nil {
		for _, tag := range []string{"AcctSvcrRef", "TxId", "EndToEndId"} {
			if ref := textOf(firstChild(refs, tag)); usable(ref) {
				return limit(ref)
			}
		}
	}

	return limit(prefix + entryDigest(ntry))
}

// entryDigest hashes the statement id, the entry position, booking date,
// amount, currency, direction and first remittance line.
func entryDigest(ntry *etree.Element) string {
	var stmtID, position string
	if stmt := ntry.Parent(); stmt != nil {
		stmtID = textOf(firstChild(stmt, "Id"))
		for i, sibling := range children(stmt, "Ntry") {
			if sibling == ntry {
				position = strconv.Itoa(i)
				break
			}
		}
	}

	amt := firstChild(ntry, "Amt")
	parts := []string{
		stmtID,
		position,
		bookingDate(ntry),
		normalizeAmount(textOf(amt)),
		currency(amt),
		textOf(firstChild(ntry, "CdtDbtInd")),
		textOf(descend(ntry, "NtryDtls", "TxDtls", "RmtInf", "Ustrd")),
	}

	// A version 5 UUID: the version nibble and variant bits are fixed, so the
	// hex carries 122 bits of the SHA-1.
	id := uuid.NewSHA1(referenceNamespace, []byte(strings.Join(parts, "\x1f")))
	return strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
}

// bookingDate is the calendar date of BookgDt whether it is still a DtTm or
// already a Dt, so the digest does not depend on the date step.
func bookingDate(ntry *etree.Element) string {
	bookg := firstChild(ntry, "BookgDt")
	for _, tag := range []string{"Dt", "DtTm"} {
		if value := textOf(firstChild(bookg, tag)); value != "" {
			if date, ok := dateutils.TruncateDateTime(value); ok {
				return date
			}
			return value
		}
	}
	return ""
}

// normalizeAmount makes "10.50" and "10.5" hash alike.
func normalizeAmount(s string) string {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return s
	}
	return d.String()
}

func currency(amt *etree.Element) string {
	if amt == nil {
		return ""
	}
	return strings.TrimSpace(amt.SelectAttrValue("Ccy", ""))
}

func usable(ref string) bool {
	return ref != "" && !strings.EqualFold(ref, notProvided)
}

// limit cuts ref to maxReferenceLen characters; Max35Text counts
// characters, not bytes.
func limit(ref string) string {
	if utf8.RuneCountInString(ref) > maxReferenceLen {
		return string([]rune(ref)[:maxReferenceLen])
	}
	return ref
}
