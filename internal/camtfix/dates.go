package camtfix

import (
	"fjacquet/camt-fix/internal/dateutils"
	"fjacquet/camt-fix/internal/logging"
)

// truncateDateTimes turns every <DtTm>2026-02-28T10:15:00+01:00</DtTm> into
// <Dt>2026-02-28</Dt> in place. A DtTm whose parent already carries a Dt is
// dropped, since the two are a choice. Values without a leading ISO date are
// kept as they are.
func truncateDateTimes(p *pass) int {
	changed := 0
	for _, e := range collect(p.root, "DtTm") {
		raw := textOf(e)
		date, ok := dateutils.TruncateDateTime(raw)
		if !ok {
			p.log.Warn("Keeping date-time that does not start with an ISO date",
				logging.F(logging.FieldPath, e.GetPath()),
				logging.F(logging.FieldValue, raw))
			continue
		}

		if parent := e.Parent(); parent != nil && firstChild(parent, "Dt") != nil {
			remove(e)
			p.report.DateTimesDropped++
			changed++
			continue
		}

		e.Tag = "Dt"
		e.SetText(date)
		p.report.DatesTruncated++
		changed++
	}
	return changed
}
