package camtfix

// removeTotals deletes every TtlNtries block with its subtree; the .02
// importers reject the .10 shape of it and the totals are derivable.
func removeTotals(p *pass) int {
	removed := 0
	for _, ttl := range collect(p.root, "TtlNtries") {
		remove(ttl)
		removed++
	}
	p.report.TotalsRemoved += removed
	return removed
}
