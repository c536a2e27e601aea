package camtfix

// flattenStatuses turns <Sts><Cd>BOOK</Cd></Sts> into <Sts>BOOK</Sts>.
// Statuses that are already flat, carry a proprietary code or an empty Cd
// keep their shape.
func flattenStatuses(p *pass) int {
	flattened := 0
	for _, sts := range collect(p.root, "Sts") {
		cd, ok := onlyChild(sts)
		if !ok || cd.Tag != "Cd" || len(cd.ChildElements()) > 0 {
			continue
		}
		code := textOf(cd)
		if code == "" {
			continue
		}
		clearChildren(sts)
		sts.SetText(code)
		flattened++
	}
	p.report.StatusesFlattened += flattened
	return flattened
}
