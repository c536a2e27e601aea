package camtfix

// Report counts what a transformation changed in one document.
type Report struct {
	Source             string `yaml:"source,omitempty" json:"source,omitempty"`
	Namespace          string `yaml:"namespace" json:"namespace"`
	NamespaceRewritten bool   `yaml:"namespace_rewritten" json:"namespace_rewritten"`
	StatusesFlattened  int    `yaml:"statuses_flattened" json:"statuses_flattened"`
	TotalsRemoved      int    `yaml:"totals_removed" json:"totals_removed"`
	InfosRelocated     int    `yaml:"infos_relocated" json:"infos_relocated"`
	ReferencesAdded    int    `yaml:"references_added" json:"references_added"`
	DatesTruncated     int    `yaml:"dates_truncated" json:"dates_truncated"`
	DateTimesDropped   int    `yaml:"date_times_dropped" json:"date_times_dropped"`
	Entries            int    `yaml:"entries" json:"entries"`
}

// Changed reports whether any step modified the document.
func (r *Report) Changed() bool {
	if r == nil {
		return false
	}
	return r.NamespaceRewritten ||
		r.StatusesFlattened > 0 ||
		r.TotalsRemoved > 0 ||
		r.InfosRelocated > 0 ||
		r.ReferencesAdded > 0 ||
		r.DatesTruncated > 0 ||
		r.DateTimesDropped > 0
}
