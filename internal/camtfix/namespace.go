package camtfix

import (
	"strings"

	"fjacquet/camt-fix/internal/logging"

	"github.com/beevik/etree"
)

// downgradeNamespace rewrites every declaration of the .10 namespace to .02.
// Elements refer to their namespace through the declaration, so updating
// the xmlns attribute moves the whole tree at once. Documents in any other
// namespace are left alone.
func downgradeNamespace(p *pass) int {
	if documentNamespace(p.root) != Namespace10 {
		return 0
	}

	rewritten := 0
	walk(p.root, func(e *etree.Element) {
		for i := range e.Attr {
			a := &e.Attr[i]
			switch {
			case isNamespaceDecl(a) && a.Value == Namespace10:
				a.Value = Namespace02
				rewritten++
			case a.Key == "schemaLocation" && a.Space != "":
				a.Value = strings.ReplaceAll(a.Value, "camt.053.001.10", "camt.053.001.02")
			}
		}
	})

	p.report.NamespaceRewritten = rewritten > 0
	p.log.Debug("Downgraded statement namespace",
		logging.F(logging.FieldNamespace, Namespace02))
	return rewritten
}

// documentNamespace returns the namespace URI the root element is in, as
// declared on the root itself.
func documentNamespace(root *etree.Element) string {
	for _, a := range root.Attr {
		if root.Space == "" && a.Space == "" && a.Key == "xmlns" {
			return a.Value
		}
		if root.Space != "" && a.Space == "xmlns" && a.Key == root.Space {
			return a.Value
		}
	}
	return ""
}

func isNamespaceDecl(a *etree.Attr) bool {
	return (a.Space == "" && a.Key == "xmlns") || a.Space == "xmlns"
}
