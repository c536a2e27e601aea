package camtfix

import (
	"strings"

	"github.com/beevik/etree"
)

// Helpers over the etree document. Elements are matched by local name so
// prefixed (ns0:Ntry) and default-namespace documents behave the same.

// walk visits e and its descendants in document order.
func walk(e *etree.Element, fn func(*etree.Element)) {
	fn(e)
	for _, c := range e.ChildElements() {
		walk(c, fn)
	}
}

// collect returns every element below root (root included) named tag.
// The result is a snapshot, so callers may mutate the tree while iterating.
func collect(root *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	walk(root, func(e *etree.Element) {
		if e.Tag == tag {
			out = append(out, e)
		}
	})
	return out
}

func firstChild(e *etree.Element, tag string) *etree.Element {
	if e == nil {
		return nil
	}
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func children(e *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}

// descend follows a chain of first children, returning nil when a link is missing.
func descend(e *etree.Element, tags ...string) *etree.Element {
	for _, tag := range tags {
		e = firstChild(e, tag)
		if e == nil {
			return nil
		}
	}
	return e
}

// textOf returns the trimmed text of e, or "" for a nil element.
func textOf(e *etree.Element) string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.Text())
}

// qualify gives a new child the same namespace prefix as its parent.
func qualify(parent *etree.Element, tag string) string {
	if parent.Space == "" {
		return tag
	}
	return parent.Space + ":" + tag
}

// insertAt creates tag as a child of parent at token index; a negative
// index appends.
func insertAt(parent *etree.Element, tag string, index int) *etree.Element {
	child := etree.NewElement(qualify(parent, tag))
	if index < 0 || index >= len(parent.Child) {
		parent.AddChild(child)
	} else {
		parent.InsertChildAt(index, child)
	}
	return child
}

// insertBefore creates tag in front of the first existing child named in
// followers, keeping the schema sequence; without one it appends.
func insertBefore(parent *etree.Element, tag string, followers ...string) *etree.Element {
	for _, c := range parent.ChildElements() {
		if contains(followers, c.Tag) {
			return insertAt(parent, tag, c.Index())
		}
	}
	return insertAt(parent, tag, -1)
}

// insertAfter creates tag right after the last existing child named in
// predecessors; without one it becomes the first child element.
func insertAfter(parent *etree.Element, tag string, predecessors ...string) *etree.Element {
	var last *etree.Element
	for _, c := range parent.ChildElements() {
		if contains(predecessors, c.Tag) {
			last = c
		}
	}
	if last != nil {
		return insertAt(parent, tag, last.Index()+1)
	}
	if elems := parent.ChildElements(); len(elems) > 0 {
		return insertAt(parent, tag, elems[0].Index())
	}
	return insertAt(parent, tag, -1)
}

func clearChildren(e *etree.Element) {
	for len(e.Child) > 0 {
		e.RemoveChildAt(0)
	}
}

func remove(e *etree.Element) {
	if p := e.Parent(); p != nil {
		p.RemoveChild(e)
	}
}

// onlyChild returns the single child element of e when e holds nothing else
// but whitespace and comments.
func onlyChild(e *etree.Element) (*etree.Element, bool) {
	var only *etree.Element
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if only != nil {
				return nil, false
			}
			only = t
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return nil, false
			}
		case *etree.Comment:
		default:
			return nil, false
		}
	}
	return only, only != nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
