package ir

import "strings"

// FragmentRoot is the tag name of the synthetic element that wraps a parsed
// fragment. Path reports it as "root".
const FragmentRoot = "wrapper"

// Path returns a breadcrumb locating y, built from the element names from
// the root down and the name attribute of each element when present.
//
//	/root/event(SOME_NAME)/choice/text
//
// Only the outermost segment is subject to the FragmentRoot rename.
func (y *Node) Path() string {
	var segs []string
	for x := y; x != nil; x = x.Parent {
		if x.Type != ElementType {
			continue
		}
		seg := x.Name
		if x.Parent == nil || x.Parent.Type == DocumentType {
			if seg == FragmentRoot {
				seg = "root"
			}
		}
		if name, _ := x.Attr("name"); name != "" {
			seg += "(" + name + ")"
		}
		segs = append(segs, seg)
	}
	if len(segs) == 0 {
		return "/"
	}
	b := &strings.Builder{}
	for i := len(segs) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(segs[i])
	}
	return b.String()
}
