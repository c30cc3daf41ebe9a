package ir

import "strings"

// Node is one item of a document tree. Documents and elements carry
// children; text, comments, processing instructions and directives are
// leaves whose payload is in Data.
//
// Parent is a back-reference maintained by the child-list helpers in this
// package. Code that edits Children directly is responsible for it.
type Node struct {
	Type   Type
	Parent *Node

	// Space is the namespace token of an element ("" for none). It is
	// compared by equality only.
	Space    string
	Name     string
	Attrs    []Attr
	Children []*Node

	// Data holds text, comment and directive content, and the
	// instruction part of a processing instruction.
	Data   string
	Target string
	CData  bool
}

func NewDocument(children ...*Node) *Node {
	res := &Node{Type: DocumentType}
	for _, c := range children {
		res.AppendChild(c)
	}
	return res
}

func NewElement(space, name string, attrs ...Attr) *Node {
	return &Node{
		Type:  ElementType,
		Space: space,
		Name:  name,
		Attrs: attrs,
	}
}

func NewText(text string) *Node {
	return &Node{Type: TextType, Data: text}
}

func NewCData(text string) *Node {
	return &Node{Type: TextType, Data: text, CData: true}
}

func NewComment(text string) *Node {
	return &Node{Type: CommentType, Data: text}
}

func NewProcInst(target, inst string) *Node {
	return &Node{Type: ProcInstType, Target: target, Data: inst}
}

func NewDirective(data string) *Node {
	return &Node{Type: DirectiveType, Data: data}
}

// WithChildren appends children and returns y, for building trees inline.
func (y *Node) WithChildren(children ...*Node) *Node {
	for _, c := range children {
		y.AppendChild(c)
	}
	return y
}

// QName returns the element name qualified by its namespace token.
func (y *Node) QName() string {
	if y.Space == "" {
		return y.Name
	}
	return y.Space + ":" + y.Name
}

func (y *Node) IsElement() bool {
	return y.Type == ElementType
}

// Clone returns a deep copy of y. The copy is detached: its Parent is nil.
func (y *Node) Clone() *Node {
	dst := &Node{}
	return y.CloneTo(dst)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Parent = nil
	dst.Space = y.Space
	dst.Name = y.Name
	dst.Data = y.Data
	dst.Target = y.Target
	dst.CData = y.CData
	dst.Attrs = nil
	if len(y.Attrs) != 0 {
		dst.Attrs = make([]Attr, len(y.Attrs))
		copy(dst.Attrs, y.Attrs)
	}
	dst.Children = nil
	if len(y.Children) != 0 {
		dst.Children = make([]*Node, len(y.Children))
		for i, yc := range y.Children {
			dstI := yc.CloneTo(&Node{})
			dstI.Parent = dst
			dst.Children[i] = dstI
		}
	}
	return dst
}

// Elements returns the element children of y in document order.
func (y *Node) Elements() []*Node {
	res := make([]*Node, 0, len(y.Children))
	for _, c := range y.Children {
		if c.Type == ElementType {
			res = append(res, c)
		}
	}
	return res
}

// Element returns the first element child with the given namespace token
// and name, or nil.
func (y *Node) Element(space, name string) *Node {
	for _, c := range y.Children {
		if c.Type == ElementType && c.Space == space && c.Name == name {
			return c
		}
	}
	return nil
}

// Text returns the concatenation of the direct text children of y.
func (y *Node) Text() string {
	switch y.Type {
	case TextType:
		return y.Data
	case ElementType, DocumentType:
	default:
		return ""
	}
	n := 0
	var first *Node
	for _, c := range y.Children {
		if c.Type != TextType {
			continue
		}
		if first == nil {
			first = c
		}
		n++
	}
	if n == 0 {
		return ""
	}
	if n == 1 {
		return first.Data
	}
	b := &strings.Builder{}
	for _, c := range y.Children {
		if c.Type == TextType {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

// TextTrim returns Text with leading and trailing control characters and
// spaces removed.
func (y *Node) TextTrim() string {
	return TrimText(y.Text())
}

// TrimText strips every rune <= ' ' from both ends of s.
func TrimText(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

// SetText replaces all content of y with a single text child.
func (y *Node) SetText(text string) {
	for _, c := range y.Children {
		c.Parent = nil
	}
	y.Children = y.Children[:0]
	y.AppendChild(NewText(text))
}

// RootElement returns the document element of a document, y itself for an
// element, and nil otherwise.
func (y *Node) RootElement() *Node {
	switch y.Type {
	case ElementType:
		return y
	case DocumentType:
		for _, c := range y.Children {
			if c.Type == ElementType {
				return c
			}
		}
	}
	return nil
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Children {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
