package ir

// Attr is an element attribute. Space is the namespace token ("" for
// none).
type Attr struct {
	Space string
	Name  string
	Value string
}

func (a Attr) QName() string {
	if a.Space == "" {
		return a.Name
	}
	return a.Space + ":" + a.Name
}

// IsNamespaceDecl reports whether a is an xmlns declaration rather than a
// data attribute.
func (a Attr) IsNamespaceDecl() bool {
	return a.Space == "xmlns" || (a.Space == "" && a.Name == "xmlns")
}

// Attr returns the value of the no-namespace attribute name.
func (y *Node) Attr(name string) (string, bool) {
	for i := range y.Attrs {
		a := &y.Attrs[i]
		if a.Space == "" && a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrDefault returns the value of the no-namespace attribute name, or dflt
// when it is absent.
func (y *Node) AttrDefault(name, dflt string) string {
	v, ok := y.Attr(name)
	if !ok {
		return dflt
	}
	return v
}

// SetAttr sets a in place when an attribute with the same namespace and
// name exists and appends it otherwise.
func (y *Node) SetAttr(a Attr) {
	for i := range y.Attrs {
		x := &y.Attrs[i]
		if x.Space == a.Space && x.Name == a.Name {
			x.Value = a.Value
			return
		}
	}
	y.Attrs = append(y.Attrs, a)
}

// RemoveAttr removes the no-namespace attribute name and reports whether
// it was present.
func (y *Node) RemoveAttr(name string) bool {
	for i := range y.Attrs {
		a := &y.Attrs[i]
		if a.Space == "" && a.Name == name {
			y.Attrs = append(y.Attrs[:i], y.Attrs[i+1:]...)
			return true
		}
	}
	return false
}

// DataAttrs returns the attributes of y that are not namespace
// declarations.
func (y *Node) DataAttrs() []Attr {
	res := make([]Attr, 0, len(y.Attrs))
	for _, a := range y.Attrs {
		if a.IsNamespaceDecl() {
			continue
		}
		res = append(res, a)
	}
	return res
}
