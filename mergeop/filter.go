package mergeop

import (
	"github.com/signadot/xmod/ir"

	"github.com/dlclark/regexp2"
)

// Filter matches elements by name, attributes and trimmed text. Absent
// parts match anything; present parts must all match.
type Filter struct {
	typ   *matcher
	attrs []attrMatcher
	value *matcher

	// withChild is set by NewWithChildFilter.
	withChild bool
	child     *Filter
}

type attrMatcher struct {
	name string
	m    *matcher
}

// matcher tests a string by equality, or by a regular expression that must
// match the whole string.
type matcher struct {
	lit string
	re  *regexp2.Regexp
}

func newMatcher(location, s string, regex bool) (*matcher, error) {
	if !regex {
		return &matcher{lit: s}, nil
	}
	if _, err := regexp2.Compile(s, regexp2.None); err != nil {
		return nil, &RegexError{Location: location, Pattern: s, Err: err}
	}
	re, err := regexp2.Compile(`\A(?:`+s+`)\z`, regexp2.None)
	if err != nil {
		return nil, &RegexError{Location: location, Pattern: s, Err: err}
	}
	return &matcher{lit: s, re: re}, nil
}

func (m *matcher) match(s string) (bool, error) {
	if m.re == nil {
		return m.lit == s, nil
	}
	return m.re.MatchString(s)
}

func (m *matcher) String() string {
	if m == nil {
		return "*"
	}
	if m.re != nil {
		return "/" + m.lit + "/"
	}
	return m.lit
}

// NewFilter builds a filter. An empty typ or value is treated as absent.
// When regex is set every part is compiled as a regular expression and a
// compile failure is returned as a *RegexError.
func NewFilter(typ string, attrs []ir.Attr, value string, regex bool) (*Filter, error) {
	f := &Filter{}
	var err error
	if typ != "" {
		f.typ, err = newMatcher("type or child-type", typ, regex)
		if err != nil {
			return nil, err
		}
	}
	for _, a := range attrs {
		m, err := newMatcher(a.Name+" attribute", a.Value, regex)
		if err != nil {
			return nil, err
		}
		f.attrs = append(f.attrs, attrMatcher{name: a.Name, m: m})
	}
	if value != "" {
		f.value, err = newMatcher("selector tag value", value, regex)
		if err != nil {
			return nil, err
		}
	}
	return f, nil
}

// NewWithChildFilter builds a filter for elements named typ (any name if
// empty) with at least one element child matching child, or with at least
// one element child if child is nil.
func NewWithChildFilter(typ string, child *Filter, regex bool) (*Filter, error) {
	f := &Filter{withChild: true, child: child}
	if typ != "" {
		m, err := newMatcher("find tag type", typ, regex)
		if err != nil {
			return nil, err
		}
		f.typ = m
	}
	return f, nil
}

func (f *Filter) Match(node *ir.Node) (bool, error) {
	if node.Type != ir.ElementType {
		return false, nil
	}
	if f.typ != nil {
		ok, err := f.typ.match(node.Name)
		if err != nil || !ok {
			return false, err
		}
	}
	if f.withChild {
		return f.matchChild(node)
	}
	for i := range f.attrs {
		am := &f.attrs[i]
		v, present := node.Attr(am.name)
		if !present {
			return false, nil
		}
		ok, err := am.m.match(v)
		if err != nil || !ok {
			return false, err
		}
	}
	if f.value != nil {
		return f.value.match(node.TextTrim())
	}
	return true, nil
}

func (f *Filter) matchChild(node *ir.Node) (bool, error) {
	for _, c := range node.Children {
		if c.Type != ir.ElementType {
			continue
		}
		if f.child == nil {
			return true, nil
		}
		ok, err := f.child.Match(c)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// Select returns the element children of ctx that match f, in document
// order.
func (f *Filter) Select(ctx *ir.Node) ([]*ir.Node, error) {
	var res []*ir.Node
	for _, c := range ctx.Children {
		ok, err := f.Match(c)
		if err != nil {
			return nil, err
		}
		if ok {
			res = append(res, c)
		}
	}
	return res, nil
}

func (f *Filter) String() string {
	s := "type=" + f.typ.String()
	for i := range f.attrs {
		s += " " + f.attrs[i].name + "=" + f.attrs[i].m.String()
	}
	if f.value != nil {
		s += " value=" + f.value.String()
	}
	if f.withChild {
		if f.child == nil {
			s += " child=*"
		} else {
			s += " child=[" + f.child.String() + "]"
		}
	}
	return s
}
