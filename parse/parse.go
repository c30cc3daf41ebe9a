// Package parse decodes XML into ir trees.
package parse

import (
	"bytes"
	"fmt"

	"github.com/signadot/xmod/ir"

	"github.com/beevik/etree"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Parse decodes a complete XML document. The result has DocumentType; its
// element child is the document element.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := defaultOpts()
	for _, f := range opts {
		f(pOpts)
	}
	doc, err := read(d, pOpts)
	if err != nil {
		return nil, err
	}
	res := ir.NewDocument()
	for _, t := range doc.Child {
		if c := fromToken(t, pOpts); c != nil {
			res.AppendChild(c)
		}
	}
	if res.RootElement() == nil {
		return nil, ErrNoRoot
	}
	return res, nil
}

// ParseFragment decodes XML that may hold any number of top-level nodes,
// as patch files do. The content is wrapped in a synthetic element named
// ir.FragmentRoot, which is returned. Prefixes such as mod: need no
// declaration.
func ParseFragment(d []byte, opts ...ParseOption) (*ir.Node, error) {
	pOpts := defaultOpts()
	for _, f := range opts {
		f(pOpts)
	}
	decl, body, err := splitDecl(d)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(make([]byte, 0, len(d)+32))
	buf.Write(decl)
	buf.WriteString("<" + ir.FragmentRoot + ">")
	buf.Write(body)
	buf.WriteString("</" + ir.FragmentRoot + ">")

	doc, err := read(buf.Bytes(), pOpts)
	if err != nil {
		return nil, err
	}
	root := doc.Root()
	if root == nil || root.Tag != ir.FragmentRoot {
		return nil, fmt.Errorf("%w: content escapes the fragment root", ErrFragment)
	}
	res := fromToken(root, pOpts)
	return res, nil
}

func read(d []byte, o *parseOpts) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.Permissive = o.permissive
	doc.ReadSettings.PreserveCData = true
	doc.ReadSettings.CharsetReader = o.charsetReader
	if err := doc.ReadFromBytes(d); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return doc, nil
}

// splitDecl separates a leading XML declaration (and byte order mark) from
// the rest of d.
func splitDecl(d []byte) (decl, body []byte, err error) {
	d = bytes.TrimPrefix(d, bom)
	trimmed := bytes.TrimLeft(d, " \t\r\n")
	if !bytes.HasPrefix(trimmed, []byte("<?xml")) {
		return nil, d, nil
	}
	end := bytes.Index(trimmed, []byte("?>"))
	if end == -1 {
		return nil, nil, fmt.Errorf("%w: unterminated xml declaration", ErrFragment)
	}
	return trimmed[:end+2], trimmed[end+2:], nil
}

func fromToken(t etree.Token, o *parseOpts) *ir.Node {
	switch x := t.(type) {
	case *etree.Element:
		n := ir.NewElement(x.Space, x.Tag)
		if len(x.Attr) != 0 {
			n.Attrs = make([]ir.Attr, len(x.Attr))
			for i, a := range x.Attr {
				n.Attrs[i] = ir.Attr{Space: a.Space, Name: a.Key, Value: a.Value}
			}
		}
		for _, c := range x.Child {
			if cn := fromToken(c, o); cn != nil {
				n.AppendChild(cn)
			}
		}
		return n
	case *etree.CharData:
		if o.trimWhitespace && x.IsWhitespace() {
			return nil
		}
		if x.IsCData() {
			return ir.NewCData(x.Data)
		}
		return ir.NewText(x.Data)
	case *etree.Comment:
		if !o.comments {
			return nil
		}
		return ir.NewComment(x.Data)
	case *etree.ProcInst:
		return ir.NewProcInst(x.Target, x.Inst)
	case *etree.Directive:
		return ir.NewDirective(x.Data)
	}
	return nil
}
