// Package encode writes ir trees as XML.
package encode

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/xmod/ir"

	"github.com/beevik/etree"
)

const xmlDecl = `version="1.0" encoding="UTF-8"`

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		return fmt.Errorf("cannot encode nil node")
	}
	doc := etree.NewDocument()
	if node.Type == ir.DocumentType {
		for _, c := range node.Children {
			doc.AddChild(toToken(c))
		}
		if es.declaration && !hasDecl(node) {
			doc.InsertChildAt(0, etree.NewProcInst("xml", xmlDecl))
		}
	} else {
		doc.AddChild(toToken(node))
	}
	switch {
	case es.tabs:
		doc.IndentTabs()
	case es.indent > 0:
		doc.Indent(es.indent)
	}
	if es.Color == nil {
		_, err := doc.WriteTo(w)
		return err
	}
	bw := bufio.NewWriter(w)
	for _, t := range doc.Child {
		writeColored(bw, t, es)
	}
	return bw.Flush()
}

func hasDecl(doc *ir.Node) bool {
	for _, c := range doc.Children {
		if c.Type == ir.ProcInstType && c.Target == "xml" {
			return true
		}
	}
	return false
}

func toToken(n *ir.Node) etree.Token {
	switch n.Type {
	case ir.ElementType:
		e := etree.NewElement(n.Name)
		e.Space = n.Space
		for _, a := range n.Attrs {
			e.CreateAttr(a.QName(), a.Value)
		}
		for _, c := range n.Children {
			e.AddChild(toToken(c))
		}
		return e
	case ir.TextType:
		if n.CData {
			return etree.NewCData(n.Data)
		}
		return etree.NewText(n.Data)
	case ir.CommentType:
		return etree.NewComment(n.Data)
	case ir.ProcInstType:
		return etree.NewProcInst(n.Target, n.Data)
	case ir.DirectiveType:
		return etree.NewDirective(n.Data)
	case ir.DocumentType:
		// a document nested under another node is flattened
		e := etree.NewElement("")
		for _, c := range n.Children {
			e.AddChild(toToken(c))
		}
		return e
	}
	panic(fmt.Sprintf("unknown node type %s", n.Type))
}

func writeColored(w *bufio.Writer, t etree.Token, es *EncState) {
	c := es.Color
	switch x := t.(type) {
	case *etree.Element:
		tagAttr := TagColor
		if strings.HasPrefix(x.Space, "mod") {
			tagAttr = ModTagColor
		}
		w.WriteString(c(SepColor, "<"))
		w.WriteString(c(tagAttr, x.FullTag()))
		for _, a := range x.Attr {
			w.WriteByte(' ')
			w.WriteString(c(AttrNameColor, a.FullKey()))
			w.WriteString(c(SepColor, "="))
			w.WriteString(c(AttrValueColor, `"`+escape(a.Value)+`"`))
		}
		if len(x.Child) == 0 {
			w.WriteString(c(SepColor, "/>"))
			return
		}
		w.WriteString(c(SepColor, ">"))
		for _, ct := range x.Child {
			writeColored(w, ct, es)
		}
		w.WriteString(c(SepColor, "</"))
		w.WriteString(c(tagAttr, x.FullTag()))
		w.WriteString(c(SepColor, ">"))
	case *etree.CharData:
		if x.IsCData() {
			w.WriteString(c(TextColor, "<![CDATA["+x.Data+"]]>"))
			return
		}
		if x.IsWhitespace() {
			w.WriteString(x.Data)
			return
		}
		w.WriteString(c(TextColor, escape(x.Data)))
	case *etree.Comment:
		w.WriteString(c(CommentColor, "<!--"+x.Data+"-->"))
	case *etree.ProcInst:
		s := "<?" + x.Target
		if x.Inst != "" {
			s += " " + x.Inst
		}
		w.WriteString(c(DeclColor, s+"?>"))
	case *etree.Directive:
		w.WriteString(c(DeclColor, "<!"+x.Data+">"))
	}
}

func escape(s string) string {
	b := &strings.Builder{}
	xml.EscapeText(b, []byte(s))
	return b.String()
}
