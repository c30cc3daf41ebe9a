package ir

import "fmt"

type Type int

const (
	DocumentType Type = iota
	ElementType
	TextType
	CommentType
	ProcInstType
	DirectiveType
)

func (t Type) String() string {
	s, ok := map[Type]string{
		DocumentType:  "Document",
		ElementType:   "Element",
		TextType:      "Text",
		CommentType:   "Comment",
		ProcInstType:  "ProcInst",
		DirectiveType: "Directive",
	}[t]
	if ok {
		return s
	}
	return "<unknown type>"
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(d []byte) error {
	tt, ok := map[string]Type{
		"Document":  DocumentType,
		"Element":   ElementType,
		"Text":      TextType,
		"Comment":   CommentType,
		"ProcInst":  ProcInstType,
		"Directive": DirectiveType,
	}[string(d)]
	if !ok {
		return fmt.Errorf("unrecognized type %q", d)
	}
	*t = tt
	return nil
}

func Types() []Type {
	return []Type{
		DocumentType,
		ElementType,
		TextType,
		CommentType,
		ProcInstType,
		DirectiveType,
	}
}

// IsLeaf reports whether nodes of type t never carry children.
func (t Type) IsLeaf() bool {
	switch t {
	case DocumentType, ElementType:
		return false
	default:
		return true
	}
}
