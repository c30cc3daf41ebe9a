package encode

type EncodeOption func(*EncState)

type EncState struct {
	indent      int
	tabs        bool
	declaration bool
	Color       func(ColorAttr, string) string
}

// EncodeIndent re-indents the output with n spaces per level. Whitespace
// only text runs are replaced. Zero keeps the input layout.
func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// EncodeTabs re-indents the output with one tab per level.
func EncodeTabs(v bool) EncodeOption {
	return func(es *EncState) { es.tabs = v }
}

// EncodeDeclaration adds an XML declaration when a document lacks one.
func EncodeDeclaration(v bool) EncodeOption {
	return func(es *EncState) { es.declaration = v }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
