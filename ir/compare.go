package ir

// Equal reports whether a and b are structurally identical: same types,
// names, namespace tokens, attributes in order, data and children.
// Parent links are not compared.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type || a.Space != b.Space || a.Name != b.Name {
		return false
	}
	if a.Data != b.Data || a.Target != b.Target || a.CData != b.CData {
		return false
	}
	if len(a.Attrs) != len(b.Attrs) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Attrs {
		if a.Attrs[i] != b.Attrs[i] {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
