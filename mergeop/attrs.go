package mergeop

import (
	"strconv"

	"github.com/signadot/xmod/ir"
)

// boolAttr reads a boolean attribute, which must be exactly "true" or
// "false" when present.
func boolAttr(node *ir.Node, name string, dflt bool) (bool, error) {
	v, ok := node.Attr(name)
	if !ok {
		return dflt, nil
	}
	switch v {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, malformed(node, "invalid boolean attribute %q: must be 'true' or 'false'", name)
}

func intAttr(node *ir.Node, name string, dflt int) (int, error) {
	v, ok := node.Attr(name)
	if !ok {
		return dflt, nil
	}
	i, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return 0, malformed(node, "invalid int attribute %q", name)
	}
	return int(i), nil
}

// optAttr returns the value of an optional attribute that must not be
// empty when present.
func optAttr(node *ir.Node, name string) (string, error) {
	v, ok := node.Attr(name)
	if ok && v == "" {
		return "", malformed(node, "%s attribute, when present, can't be empty", name)
	}
	return v, nil
}
