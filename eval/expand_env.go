package eval

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/signadot/xmod/debug"
	"github.com/signadot/xmod/encode"
	"github.com/signadot/xmod/ir"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

func run(input string, env Env, node *ir.Node) (any, error) {
	program, err := expr.Compile(input, exprOpts(node)...)
	if err != nil {
		return nil, err
	}
	return vm.Run(program, map[string]any(env))
}

// ExpandString replaces each $[expr] in v with the result of evaluating
// expr against env.
func ExpandString(v string, env Env) (string, error) {
	return expandString(v, env, nil)
}

func expandString(v string, env Env, node *ir.Node) (string, error) {
	if len(v) < 3 || !strings.Contains(v, "$[") {
		return v, nil
	}
	exprStart := -1
	i := 0
	n := len(v)
	var outBuf []byte
	var keyBuf []byte

	for i < n-1 {
		c, next := v[i], v[i+1]
		i++
		switch c {
		case '$':
			if next == '[' && exprStart == -1 {
				exprStart = i - 1
				keyBuf = keyBuf[:0]
				i++
				continue
			}
			if exprStart == -1 {
				outBuf = append(outBuf, c)
			} else {
				keyBuf = append(keyBuf, c)
			}
		case '\\':
			if exprStart != -1 {
				keyBuf = append(keyBuf, next)
				i++
				continue
			}
			outBuf = append(outBuf, c)
		case ']':
			if exprStart != -1 {
				b, err := evalKey(string(keyBuf), env, node)
				if err != nil {
					return "", err
				}
				outBuf = append(outBuf, b...)
				exprStart = -1
				continue
			}
			outBuf = append(outBuf, c)
		default:
			if exprStart == -1 {
				outBuf = append(outBuf, c)
			} else {
				keyBuf = append(keyBuf, c)
			}
		}
	}

	if exprStart == -1 {
		if i < n {
			outBuf = append(outBuf, v[n-1])
		}
		return string(outBuf), nil
	}
	// unclosed: output literally
	if i >= n || v[n-1] != ']' {
		outBuf = append(outBuf, v[exprStart:n]...)
		return string(outBuf), nil
	}
	b, err := evalKey(string(keyBuf), env, node)
	if err != nil {
		return "", err
	}
	return string(append(outBuf, b...)), nil
}

func evalKey(key string, env Env, node *ir.Node) ([]byte, error) {
	key = strings.TrimSpace(key)
	x, err := run(key, env, node)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", key, err)
	}
	if debug.Eval() {
		debug.Logf("eval %q gave %#v\n", key, x)
	}
	b, err := anyToBytes(x)
	if err != nil {
		return nil, fmt.Errorf("could not marshal evaluation results for %s: %w", key, err)
	}
	return b, nil
}

func anyToBytes(v any) ([]byte, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(x), nil
	case float64:
		return []byte(strconv.FormatFloat(x, 'f', -1, 64)), nil
	case int:
		return []byte(strconv.Itoa(x)), nil
	case bool:
		return []byte(strconv.FormatBool(x)), nil
	case json.Number:
		return []byte(x), nil
	case *ir.Node:
		return []byte(encode.MustString(x)), nil
	default:
		return json.Marshal(v)
	}
}

// ExpandIR expands placeholders in the attribute values and text runs of
// node and its descendants, in place.
func ExpandIR(node *ir.Node, env Env) error {
	return node.Visit(func(y *ir.Node, isPost bool) (bool, error) {
		if isPost {
			return false, nil
		}
		switch y.Type {
		case ir.ElementType:
			for i := range y.Attrs {
				a := &y.Attrs[i]
				v, err := expandString(a.Value, env, y)
				if err != nil {
					return false, fmt.Errorf("%s@%s: %w", y.Path(), a.QName(), err)
				}
				a.Value = v
			}
		case ir.TextType:
			if y.CData {
				return false, nil
			}
			v, err := expandString(y.Data, env, y)
			if err != nil {
				return false, fmt.Errorf("%s: %w", y.Path(), err)
			}
			y.Data = v
		}
		return true, nil
	})
}
