package eval

import (
	"os"
	"testing"

	"github.com/signadot/xmod/encode"
	"github.com/signadot/xmod/parse"
)

type envTest struct {
	in, out string
}

func TestExpandString(t *testing.T) {
	tests := []envTest{
		{in: "abc", out: "abc"},
		{in: "$[", out: "$["},
		{in: "$[x]", out: "X"},
		{in: " $[x]", out: " X"},
		{in: "$[x", out: "$[x"},
		{in: "some $[stuff] $[here]", out: "some STUFF HERE"},
		{in: "some $[stuff] $[here] trailing", out: "some STUFF HERE trailing"},
		{in: "some $[ stuff ] $[here] trailing", out: "some STUFF HERE trailing"},
		{in: "$abc", out: "$abc"},
		{in: "a]b", out: "a]b"},
		{in: "$[n + 1]", out: "3"},
		{in: "$[flag]", out: "true"},
		{in: `$["a\]b"]`, out: "a]b"},
		{in: "$[nested.k]", out: "v"},
		{in: "$[list]", out: `[1,2]`},
		{in: "$[missing]", out: ""},
		{in: ".[x]", out: ".[x]"},
	}
	env := Env{
		"x":      "X",
		"stuff":  "STUFF",
		"here":   "HERE",
		"n":      2,
		"flag":   true,
		"nested": map[string]any{"k": "v"},
		"list":   []any{1, 2},
	}
	for i, tc := range tests {
		out, err := ExpandString(tc.in, env)
		if err != nil {
			t.Errorf("test case %d: %v", i, err)
			continue
		}
		if out != tc.out {
			t.Errorf("test case %d: %q gave %q want %q", i, tc.in, out, tc.out)
		}
	}
	if _, err := ExpandString("$[1 +]", env); err == nil {
		t.Error("expected syntax error")
	}
}

func TestScriptFuncs(t *testing.T) {
	t.Setenv("XMOD_EVAL_TEST", "hello")
	out, err := ExpandString(`$[getenv("XMOD_EVAL_TEST")]`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if out != "hello" {
		t.Errorf("got %q", out)
	}
	if os.Getenv("XMOD_EVAL_TEST") != "hello" {
		t.Error("env not set")
	}
}

func TestExpandIR(t *testing.T) {
	frag, err := parse.ParseFragment([]byte(`<mod:findName name="$[ship]">
	<mod:setAttributes crew="$[crew * 2]" where="$[whereami()]"/>
	<mod:setValue>hull $[hull]</mod:setValue>
	<raw><![CDATA[$[hull]]]></raw>
</mod:findName>`), parse.ParseTrimWhitespace(true))
	if err != nil {
		t.Fatal(err)
	}
	env := Env{"ship": "KESTREL", "crew": 3, "hull": 30}
	if err := ExpandIR(frag, env); err != nil {
		t.Fatal(err)
	}
	want := `<wrapper><mod:findName name="KESTREL"><mod:setAttributes crew="6" where="/root/findName(KESTREL)/setAttributes"/>` +
		`<mod:setValue>hull 30</mod:setValue><raw><![CDATA[$[hull]]]></raw></mod:findName></wrapper>`
	if got := encode.MustString(frag); got != want {
		t.Errorf("got\n%s\nwant\n%s", got, want)
	}

	bad, err := parse.ParseFragment([]byte(`<a k="$[(]"/>`))
	if err != nil {
		t.Fatal(err)
	}
	if err := ExpandIR(bad, nil); err == nil {
		t.Error("expected error")
	}
}

func TestTruth(t *testing.T) {
	env := Env{"profile": "dev", "level": 3}
	tests := []struct {
		cond string
		want bool
		err  bool
	}{
		{cond: "", want: true},
		{cond: "  ", want: true},
		{cond: `profile == "dev"`, want: true},
		{cond: `$[profile == "prod"]`, want: false},
		{cond: "level > 2 && profile != nil", want: true},
		{cond: "level", err: true},
		{cond: "level >", err: true},
	}
	for i, tc := range tests {
		got, err := Truth(tc.cond, env)
		if tc.err {
			if err == nil {
				t.Errorf("test case %d: expected error", i)
			}
			continue
		}
		if err != nil {
			t.Errorf("test case %d: %v", i, err)
			continue
		}
		if got != tc.want {
			t.Errorf("test case %d: got %t", i, got)
		}
	}
}

func TestMergeEnv(t *testing.T) {
	base := Env{
		"a": 1,
		"m": map[string]any{"x": "1", "y": "2"},
		"d": "gone",
	}
	over := Env{
		"m": map[string]any{"y": "3", "z": "4"},
		"d": nil,
		"b": true,
	}
	res, err := MergeEnv(base, over)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res["d"]; ok {
		t.Error("null did not delete")
	}
	m := res["m"].(map[string]any)
	if m["x"] != "1" || m["y"] != "3" || m["z"] != "4" {
		t.Errorf("got %v", m)
	}
	if res["a"] != float64(1) || res["b"] != true {
		t.Errorf("got %v", res)
	}
	if base["d"] != "gone" {
		t.Error("base modified")
	}

	res, err = MergeEnv(nil, nil)
	if err != nil || res == nil || len(res) != 0 {
		t.Errorf("got %v %v", res, err)
	}
}
