package mergeop

import (
	"errors"
	"testing"

	"github.com/signadot/xmod/encode"
	"github.com/signadot/xmod/ir"
	"github.com/signadot/xmod/parse"
)

type patchTest struct {
	target string
	patch  string
	want   string
	err    error
	oc     *OpContext
}

func runPatch(target, patch string, oc *OpContext) (string, error) {
	doc, err := parse.Parse([]byte(target), parse.ParseTrimWhitespace(true))
	if err != nil {
		return "", err
	}
	frag, err := parse.ParseFragment([]byte(patch), parse.ParseTrimWhitespace(true))
	if err != nil {
		return "", err
	}
	prog, err := Compile(frag)
	if err != nil {
		return "", err
	}
	res, err := prog.Apply(doc, oc)
	if err != nil {
		return "", err
	}
	return encode.MustString(res), nil
}

func testPatches(t *testing.T, tests []patchTest) {
	t.Helper()
	for i, tc := range tests {
		got, err := runPatch(tc.target, tc.patch, tc.oc)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Errorf("test case %d: got error %v want %v", i, err, tc.err)
			}
			continue
		}
		if err != nil {
			t.Errorf("test case %d: %v", i, err)
			continue
		}
		if got != tc.want {
			t.Errorf("test case %d:\ngot  %s\nwant %s", i, got, tc.want)
		}
	}
}

func TestFindName(t *testing.T) {
	testPatches(t, []patchTest{
		{
			target: `<r><e name="a"/><e name="a" x="1"/><e name="b"/></r>`,
			patch:  `<mod:findName name="a"><mod:setAttributes y="2"/></mod:findName>`,
			want:   `<r><e name="a"/><e name="a" x="1" y="2"/><e name="b"/></r>`,
		},
		{
			target: `<r><a name="n"/><b name="n"/></r>`,
			patch:  `<mod:findName name="n" type="a"><mod:setAttributes hit="1"/></mod:findName>`,
			want:   `<r><a name="n" hit="1"/><b name="n"/></r>`,
		},
		{
			target: `<r><e name="AB"/><e name="XAB"/><e name="AC"/></r>`,
			patch: `<mod:findName name="A.*" regex="true" reverse="false" limit="-1">
				<mod:setAttributes m="1"/>
			</mod:findName>`,
			want: `<r><e name="AB" m="1"/><e name="XAB"/><e name="AC" m="1"/></r>`,
		},
		{
			target: `<r><e name="a"/></r>`,
			patch:  `<mod:findName name="zz"><mod:removeTag/></mod:findName>`,
			want:   `<r><e name="a"/></r>`,
		},
	})
}

func TestFindLike(t *testing.T) {
	testPatches(t, []patchTest{
		{
			target: `<r><a k="1"/><b/><a k="2"/><a k="3"/></r>`,
			patch:  `<mod:findLike type="a"><mod:setValue>v</mod:setValue></mod:findLike>`,
			want:   `<r><a k="1">v</a><b/><a k="2">v</a><a k="3">v</a></r>`,
		},
		{
			target: `<r><a k="1"/><b/><a k="2"/><a k="3"/></r>`,
			patch:  `<mod:findLike type="a"><mod:selector k="2"/><mod:removeTag/></mod:findLike>`,
			want:   `<r><a k="1"/><b/><a k="3"/></r>`,
		},
		{
			target: `<r><a>x</a><a> y </a></r>`,
			patch:  `<mod:findLike><mod:selector>y</mod:selector><mod:setAttributes hit="1"/></mod:findLike>`,
			want:   `<r><a>x</a><a hit="1"> y </a></r>`,
		},
		{
			target: `<r><a k="10"/><a k="x"/><a/></r>`,
			patch:  `<mod:findLike regex="true"><mod:selector k="\d+"/><mod:setAttributes n="1"/></mod:findLike>`,
			want:   `<r><a k="10" n="1"/><a k="x"/><a/></r>`,
		},
	})
}

func TestFindWithChildLike(t *testing.T) {
	target := `<r><ship><crew race="human"/></ship><ship><crew race="slug"/></ship><ship/><ship>text</ship></r>`
	testPatches(t, []patchTest{
		{
			target: target,
			patch: `<mod:findWithChildLike type="ship" child-type="crew">
				<mod:selector race="slug"/>
				<mod:setAttributes hit="1"/>
			</mod:findWithChildLike>`,
			want: `<r><ship><crew race="human"/></ship><ship hit="1"><crew race="slug"/></ship><ship/><ship>text</ship></r>`,
		},
		{
			target: target,
			patch:  `<mod:findWithChildLike><mod:setAttributes hit="1"/></mod:findWithChildLike>`,
			want:   `<r><ship hit="1"><crew race="human"/></ship><ship hit="1"><crew race="slug"/></ship><ship/><ship>text</ship></r>`,
		},
	})
}

func TestSlicing(t *testing.T) {
	target := `<r><i n="0"/><i n="1"/><i n="2"/><i n="3"/><i n="4"/></r>`
	testPatches(t, []patchTest{
		{
			target: target,
			patch:  `<mod:findLike type="i" start="1" limit="2"><mod:setAttributes s="1"/></mod:findLike>`,
			want:   `<r><i n="0"/><i n="1" s="1"/><i n="2" s="1"/><i n="3"/><i n="4"/></r>`,
		},
		{
			target: target,
			patch: `<mod:findLike type="i" start="1" limit="2" reverse="true">
				<mod:setAttributes s="1"/>
			</mod:findLike>`,
			want: `<r><i n="0"/><i n="1"/><i n="2" s="1"/><i n="3" s="1"/><i n="4"/></r>`,
		},
		{
			target: target,
			patch:  `<mod:findLike type="i" start="5"><mod:removeTag/></mod:findLike>`,
			want:   target,
		},
		{
			target: target,
			patch:  `<mod:findLike type="i" limit="0"><mod:removeTag/></mod:findLike>`,
			want:   target,
		},
	})
}

func TestSliceApply(t *testing.T) {
	nodes := func() []*ir.Node {
		res := make([]*ir.Node, 5)
		for i := range res {
			res[i] = ir.NewElement("", "i", ir.Attr{Name: "n", Value: string(rune('0' + i))})
		}
		return res
	}
	tests := []struct {
		s    slicing
		want string
	}{
		{slicing{start: 0, limit: -1}, "01234"},
		{slicing{start: 1, limit: 2}, "12"},
		{slicing{start: 1, limit: 2, reverse: true}, "32"},
		{slicing{start: 3, limit: 10}, "34"},
		{slicing{start: 5, limit: -1}, ""},
		{slicing{start: 0, limit: 1, reverse: true}, "4"},
	}
	for i, tc := range tests {
		got := ""
		for _, n := range tc.s.apply(nodes()) {
			v, _ := n.Attr("n")
			got += v
		}
		if got != tc.want {
			t.Errorf("test case %d: got %q want %q", i, got, tc.want)
		}
	}
}

func TestPanic(t *testing.T) {
	target := `<r><a/></r>`
	testPatches(t, []patchTest{
		{
			target: target,
			patch:  `<mod:findLike type="zz" panic="true"/>`,
			err:    ErrRequiredMatch,
		},
		{
			target: target,
			patch:  `<mod:findLike type="zz"/>`,
			want:   target,
		},
		{
			target: target,
			patch:  `<mod:findLike type="zz"/>`,
			oc:     &OpContext{ForcePanic: true},
			err:    ErrRequiredMatch,
		},
		{
			target: target,
			patch:  `<mod:findLike type="a"><mod:findLike type="b" panic="true"/></mod:findLike>`,
			err:    ErrRequiredMatch,
		},
		{
			target: target,
			patch:  `<mod:findLike type="a" start="1" panic="true"/>`,
			err:    ErrRequiredMatch,
		},
	})
}

func TestPar(t *testing.T) {
	target := `<r><x/><y/><z/></r>`
	testPatches(t, []patchTest{
		{
			target: target,
			patch: `<mod:findComposite>
				<mod:par op="NAND">
					<mod:findLike type="[xy]" regex="true"/>
					<mod:findLike type="y"/>
				</mod:par>
				<mod:setAttributes m="1"/>
			</mod:findComposite>`,
			want: `<r><x m="1"/><y/><z m="1"/></r>`,
		},
		{
			target: target,
			patch: `<mod:findComposite>
				<mod:par op="OR">
					<mod:findLike type="z"/>
					<mod:par op="AND"><mod:findLike type="x"/></mod:par>
				</mod:par>
				<mod:setAttributes m="1"/>
			</mod:findComposite>`,
			want: `<r><x m="1"/><y/><z m="1"/></r>`,
		},
		{
			target: target,
			patch: `<mod:findComposite reverse="true" limit="1">
				<mod:par op="NOR">
					<mod:findLike type="y"/>
				</mod:par>
				<mod:removeTag/>
			</mod:findComposite>`,
			want: `<r><x/><y/></r>`,
		},
		{
			target: target,
			patch: `<mod:findComposite>
				<mod:par op="AND">
					<mod:findLike type="x"/>
					<mod:findLike type="y"/>
				</mod:par>
				<mod:removeTag/>
			</mod:findComposite>`,
			want: target,
		},
	})
}

func TestCommands(t *testing.T) {
	testPatches(t, []patchTest{
		{
			target: `<r><e a="1" b="2" c="3"/></r>`,
			patch:  `<mod:findLike type="e"><mod:removeAttributes a="" b="ignored"/></mod:findLike>`,
			want:   `<r><e c="3"/></r>`,
		},
		{
			target: `<r><e a="1"/></r>`,
			patch:  `<mod:findLike type="e"><mod:setAttributes a="2" z="3"/></mod:findLike>`,
			want:   `<r><e a="2" z="3"/></r>`,
		},
		{
			target: `<r><e><x/>t</e></r>`,
			patch:  `<mod:findLike type="e"><mod:setValue>  v  </mod:setValue></mod:findLike>`,
			want:   `<r><e>v</e></r>`,
		},
		{
			target: `<r><a/><b/></r>`,
			patch: `<mod:findLike type="a">
				<mod:setAttributes k="v"/>
				<mod:removeTag/>
				<mod:setValue>never</mod:setValue>
			</mod:findLike>`,
			want: `<r><b/></r>`,
		},
		{
			target: `<r><event name="E"><choice><text>old</text></choice></event></r>`,
			patch: `<mod:findName name="E">
				<mod:findLike type="choice">
					<mod:findLike type="text"><mod:setValue>new</mod:setValue></mod:findLike>
				</mod:findLike>
			</mod:findName>`,
			want: `<r><event name="E"><choice><text>new</text></choice></event></r>`,
		},
	})
}

func TestRemoveTagStops(t *testing.T) {
	patch, err := parse.ParseFragment([]byte(`<mod:findLike>
		<mod:setAttributes k="v"/>
		<mod:removeTag/>
		<mod:setValue>never</mod:setValue>
	</mod:findLike>`))
	if err != nil {
		t.Fatal(err)
	}
	cmds, err := compileCommands(patch.Elements()[0])
	if err != nil {
		t.Fatal(err)
	}
	if len(cmds) != 3 {
		t.Fatalf("got %d commands", len(cmds))
	}
	parent := ir.NewElement("", "p")
	ctx := ir.NewElement("", "c")
	parent.AppendChild(ctx)
	if err := runCommands(ctx, cmds, nil); err != nil {
		t.Fatal(err)
	}
	if ctx.Parent != nil || len(parent.Children) != 0 {
		t.Error("context not detached")
	}
	if v, _ := ctx.Attr("k"); v != "v" {
		t.Error("setAttributes did not run")
	}
	if len(ctx.Children) != 0 {
		t.Error("setValue ran after removeTag")
	}
}

func TestPayload(t *testing.T) {
	testPatches(t, []patchTest{
		{
			target: `<r><s><a/></s></r>`,
			patch: `<mod:findLike type="s">
				<mod-prepend:first/>
				<mod-append:last k="1"><mod:keep/></mod-append:last>
			</mod:findLike>`,
			want: `<r><s><first/><a/><last k="1"><mod:keep/></last></s></r>`,
		},
		{
			target: `<r><s><a/><b/><c x="old"/><d/><e/></s></r>`,
			patch:  `<mod:findLike type="s"><mod-overwrite:c x="new"/></mod:findLike>`,
			want:   `<r><s><a/><b/><c x="new"/><d/><e/></s></r>`,
		},
		{
			target: `<r><s><a/></s></r>`,
			patch:  `<mod:findLike type="s"><mod-overwrite:c/></mod:findLike>`,
			want:   `<r><s><a/><c/></s></r>`,
		},
		{
			target: `<r><s><q:c/><c n="1"/><c n="2"/></s></r>`,
			patch:  `<mod:findLike type="s"><mod-overwrite:c n="new"/></mod:findLike>`,
			want:   `<r><s><q:c/><c n="new"/><c n="2"/></s></r>`,
		},
	})
}

func TestInsertByFind(t *testing.T) {
	list := `<r><list><a/><b/><a/><c/></list></r>`
	testPatches(t, []patchTest{
		{
			target: `<r><box/></r>`,
			patch: `<mod:findLike type="box">
				<mod:insertByFind type="before">
					<mod:findLike type="nothing"/>
					<mod-insert:item/>
				</mod:insertByFind>
			</mod:findLike>`,
			want: `<r><box><item/></box></r>`,
		},
		{
			target: list,
			patch: `<mod:findLike type="list">
				<mod:insertByFind type="after"><mod:findLike type="a"/><mod-insert:n/></mod:insertByFind>
			</mod:findLike>`,
			want: `<r><list><a/><b/><a/><n/><c/></list></r>`,
		},
		{
			target: list,
			patch: `<mod:findLike type="list">
				<mod:insertByFind type="before"><mod:findLike type="b"/><mod-insert:n/></mod:insertByFind>
			</mod:findLike>`,
			want: `<r><list><a/><n/><b/><a/><c/></list></r>`,
		},
		{
			target: list,
			patch: `<mod:findLike type="list">
				<mod:insertByFind type="after"><mod:findLike type="c"/><mod-insert:n/></mod:insertByFind>
			</mod:findLike>`,
			want: `<r><list><a/><b/><a/><c/><n/></list></r>`,
		},
		{
			target: list,
			patch: `<mod:findLike type="list">
				<mod:insertByFind type="after"><mod:findLike type="zz"/><mod-insert:n/></mod:insertByFind>
				<mod:insertByFind type="before"><mod:findLike type="zz"/><mod-insert:m/></mod:insertByFind>
			</mod:findLike>`,
			want: `<r><list><m/><a/><b/><a/><c/><n/></list></r>`,
		},
	})
}

func TestLiteralContent(t *testing.T) {
	testPatches(t, []patchTest{
		{
			target: `<r><a/></r>`,
			patch:  `<extra k="1"/><mod:findLike type="a"><mod:removeTag/></mod:findLike><mod-append:x/>`,
			want:   `<r><extra k="1"/><mod-append:x/></r>`,
		},
		{
			target: `<r/>`,
			patch:  `<!--note--><e/>`,
			want:   `<r><!--note--><e/></r>`,
		},
	})
}

func TestTargetUntouched(t *testing.T) {
	doc, err := parse.Parse([]byte(`<r><a/><b/></r>`))
	if err != nil {
		t.Fatal(err)
	}
	orig := doc.Clone()
	patch, err := parse.ParseFragment([]byte(`<mod:findLike type="a"><mod:removeTag/></mod:findLike><c/>`))
	if err != nil {
		t.Fatal(err)
	}
	origPatch := patch.Clone()
	prog, err := Compile(patch)
	if err != nil {
		t.Fatal(err)
	}
	for range 2 {
		res, err := prog.Apply(doc, nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := encode.MustString(res); got != `<r><b/><c/></r>` {
			t.Errorf("got %s", got)
		}
	}
	if !ir.Equal(doc, orig) {
		t.Error("target was modified")
	}
	if !ir.Equal(patch, origPatch) {
		t.Error("patch was modified")
	}
}

func TestCompileErrors(t *testing.T) {
	patches := []struct {
		in  string
		err error
	}{
		{`<mod:bogus/>`, ErrMalformed},
		{`<mod:setValue/>`, ErrMalformed},
		{`<mod:selector/>`, ErrMalformed},
		{`<mod:findName/>`, ErrMalformed},
		{`<mod:findName name=""/>`, ErrMalformed},
		{`<mod:findName name="x" type=""/>`, ErrMalformed},
		{`<mod:findLike start="-1"/>`, ErrMalformed},
		{`<mod:findLike limit="-2"/>`, ErrMalformed},
		{`<mod:findLike start="x"/>`, ErrMalformed},
		{`<mod:findLike reverse="yes"/>`, ErrMalformed},
		{`<mod:findLike panic="1"/>`, ErrMalformed},
		{`<mod:findLike regex="TRUE"/>`, ErrMalformed},
		{`<mod:findLike type=""/>`, ErrMalformed},
		{`<mod:findLike><mod:selector a=""/></mod:findLike>`, ErrMalformed},
		{`<mod:findWithChildLike><mod:selector a=""/></mod:findWithChildLike>`, ErrMalformed},
		{`<mod:findWithChildLike child-type=""/>`, ErrMalformed},
		{`<mod:findComposite/>`, ErrMalformed},
		{`<mod:findComposite><mod:par/></mod:findComposite>`, ErrMalformed},
		{`<mod:findComposite><mod:par op="XOR"/></mod:findComposite>`, ErrMalformed},
		{`<mod:findComposite><mod:par op="OR"><plain/></mod:par></mod:findComposite>`, ErrMalformed},
		{`<mod:findComposite><mod:par op="OR"><mod:setValue/></mod:par></mod:findComposite>`, ErrMalformed},
		{`<mod:findComposite limit="-5"><mod:par op="OR"/></mod:findComposite>`, ErrMalformed},
		{`<mod:findLike><mod:bogus/></mod:findLike>`, ErrMalformed},
		{`<mod:findLike><plain/></mod:findLike>`, ErrMalformed},
		{`<mod:findLike><mod-insert:x/></mod:findLike>`, ErrMalformed},
		{`<mod:findLike><mod:findLike><mod:bogus/></mod:findLike></mod:findLike>`, ErrMalformed},
		{`<mod:findLike><mod:insertByFind><mod:findLike/><mod-insert:x/></mod:insertByFind></mod:findLike>`, ErrMalformed},
		{`<mod:findLike><mod:insertByFind type="around"><mod:findLike/><mod-insert:x/></mod:insertByFind></mod:findLike>`, ErrMalformed},
		{`<mod:findLike><mod:insertByFind type="after"><mod-insert:x/></mod:insertByFind></mod:findLike>`, ErrMalformed},
		{`<mod:findLike><mod:insertByFind type="after"><mod:findLike/></mod:insertByFind></mod:findLike>`, ErrMalformed},
		{`<mod:findLike><mod:insertByFind type="after"><mod:setValue/><mod-insert:x/></mod:insertByFind></mod:findLike>`, ErrMalformed},
		{`<mod:findLike><mod:insertByFind type="after"><mod:findLike/><mod:findLike/><mod-insert:x/></mod:insertByFind></mod:findLike>`, ErrMalformed},
		{`<mod:findLike><mod:insertByFind type="after"><mod:findLike/><mod-insert:x/><mod-insert:y/></mod:insertByFind></mod:findLike>`, ErrMalformed},
		{`<mod:findLike><mod:insertByFind type="after"><mod:findLike/><mod-append:x/></mod:insertByFind></mod:findLike>`, ErrMalformed},
		{`<mod:findLike type="(" regex="true"/>`, ErrRegexSyntax},
		{`<mod:findLike type="(" regex="true"/>`, ErrMalformed},
		{`<mod:findName name="[" regex="true"/>`, ErrRegexSyntax},
		{`<mod:findWithChildLike type="(" regex="true"/>`, ErrRegexSyntax},
	}
	for i, tc := range patches {
		frag, err := parse.ParseFragment([]byte(tc.in))
		if err != nil {
			t.Fatalf("test case %d: %v", i, err)
		}
		_, err = Compile(frag)
		if !errors.Is(err, tc.err) {
			t.Errorf("test case %d: %s: got %v want %v", i, tc.in, err, tc.err)
		}
	}
}

func TestErrorPaths(t *testing.T) {
	frag, err := parse.ParseFragment([]byte(`<mod:findName name="E"><mod:findLike><mod:bogus/></mod:findLike></mod:findName>`))
	if err != nil {
		t.Fatal(err)
	}
	_, err = Compile(frag)
	var ie *InstructionError
	if !errors.As(err, &ie) {
		t.Fatalf("got %v", err)
	}
	if ie.Path != "/root/findName(E)/findLike/bogus" {
		t.Errorf("got path %q", ie.Path)
	}
	if ie.Tag != "mod:bogus" {
		t.Errorf("got tag %q", ie.Tag)
	}

	locs := []struct {
		in  string
		loc string
	}{
		{`<mod:findLike type="(" regex="true"/>`, "type or child-type"},
		{`<mod:findLike regex="true"><mod:selector k="["/></mod:findLike>`, "k attribute"},
		{`<mod:findLike regex="true"><mod:selector>(</mod:selector></mod:findLike>`, "selector tag value"},
		{`<mod:findName name="(" regex="true"/>`, "name attribute"},
		{`<mod:findWithChildLike child-type="(" regex="true"/>`, "type or child-type"},
		{`<mod:findWithChildLike type="(" regex="true"/>`, "find tag type"},
	}
	for i, tc := range locs {
		frag, err := parse.ParseFragment([]byte(tc.in))
		if err != nil {
			t.Fatal(err)
		}
		_, err = Compile(frag)
		var re *RegexError
		if !errors.As(err, &re) {
			t.Errorf("test case %d: got %v", i, err)
			continue
		}
		if re.Location != tc.loc {
			t.Errorf("test case %d: got location %q want %q", i, re.Location, tc.loc)
		}
		if re.Path == "" {
			t.Errorf("test case %d: no path", i)
		}
	}

	_, err = runPatch(`<r/>`, `<mod:findLike type="a" panic="true"/>`, nil)
	if !errors.As(err, &ie) || ie.Path != "/root/findLike" {
		t.Errorf("got %v", err)
	}
}

func TestCompileFind(t *testing.T) {
	frag, err := parse.ParseFragment([]byte(`<mod:findLike type="a"><mod:removeTag/></mod:findLike><mod:setValue/>`))
	if err != nil {
		t.Fatal(err)
	}
	els := frag.Elements()
	f, err := CompileFind(els[0])
	if err != nil {
		t.Fatal(err)
	}
	doc, err := parse.Parse([]byte(`<r><a/><b/><a/></r>`))
	if err != nil {
		t.Fatal(err)
	}
	matches, err := f.Find(doc.RootElement(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(matches) != 2 {
		t.Errorf("got %d matches", len(matches))
	}
	if _, err := CompileFind(els[1]); !errors.Is(err, ErrMalformed) {
		t.Errorf("got %v", err)
	}
}

func TestSymbols(t *testing.T) {
	finds := 0
	for _, s := range Symbols() {
		if Lookup(s.String()) != s {
			t.Errorf("lookup %s", s)
		}
		if s.IsFind() {
			finds++
		}
	}
	if finds != 4 {
		t.Errorf("got %d find symbols", finds)
	}
	if err := Register(SetValue()); !errors.Is(err, ErrSymbolExists) {
		t.Errorf("got %v", err)
	}
}
