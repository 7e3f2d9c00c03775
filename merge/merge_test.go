package merge

import (
	"testing"

	"github.com/signadot/tmpl/ir"
	"github.com/signadot/tmpl/parse"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, in string) *ir.Node {
	t.Helper()
	node, err := parse.Parse([]byte(in))
	if err != nil {
		t.Fatalf("could not parse %q: %v", in, err)
	}
	return node
}

func mustJSON(t *testing.T, node *ir.Node) string {
	t.Helper()
	d, err := node.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

type mergeTest struct {
	base, overlay string
	out           string
}

func TestMerge(t *testing.T) {
	tests := []mergeTest{
		{
			base:    `{"id":"1","name":"florian","path":"/users/1"}`,
			overlay: `{"id":"2"}`,
			out:     `{"id":"2","name":"florian","path":"/users/1"}`,
		},
		{
			base:    `{"user":{"id":"1","name":"florian"}}`,
			overlay: `{"user":{"id":"2","email":"f@x"},"other":true}`,
			out:     `{"user":{"id":"2","name":"florian","email":"f@x"},"other":true}`,
		},
		{
			base:    `null`,
			overlay: `{"a":{"b":1}}`,
			out:     `{"a":{"b":1}}`,
		},
		{
			base:    `{"a":1}`,
			overlay: `[1,2]`,
			out:     `[1,2]`,
		},
		{
			base:    `"scalar"`,
			overlay: `{"a":{"b":1}}`,
			out:     `{"a":{"b":1}}`,
		},
		{
			base:    `{"a":{"b":1,"c":2}}`,
			overlay: `{"a":"flat"}`,
			out:     `{"a":"flat"}`,
		},
		{
			base:    `{"a":"flat"}`,
			overlay: `{"a":{"b":1}}`,
			out:     `{"a":{"b":1}}`,
		},
		{
			base:    `{"a":[1,2,3]}`,
			overlay: `{"a":[4]}`,
			out:     `{"a":[4]}`,
		},
		{
			base:    `{"a":[{"x":1}]}`,
			overlay: `{"a":[{"y":2}]}`,
			out:     `{"a":[{"y":2}]}`,
		},
		{
			base:    `{"a":1}`,
			overlay: `{"a":null}`,
			out:     `{"a":null}`,
		},
		{
			base:    `{"a":1}`,
			overlay: `null`,
			out:     `null`,
		},
		{
			base:    `{"a":1}`,
			overlay: `{}`,
			out:     `{"a":1}`,
		},
		{
			base:    `{}`,
			overlay: `{"z":1,"y":{"x":2}}`,
			out:     `{"z":1,"y":{"x":2}}`,
		},
		{
			base:    `true`,
			overlay: `1.5`,
			out:     `1.5`,
		},
	}
	for _, tt := range tests {
		base := mustParse(t, tt.base)
		overlay := mustParse(t, tt.overlay)
		before := mustJSON(t, overlay)
		Merge(base, overlay)
		if diff := cmp.Diff(tt.out, mustJSON(t, base)); diff != "" {
			t.Errorf("merge %s into %s: diff (-want +got)\n%s", tt.overlay, tt.base, diff)
		}
		if after := mustJSON(t, overlay); after != before {
			t.Errorf("overlay modified: %s -> %s", before, after)
		}
	}
}

func TestMergeNoAliasing(t *testing.T) {
	base := mustParse(t, `{"a":1}`)
	overlay := mustParse(t, `{"b":{"c":[1]}}`)
	Merge(base, overlay)
	overlay.Get("b").Get("c").Values[0] = ir.FromInt(9)
	overlay.Get("b").Set("d", ir.FromBool(true))
	if got := mustJSON(t, base); got != `{"a":1,"b":{"c":[1]}}` {
		t.Errorf("base changed with overlay: %s", got)
	}
}

func TestMergeSelf(t *testing.T) {
	node := mustParse(t, `{"a":{"b":1}}`)
	Merge(node, node)
	if got := mustJSON(t, node); got != `{"a":{"b":1}}` {
		t.Errorf("got %s", got)
	}
}

func TestFold(t *testing.T) {
	a := mustParse(t, `{"user":{"id":"1","name":"florian","path":"/users/1"}}`)
	b := mustParse(t, `{"user":{"id":"2"}}`)
	c := mustParse(t, `{"user":{"name":"other"}}`)

	if got := mustJSON(t, Fold()); got != `null` {
		t.Errorf("Fold() = %s", got)
	}

	abc := Fold(a, b, c)
	step := Fold(a, b)
	Merge(step, c)
	if diff := cmp.Diff(mustJSON(t, abc), mustJSON(t, step)); diff != "" {
		t.Errorf("fold differs from stepwise merge: %s", diff)
	}
	want := `{"user":{"id":"2","name":"other","path":"/users/1"}}`
	if got := mustJSON(t, abc); got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestFoldOrder(t *testing.T) {
	a := mustParse(t, `{"v":"a"}`)
	b := mustParse(t, `{"v":"b"}`)
	if got := mustJSON(t, Fold(a, b)); got != `{"v":"b"}` {
		t.Errorf("got %s", got)
	}
	if got := mustJSON(t, Fold(b, a)); got != `{"v":"a"}` {
		t.Errorf("got %s", got)
	}
}

func TestMergeDeep(t *testing.T) {
	base := ir.Object()
	overlay := ir.Object()
	b, o := base, overlay
	for range 10000 {
		nb, no := ir.Object(), ir.Object()
		b.Set("k", nb)
		o.Set("k", no)
		b, o = nb, no
	}
	o.Set("leaf", ir.FromString("x"))
	Merge(base, overlay)
	if b.Get("leaf") == nil {
		t.Errorf("leaf not merged at depth")
	}
}
