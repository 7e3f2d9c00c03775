package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/signadot/tmpl/ir"
	"github.com/signadot/tmpl/parse"
)

const vars = `{"user": {"id": "2", "name": "florian", "path": "/users/1", "age": 40, "score": 1.5, "email": null, "tags": ["a", "b"]}}`

func mustContext(t *testing.T, doc string) *Context {
	t.Helper()
	var node *ir.Node
	if doc != "" {
		var err error
		node, err = parse.Parse([]byte(doc))
		if err != nil {
			t.Fatal(err)
		}
	}
	ctx, err := NewContext(node)
	if err != nil {
		t.Fatal(err)
	}
	return ctx
}

type renderTest struct {
	in     string
	escape bool
	out    string
}

func TestRender(t *testing.T) {
	ctx := mustContext(t, vars)
	tests := []renderTest{
		{in: "", out: ""},
		{in: "no variables", out: "no variables"},
		{in: "{{ user.id }},{{ user.name }},{{ user.path }}", out: "2,florian,/users/1"},
		{in: "{{ user.path }}", out: "/users/1"},
		{in: "{{ user.path }}", escape: true, out: "&#x2F;users&#x2F;1"},
		{in: "<b>{{ '<b>' }}</b>", escape: true, out: "<b>&lt;b&gt;</b>"},
		{in: `{{ "a&b" }}`, escape: true, out: "a&amp;b"},
		{in: "{{user.age+2}}", out: "42"},
		{in: "{{ user.score }}", out: "1.5"},
		{in: "[{{ user.email }}]", out: "[]"},
		{in: "{{ user.tags }}", out: `["a","b"]`},
		{in: `{{ user.tags | join(",") }}`, out: "a,b"},
		{in: "{{ user.name | upper() }}", out: "FLORIAN"},
		{in: `{{ user.nickname ?? "none" }}`, out: "none"},
		{in: `{{ user?.nickname ?? "-" }}`, out: "-"},
		{in: `{{ missing ?? "d" }}`, out: "d"},
		{in: `{{ missing?.name ?? "d" }}`, out: "d"},
		{in: `{{ {"a": "<b>&"} }}`, out: `{"a":"<b>&"}`},
		{in: `{{ ["<", ">"] }}`, out: `["<",">"]`},
		{in: `{{ user["name"] }}`, out: "florian"},
		{in: "{{ user.tags[1] }}", out: "b"},
		{in: "{{ let x = 2; x * 3 }}", out: "6"},
		{in: "{{ user.age > 30 ? 'old' : 'young' }}", out: "old"},
		{in: `{{ "}}" }}`, out: "}}"},
		{in: "a {# comment #} b", out: "a  b"},
		{in: "a {#- comment -#} b", out: "ab"},
		{in: "x\n  {{- user.id -}}  \ny", out: "x2y"},
		{in: "{ not a tag }", out: "{ not a tag }"},
		{in: "trailing {", out: "trailing {"},
		{in: "line\n", out: "line\n"},
	}
	for _, tt := range tests {
		got, err := Render(tt.in, ctx, tt.escape)
		if err != nil {
			t.Errorf("%q: %v", tt.in, err)
			continue
		}
		if got != tt.out {
			t.Errorf("%q (escape=%t): got %q, want %q", tt.in, tt.escape, got, tt.out)
		}
	}
}

func TestRenderEmptyContext(t *testing.T) {
	ctx := mustContext(t, "")
	got, err := Render("plain {{ 1 + 1 }}", ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "plain 2" {
		t.Errorf("got %q", got)
	}
	got, err = Render(`{{ user ?? "anon" }}`, ctx, false)
	if err != nil {
		t.Fatal(err)
	}
	if got != "anon" {
		t.Errorf("got %q", got)
	}
	_, err = Render("{{ user.id }}", ctx, false)
	if !errors.Is(err, ErrVariableNotFound) {
		t.Errorf("expected ErrVariableNotFound, got %v", err)
	}
}

func TestRenderNotFound(t *testing.T) {
	ctx := mustContext(t, vars)
	tests := []struct {
		in   string
		name string
	}{
		{"{{ missing }}", "missing"},
		{"{{ user.nickname }}", "user.nickname"},
		{"{{ user.name }} {{ user.friend.name }}", "user.friend"},
		{"{{ upper(nope) }}", "nope"},
		{"{{ [user.id, other] }}", "other"},
		{"{{ let x = 1; y }}", "y"},
	}
	for _, tt := range tests {
		_, err := Render(tt.in, ctx, false)
		if !errors.Is(err, ErrVariableNotFound) {
			t.Errorf("%q: expected ErrVariableNotFound, got %v", tt.in, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.name) {
			t.Errorf("%q: error %q does not name %s", tt.in, err, tt.name)
		}
	}
}

func TestRenderSyntax(t *testing.T) {
	ctx := mustContext(t, vars)
	tests := []struct {
		in  string
		err error
	}{
		{"{{ user.id", ErrSyntax},
		{"{# open", ErrSyntax},
		{"{{ }}", ErrSyntax},
		{`{{ "open }}`, ErrSyntax},
		{"{{ user. }}", ErrSyntax},
		{"{% if user %}x{% endif %}", ErrStatement},
	}
	for _, tt := range tests {
		_, err := Render(tt.in, ctx, false)
		if !errors.Is(err, tt.err) {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.err, err)
		}
	}
}

func TestNewContext(t *testing.T) {
	for _, doc := range []string{`[1, 2]`, `"scalar"`, `3`, `true`} {
		node, err := parse.Parse([]byte(doc))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := NewContext(node); !errors.Is(err, ErrBadContext) {
			t.Errorf("%s: expected ErrBadContext, got %v", doc, err)
		}
	}
	ctx, err := NewContext(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx.vars) != 0 {
		t.Errorf("nil node gave bindings %v", ctx.vars)
	}
	ctx = mustContext(t, vars)
	if _, ok := ctx.vars["user"].(map[string]any); !ok {
		t.Errorf("user not bound to an object: %#v", ctx.vars["user"])
	}
}

func TestEscapeHTML(t *testing.T) {
	got := EscapeHTML(`<a href="/x?a=1&b='2'">`)
	want := "&lt;a href=&quot;&#x2F;x?a=1&amp;b=&#x27;2&#x27;&quot;&gt;"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
