package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/signadot/tmpl/format"
	"github.com/signadot/tmpl/pipeline"

	"github.com/google/go-cmp/cmp"
	"github.com/scott-cotton/cli"
)

func TestReport(t *testing.T) {
	err := &pipeline.Error{
		Stage: pipeline.Render,
		Err:   errors.New("variable not found in context: user"),
	}
	buf := bytes.NewBuffer(nil)
	report(buf, err, false)
	want := "Failed to render template\nvariable not found in context: user\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("diff (-want +got)\n%s", diff)
	}

	buf.Reset()
	report(buf, err, true)
	lines := strings.Split(buf.String(), "\n")
	if !strings.Contains(lines[0], "\x1b[") {
		t.Errorf("expected colored first line, got %q", lines[0])
	}
	if lines[1] != "variable not found in context: user" {
		t.Errorf("got %q", lines[1])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		cfg MainConfig
		ok  bool
	}{
		{cfg: MainConfig{}, ok: true},
		{cfg: MainConfig{Check: true, Output: "out"}, ok: true},
		{cfg: MainConfig{Check: true}},
		{cfg: MainConfig{Check: true, Show: true, Output: "out"}},
	}
	for _, tt := range tests {
		err := tt.cfg.validate()
		if tt.ok && err != nil {
			t.Errorf("%+v: %v", tt.cfg, err)
		}
		if !tt.ok && !errors.Is(err, cli.ErrUsage) {
			t.Errorf("%+v: expected usage error, got %v", tt.cfg, err)
		}
	}
}

func TestPipelineConfig(t *testing.T) {
	cfg := &MainConfig{Template: "t", Output: "o", Escape: true}
	if _, err := cfg.setOpt(nil, "user.id=2"); err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.setOpt(nil, "bad"); !errors.Is(err, cli.ErrUsage) {
		t.Errorf("expected usage error, got %v", err)
	}
	if _, err := cfg.fmtFunc(&cfg.OutFormat)(nil, "yaml"); err != nil {
		t.Fatal(err)
	}
	got := cfg.pipelineConfig([]string{"a.json", "b.yaml"})
	want := &pipeline.Config{
		Sources:    []string{"a.json", "b.yaml"},
		Template:   "t",
		Output:     "o",
		Escape:     true,
		Overrides:  []string{"user.id=2"},
		ShowFormat: format.YAMLFormat,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diff (-want +got)\n%s", diff)
	}
}
