package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "set",
			Description: "set a variable after merging sources, value in yaml (repeatable)",
			Type:        cli.NamedFuncOpt(cfg.setOpt, "(path=val)"),
		},
		&cli.Opt{
			Name:        "I",
			Aliases:     []string{"ifmt"},
			Description: "source format: json/j, yaml/y, cbor/c (default from extension)",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "format for -show: json/j, yaml/y, cbor/c",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "tmpl").
		WithSynopsis("tmpl [opts] [sources...]").
		WithDescription(description).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return tmplMain(cfg, cc, args)
		})
}

const description = `tmpl renders a template with variables taken from data files.

Sources are json, yaml or cbor files, optionally compressed (.gz, .zst,
.lz4).  They are merged in order: objects merge key by key and any other
value from a later source replaces the earlier one.  Variables given with
-set are merged last.

The template is read from -t or from stdin.  {{ expr }} interpolates an
expression over the variables, such as {{ user.name }} or
{{ user.name | upper() }}; {# ... #} is a comment.  Referencing a
variable that is not defined is an error; use {{ x ?? "default" }} to
allow it.

The result goes to -o or to stdout.  Nothing is written if any step
fails; the error and its causes are printed to stderr, one per line, and
tmpl exits with status 1.`
