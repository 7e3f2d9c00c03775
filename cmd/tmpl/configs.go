package main

import (
	"fmt"

	"github.com/signadot/tmpl/format"
	"github.com/signadot/tmpl/pipeline"

	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Template string `cli:"name=t aliases=template desc='template file (default stdin)'"`
	Output   string `cli:"name=o aliases=output desc='output file, created or truncated (default stdout)'"`
	Escape   bool   `cli:"name=e aliases=escape desc='html escape interpolated values'"`
	Patch    string `cli:"name=patch desc='json patch (RFC 6902) file applied to the merged variables'"`
	Show     bool   `cli:"name=show desc='print the merged variables instead of rendering'"`
	Check    bool   `cli:"name=check desc='compare the result with the -o file instead of writing it'"`

	InFormat, OutFormat *format.Format
	Overrides           []string

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fps ...**format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		for _, fp := range fps {
			*fp = &f
		}
		return f, nil
	})
}

func (cfg *MainConfig) setOpt(_ *cli.Context, a string) (any, error) {
	if _, err := pipeline.ParseOverride(a); err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Overrides = append(cfg.Overrides, a)
	return a, nil
}

func (cfg *MainConfig) pipelineConfig(sources []string) *pipeline.Config {
	res := &pipeline.Config{
		Sources:    sources,
		Template:   cfg.Template,
		Output:     cfg.Output,
		Escape:     cfg.Escape,
		InFormat:   cfg.InFormat,
		Overrides:  cfg.Overrides,
		Patch:      cfg.Patch,
		Show:       cfg.Show,
		ShowFormat: format.JSONFormat,
		Check:      cfg.Check,
	}
	if cfg.OutFormat != nil {
		res.ShowFormat = *cfg.OutFormat
	}
	return res
}
