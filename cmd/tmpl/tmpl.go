package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/signadot/tmpl/pipeline"

	"github.com/scott-cotton/cli"
)

func tmplMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err == nil {
		err = cfg.validate()
	}
	if err != nil {
		if errors.Is(err, cli.ErrUsage) {
			cfg.Main.Usage(cc, err)
			return cli.ExitCodeErr(1)
		}
		return err
	}
	err = pipeline.Run(cfg.pipelineConfig(args), &pipeline.IO{
		In:  cc.In,
		Out: cc.Out,
		Err: os.Stderr,
	})
	if err != nil {
		report(os.Stderr, err, colorable(os.Stderr))
		return cli.ExitCodeErr(1)
	}
	return nil
}

func (cfg *MainConfig) validate() error {
	if cfg.Check && cfg.Output == "" {
		return fmt.Errorf("%w: -check requires -o", cli.ErrUsage)
	}
	if cfg.Check && cfg.Show {
		return fmt.Errorf("%w: -check and -show are exclusive", cli.ErrUsage)
	}
	return nil
}
