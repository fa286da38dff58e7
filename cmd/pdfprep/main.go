// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pdfprep CLI. It parses the
// invocation against the command schema and dispatches the validated
// configuration to the matching PDF collaborator.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfprep/internal/cli"
	"github.com/pdiddy/pdfprep/internal/extract"
	"github.com/pdiddy/pdfprep/internal/render"
	"github.com/pdiddy/pdfprep/internal/tasklog"
	"github.com/pdiddy/pdfprep/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const progname = "pdfprep"

// initConfig loads optional collaborator settings: a pdfprep.yaml in the
// working directory or ~/.config/pdfprep/, plus PDFPREP_* environment
// variables. The command parser itself reads none of this.
func initConfig() {
	_ = godotenv.Load()

	viper.SetConfigName(progname)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", progname))
	}

	viper.SetEnvPrefix("PDFPREP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("render.tool", "")
	viper.SetDefault("extract.tool", "")
	viper.SetDefault("tasklog.path", "")

	// A missing config file is fine; every setting has a default.
	_ = viper.ReadInConfig()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) > 0 && args[0] == "version" {
		fmt.Printf("%s %s\n", progname, version)
		return 0
	}

	schema := cli.DefaultSchema()
	cfg, err := cli.Parse(schema, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, schema.Usage(progname))
		return 1
	}

	initConfig()
	dispatcher, cleanup, err := buildDispatcher(cfg.Command())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cleanup()

	if err := dispatcher.Dispatch(context.Background(), cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// buildDispatcher constructs the collaborator the selected command needs.
// Construction is deferred until after parsing so that a failing invocation
// has no effect beyond its error message.
func buildDispatcher(command cli.Command) (cli.Dispatcher, func(), error) {
	cleanup := func() {}

	switch command {
	case cli.CommandRenderImages:
		renderer, err := render.New(types.RenderConfig{Tool: viper.GetString("render.tool")})
		if err != nil {
			return cli.Dispatcher{}, cleanup, err
		}
		return cli.Dispatcher{Renderer: renderer}, cleanup, nil

	case cli.CommandPreprocessText:
		var journal extract.Journal
		if path := viper.GetString("tasklog.path"); path != "" {
			store, err := tasklog.Open(path)
			if err != nil {
				return cli.Dispatcher{}, cleanup, err
			}
			journal = store
			cleanup = func() { store.Close() }
		}

		extractor, err := extract.New(types.ExtractConfig{Tool: viper.GetString("extract.tool")}, journal)
		if err != nil {
			cleanup()
			return cli.Dispatcher{}, func() {}, err
		}
		return cli.Dispatcher{Extractor: extractor}, cleanup, nil

	default:
		return cli.Dispatcher{}, cleanup, fmt.Errorf("internal: no collaborator for command %q", command)
	}
}
