package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/teranos/treegen/config"
	"github.com/teranos/treegen/errors"
	"github.com/teranos/treegen/gen"
	"github.com/teranos/treegen/lexer"
	"github.com/teranos/treegen/logger"
	"github.com/teranos/treegen/parser"
	"github.com/teranos/treegen/registry"

	// Register the language backends
	_ "github.com/teranos/treegen/gen/java"
	_ "github.com/teranos/treegen/gen/python"
	_ "github.com/teranos/treegen/gen/typescript"
)

// options holds the effective generation settings: treegen.toml and
// TREEGEN_* values with any explicit flags layered on top.
type options struct {
	prefix string
	output string
	lang   string
}

func resolveOptions(cmd *cobra.Command) (*options, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	opts := &options{
		prefix: cfg.Prefix,
		output: cfg.Output,
		lang:   cfg.Language,
	}

	flags := RootCmd.PersistentFlags()
	if flags.Changed("prefix") {
		opts.prefix = flagPrefix
	}
	if flags.Changed("output") {
		opts.output = flagOutput
	}
	if flags.Changed("lang") {
		opts.lang = flagLang
	}
	return opts, nil
}

// readSource returns the config text and a display name for diagnostics.
// An absent argument or "-" selects stdin.
func readSource(args []string) (string, string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", errors.Wrap(err, "failed to read config from stdin")
		}
		return string(data), "<stdin>", nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", errors.Wrapf(err, "failed to read config file %s", args[0])
	}
	return string(data), args[0], nil
}

func buildRegistry(src string) (*registry.Registry, error) {
	decls, err := parser.Parse(lexer.New(src))
	if err != nil {
		return nil, err
	}
	return registry.Build(decls)
}

// targetBackends resolves the --lang selection to concrete backends paired
// with their output roots. "all" fans out into one subdirectory per language.
func targetBackends(opts *options) ([]gen.Backend, []string, error) {
	if opts.lang == "all" {
		langs := gen.Languages()
		backends := make([]gen.Backend, len(langs))
		roots := make([]string, len(langs))
		for i, lang := range langs {
			backend, err := gen.Lookup(lang)
			if err != nil {
				return nil, nil, err
			}
			backends[i] = backend
			roots[i] = filepath.Join(opts.output, backend.Language())
		}
		return backends, roots, nil
	}

	backend, err := gen.Lookup(opts.lang)
	if err != nil {
		return nil, nil, err
	}
	return []gen.Backend{backend}, []string{opts.output}, nil
}

func generate(reg *registry.Registry, opts *options) ([]string, error) {
	backends, roots, err := targetBackends(opts)
	if err != nil {
		return nil, err
	}

	var written []string
	for i, backend := range backends {
		cfg := gen.Config{OutputRoot: roots[i], Prefix: opts.prefix}
		driver := gen.NewDriver(backend, gen.DiskWriter{}, cfg, logger.Logger)
		paths, err := driver.Generate(reg)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to generate %s artifacts", backend.Language())
		}
		written = append(written, paths...)
	}
	return written, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	src, name, err := readSource(args)
	if err != nil {
		return err
	}

	reg, err := buildRegistry(src)
	if err != nil {
		return errors.WithDetailf(err, "while processing %s", name)
	}

	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	written, err := generate(reg, opts)
	if err != nil {
		return err
	}

	if !flagJSON {
		for _, path := range written {
			fmt.Printf("✓ Generated %s\n", path)
		}
	}
	logger.Logger.Infow("Generation complete",
		"config", name,
		"classes", reg.Len(),
		"artifacts", len(written))
	return nil
}
