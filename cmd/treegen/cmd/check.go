package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/treegen/errors"
	"github.com/teranos/treegen/gen"
	"github.com/teranos/treegen/logger"
)

// checkCmd verifies generated artifacts without rewriting them
var checkCmd = &cobra.Command{
	Use:   "check [config-file]",
	Short: "Check whether generated artifacts are up to date",
	Long: `Check regenerates artifacts in memory and compares them with the files
on disk, without writing anything.

Exit codes:
  0 - Artifacts are up to date
  1 - Artifacts are missing or out of date (stale files listed)

Examples:
  treegen check tree.cfg
  treegen check -l all tree.cfg`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	backends, roots, err := targetBackends(opts)
	if err != nil {
		return err
	}

	var stale []string
	for i, backend := range backends {
		cfg := gen.Config{OutputRoot: roots[i], Prefix: opts.prefix}
		result, err := gen.Check(reg, backend, cfg, logger.Logger)
		if err != nil {
			return errors.Wrapf(err, "failed to check %s artifacts", backend.Language())
		}
		stale = append(stale, result.Stale...)
	}

	if len(stale) == 0 {
		fmt.Println("✓ Artifacts are up to date")
		return nil
	}

	fmt.Println("✗ Artifacts are out of date.")
	for _, path := range stale {
		fmt.Printf("  - %s\n", path)
	}
	return errors.Newf("%d artifacts are stale - run 'treegen %s' to regenerate", len(stale), name)
}
