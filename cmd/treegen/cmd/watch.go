package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/treegen/errors"
	"github.com/teranos/treegen/logger"
	"github.com/teranos/treegen/watch"
)

// watchCmd regenerates whenever the config file changes
var watchCmd = &cobra.Command{
	Use:   "watch <config-file>",
	Short: "Regenerate whenever the tree config file changes",
	Long: `Watch performs an initial generation, then keeps running and regenerates
every time the config file is saved. Stop with Ctrl-C.

Examples:
  treegen watch tree.cfg
  treegen watch -l all -o src tree.cfg`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]

	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}

	regen := func() error {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrapf(err, "failed to read config file %s", path)
		}

		reg, err := buildRegistry(string(data))
		if err != nil {
			// Keep watching through transient syntax errors while the
			// user edits; surface them on stderr.
			fmt.Fprintln(os.Stderr, FormatDiagnostic(errors.WithDetailf(err, "while processing %s", path)))
			return nil
		}

		written, err := generate(reg, opts)
		if err != nil {
			return err
		}
		logger.Logger.Infow("Regenerated",
			"config", path,
			"artifacts", len(written))
		return nil
	}

	if err := regen(); err != nil {
		return err
	}

	w, err := watch.New(path, regen, logger.Logger)
	if err != nil {
		return err
	}
	defer w.Close()
	w.Start()

	fmt.Printf("Watching %s (Ctrl-C to stop)\n", path)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}
