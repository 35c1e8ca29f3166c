// Package cmd implements the treegen command-line interface.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teranos/treegen/errors"
	"github.com/teranos/treegen/logger"
)

var (
	flagPrefix string
	flagOutput string
	flagLang   string
	flagJSON   bool
)

// RootCmd represents the treegen command
var RootCmd = &cobra.Command{
	Use:   "treegen [config-file]",
	Short: "Generate AST class hierarchies from tree config files",
	Long: `treegen reads a tree config file describing a class hierarchy and
scaffolds the classes, a construction API and a visitor for a target language.

A config file is a list of declarations:

  abstract Expr()
  Expr Number(scalar value)
  ExprList(Expr, ExprList)
  ExprList EmptyExprList()

Supported languages: java, python, typescript

Examples:
  treegen tree.cfg                      # Generate using treegen.toml defaults
  treegen -l typescript -o src tree.cfg # Explicit language and output root
  treegen -p AST tree.cfg               # Prefix every class name with AST
  treegen -l all tree.cfg               # Every backend, one subdirectory each
  cat tree.cfg | treegen -              # Read the config from stdin`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(flagJSON, verbosity); err != nil {
			return errors.Wrap(err, "failed to initialize logger")
		}
		return nil
	},
}

func init() {
	RootCmd.RunE = runGenerate
	RootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	RootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Log as machine-readable JSON lines")
	RootCmd.PersistentFlags().StringVarP(&flagPrefix, "prefix", "p", "", "Prefix prepended to every generated class name")
	RootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Output directory root (default: generated)")
	RootCmd.PersistentFlags().StringVarP(&flagLang, "lang", "l", "", "Target language: java, python, typescript, all (default: java)")

	RootCmd.AddCommand(checkCmd)
	RootCmd.AddCommand(watchCmd)
	RootCmd.AddCommand(backendsCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
