package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/treegen/gen"
)

// backendsCmd lists the registered language backends
var backendsCmd = &cobra.Command{
	Use:   "backends",
	Short: "List registered language backends",
	Run: func(cmd *cobra.Command, args []string) {
		for _, lang := range gen.Languages() {
			fmt.Println(lang)
		}
	},
}
