package main

import (
	"fmt"
	"os"

	"github.com/teranos/treegen/cmd/treegen/cmd"
	"github.com/teranos/treegen/logger"
)

func main() {
	err := cmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, cmd.FormatDiagnostic(err))
		os.Exit(1)
	}
}
