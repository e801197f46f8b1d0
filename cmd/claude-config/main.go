package main

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		pterm.Error.Println(err)
		fmt.Fprintln(os.Stderr)
		_ = rootCmd.Help()
		os.Exit(1)
	}
}
