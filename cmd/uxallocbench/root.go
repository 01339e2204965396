package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	jsonOut bool
)

var rootCmd = &cobra.Command{
	Use:     "uxallocbench",
	Short:   "Drive synthetic allocation workloads against uxmalloc",
	Long:    `uxallocbench exercises the allocate/resize/release front-ends of uxmalloc with synthetic workloads, reporting heap and mapping statistics along the way.`,
	Version: "0.1.0",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress every 1000 iterations")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit final stats as JSON")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}
