// Package main provides promptctl, an offline helper for inspecting resume prompts.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "promptctl",
	Short: "Inspect the prompts sent to the resume model",
	Long:  "promptctl composes the tailoring prompt from a saved CV parser response and prints the output schema, without calling any upstream service.",
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
