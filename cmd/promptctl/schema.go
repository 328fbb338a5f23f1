package main

import (
	"fmt"
	"os"

	"github.com/fadilmartias/ai-resume/internal/schema"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the structured output schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := cmd.OutOrStdout().Write(schema.Raw())
		return err
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate a model response against the output schema",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read response file: %w", err)
	}
	if err := schema.Validate(string(content)); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "valid")
	return nil
}
