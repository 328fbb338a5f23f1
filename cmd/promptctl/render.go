package main

import (
	"fmt"
	"os"

	"github.com/fadilmartias/ai-resume/internal/dto"
	"github.com/fadilmartias/ai-resume/internal/resume"
	"github.com/fadilmartias/ai-resume/internal/usecase"
	"github.com/fadilmartias/ai-resume/internal/util"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Compose the tailoring prompt from a saved parse response",
	Long:  "Reads a CV parser response, normalizes its dates and prints the user prompt. With --system the system prompt is printed first.",
	RunE:  runRender,
}

var (
	renderResume string
	renderJob    string
	renderSystem bool
)

func init() {
	renderCmd.Flags().StringVarP(&renderResume, "resume", "r", "", "Path to CV parser response JSON (required)")
	renderCmd.Flags().StringVarP(&renderJob, "job", "j", "", "Path to job description text (defaults to the built-in posting)")
	renderCmd.Flags().BoolVar(&renderSystem, "system", false, "Print the system prompt before the user prompt")

	if err := renderCmd.MarkFlagRequired("resume"); err != nil {
		panic(fmt.Sprintf("failed to mark resume flag as required: %v", err))
	}

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	raw, err := os.ReadFile(renderResume)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	jobDesc := dto.DefaultAppliedJobDesc
	if renderJob != "" {
		content, err := os.ReadFile(renderJob)
		if err != nil {
			return fmt.Errorf("failed to read job description file: %w", err)
		}
		jobDesc = string(content)
	}

	cv, err := usecase.DecodeResume(raw)
	if err != nil {
		return fmt.Errorf("failed to decode resume: %w", err)
	}

	log := util.GetLogger()
	if err := resume.NewNormalizer(log).Normalize(&cv); err != nil {
		log.WithError(err).Warn("some dates could not be normalized")
	}

	out := cmd.OutOrStdout()
	if renderSystem {
		fmt.Fprintln(out, resume.SystemPrompt)
		fmt.Fprintln(out)
	}
	fmt.Fprint(out, resume.ComposePrompt(cv, jobDesc))
	return nil
}
