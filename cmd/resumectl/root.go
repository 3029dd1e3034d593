package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"careerlaunch-backend/internal/document"
	"careerlaunch-backend/internal/extract"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "resumectl",
		Short:        "Extract, prompt and process resumes locally",
		SilenceUsage: true,
	}
	root.AddCommand(newExtractCmd(), newPromptCmd(), newProcessCmd())
	return root
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <resume.pdf|resume.docx>",
		Short: "Print the text extracted from a resume file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readResumeText(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
}

func readResumeText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume: %w", err)
	}
	text, err := extract.ExtractText(data, filepath.Base(path))
	if err != nil {
		return "", fmt.Errorf("extract resume text: %w", err)
	}
	return text, nil
}

func readResumeJSON(path string) (document.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resume data: %w", err)
	}
	doc, err := document.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse resume data: %w", err)
	}
	return doc, nil
}
