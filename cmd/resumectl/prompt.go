package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"careerlaunch-backend/internal/document"
	"careerlaunch-backend/internal/llm"
	"careerlaunch-backend/internal/prompts"
)

type promptFlags struct {
	resumeFile     string
	resumeData     string
	jobDescription string
	jdFile         string
	query          string
}

func newPromptCmd() *cobra.Command {
	var f promptFlags
	cmd := &cobra.Command{
		Use:       "prompt <extraction|portfolio|ats|cover_letter|career_advice>",
		Short:     "Render a model prompt to stdout",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{prompts.TaskExtraction, prompts.TaskPortfolio, prompts.TaskATS, prompts.TaskCoverLetter, prompts.TaskCareerAdvice},
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := buildPrompt(args[0], f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if req.System != "" {
				fmt.Fprintf(out, "--- system ---\n%s\n--- user ---\n", req.System)
			}
			_, err = fmt.Fprintln(out, req.Prompt)
			return err
		},
	}
	cmd.Flags().StringVar(&f.resumeFile, "resume", "", "resume file (pdf or docx) for the extraction prompt")
	cmd.Flags().StringVar(&f.resumeData, "resume-data", "", "extracted resume JSON file for generation prompts")
	cmd.Flags().StringVar(&f.jobDescription, "jd", "", "job description text")
	cmd.Flags().StringVar(&f.jdFile, "jd-file", "", "file containing the job description")
	cmd.Flags().StringVar(&f.query, "query", "", "career advice question")
	return cmd
}

func buildPrompt(task string, f promptFlags) (llm.Request, error) {
	switch task {
	case prompts.TaskExtraction:
		if f.resumeFile == "" {
			return llm.Request{}, fmt.Errorf("--resume is required for %s", task)
		}
		text, err := readResumeText(f.resumeFile)
		if err != nil {
			return llm.Request{}, err
		}
		return prompts.Extraction(text), nil
	case prompts.TaskCareerAdvice:
		if strings.TrimSpace(f.query) == "" {
			return llm.Request{}, fmt.Errorf("--query is required for %s", task)
		}
		return prompts.CareerAdvice(f.query), nil
	case prompts.TaskPortfolio, prompts.TaskATS, prompts.TaskCoverLetter:
	default:
		return llm.Request{}, fmt.Errorf("unknown prompt %q", task)
	}

	resume := document.Document{}
	if f.resumeData != "" {
		doc, err := readResumeJSON(f.resumeData)
		if err != nil {
			return llm.Request{}, err
		}
		resume = doc
	}
	if task == prompts.TaskPortfolio {
		return prompts.Portfolio(resume)
	}

	jd := f.jobDescription
	if f.jdFile != "" {
		data, err := os.ReadFile(f.jdFile)
		if err != nil {
			return llm.Request{}, fmt.Errorf("read job description: %w", err)
		}
		jd = strings.TrimSpace(string(data))
	}
	if task == prompts.TaskATS {
		return prompts.ATS(resume, jd)
	}
	return prompts.CoverLetter(resume, jd)
}
