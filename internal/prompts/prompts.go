// Package prompts renders the model instructions for every AI task.
// Templates are embedded so the same inputs always produce the same prompt.
package prompts

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"careerlaunch-backend/internal/document"
	"careerlaunch-backend/internal/llm"
)

const (
	TaskExtraction   = "extraction"
	TaskPortfolio    = "portfolio"
	TaskATS          = "ats"
	TaskCoverLetter  = "cover_letter"
	TaskCareerAdvice = "career_advice"
)

const careerAdviceMaxTokens = 1000

//go:embed templates/*.txt
var templateFS embed.FS

var (
	extractionTemplate   = mustTemplate("extraction.txt")
	portfolioTemplate    = mustTemplate("portfolio.txt")
	atsTemplate          = mustTemplate("ats.txt")
	coverLetterTemplate  = mustTemplate("cover_letter.txt")
	careerAdviceTemplate = mustTemplate("career_advice.txt")
	careerAdviceSystem   = mustTemplate("career_advice_system.txt")
)

func mustTemplate(name string) string {
	raw, err := templateFS.ReadFile("templates/" + name)
	if err != nil {
		panic(fmt.Sprintf("prompts: missing template %s: %v", name, err))
	}
	return strings.TrimRight(string(raw), "\n")
}

// Extraction asks the standard model to structure raw resume text.
func Extraction(resumeText string) llm.Request {
	return llm.Request{
		Task:        TaskExtraction,
		Prompt:      render(extractionTemplate, "{{RESUME_TEXT}}", resumeText),
		JSON:        true,
		Temperature: llm.Temperature(0.3),
		Tier:        llm.TierStandard,
	}
}

// Portfolio asks for four styled landing pages built from a resume document.
func Portfolio(resume document.Document) (llm.Request, error) {
	resumeJSON, err := ResumeJSON(resume)
	if err != nil {
		return llm.Request{}, err
	}
	return llm.Request{
		Task:        TaskPortfolio,
		Prompt:      render(portfolioTemplate, "{{RESUME_JSON}}", resumeJSON),
		JSON:        true,
		Temperature: llm.Temperature(0.7),
		Tier:        llm.TierStandard,
	}, nil
}

// ATS asks the lite model to tailor a resume to a job description.
func ATS(resume document.Document, jobDescription string) (llm.Request, error) {
	resumeJSON, err := ResumeJSON(resume)
	if err != nil {
		return llm.Request{}, err
	}
	return llm.Request{
		Task: TaskATS,
		Prompt: render(atsTemplate,
			"{{RESUME_JSON}}", resumeJSON,
			"{{JOB_DESCRIPTION}}", jobDescription,
		),
		JSON: true,
		Tier: llm.TierLite,
	}, nil
}

// CoverLetter asks the lite model for a structured cover letter.
func CoverLetter(resume document.Document, jobDescription string) (llm.Request, error) {
	resumeJSON, err := ResumeJSON(resume)
	if err != nil {
		return llm.Request{}, err
	}
	return llm.Request{
		Task: TaskCoverLetter,
		Prompt: render(coverLetterTemplate,
			"{{RESUME_JSON}}", resumeJSON,
			"{{JOB_DESCRIPTION}}", jobDescription,
		),
		JSON: true,
		Tier: llm.TierLite,
	}, nil
}

// CareerAdvice is a free-text request; the reply is split into paragraphs by the caller.
func CareerAdvice(query string) llm.Request {
	return llm.Request{
		Task:        TaskCareerAdvice,
		System:      careerAdviceSystem,
		Prompt:      render(careerAdviceTemplate, "{{QUERY}}", query),
		Temperature: llm.Temperature(0.7),
		MaxTokens:   careerAdviceMaxTokens,
		Tier:        llm.TierStandard,
	}
}

// ResumeJSON renders a resume document with two-space indentation and sorted keys.
func ResumeJSON(resume document.Document) (string, error) {
	if resume == nil {
		resume = document.Document{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any(resume)); err != nil {
		return "", fmt.Errorf("encode resume data: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// render substitutes every placeholder in one pass so inserted text is never re-expanded.
func render(tmpl string, oldnew ...string) string {
	return strings.NewReplacer(oldnew...).Replace(tmpl)
}
