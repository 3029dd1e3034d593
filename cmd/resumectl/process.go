package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"careerlaunch-backend/internal/bootstrap"
	"careerlaunch-backend/internal/llm"
	"careerlaunch-backend/internal/prompts"
	"careerlaunch-backend/internal/shared/config"
)

var newLLMClient = bootstrap.NewLLMClient

func newProcessCmd() *cobra.Command {
	var provider, model string
	cmd := &cobra.Command{
		Use:   "process <resume.pdf|resume.docx>",
		Short: "Extract a resume and structure it with the configured model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			if provider != "" {
				cfg.LLMProvider = provider
				if os.Getenv("LLM_MODEL") == "" && os.Getenv("LLM_LITE_MODEL") == "" {
					cfg.LLMModel, cfg.LLMLiteModel = config.DefaultModels(provider)
				}
			}
			if model != "" {
				cfg.LLMModel = model
			}

			text, err := readResumeText(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			client, err := newLLMClient(ctx, cfg)
			if err != nil {
				return err
			}
			if closer, ok := client.(io.Closer); ok {
				defer closer.Close()
			}
			data, err := llm.CompleteJSON(ctx, client, prompts.Extraction(text))
			if err != nil {
				return fmt.Errorf("model call: %w", err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			return enc.Encode(data)
		},
	}
	cmd.Flags().StringVar(&provider, "provider", "", "override LLM_PROVIDER (openai or gemini)")
	cmd.Flags().StringVar(&model, "model", "", "override LLM_MODEL")
	return cmd
}
