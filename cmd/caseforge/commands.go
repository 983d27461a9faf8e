package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"caseforge/internal/emit"
	"caseforge/internal/normalize"
	"caseforge/internal/provider"
	"caseforge/internal/types"
)

var (
	inputPath    string
	outputPath   string
	formatHint   string
	outputFormat string
	withMetadata bool
	inlineStyles bool

	prompt        string
	systemPrompt  string
	providerName  string
	modelName     string
	allowFallback bool
	genTimeout    time.Duration
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Normalize raw model output into canonical test cases",
	Long: `Parse reads raw model output from a file or stdin, normalizes it into
canonical test-case records, and emits them in the requested format.
Parsing never fails: unparsable input yields a single fallback record.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(inputPath)
		if err != nil {
			return err
		}
		records := normalize.Parse(raw, formatHint)
		out := emit.Format(records, outputFormat, emitOptions())
		return writeOutput(outputPath, out)
	},
}

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Re-serialize canonical records into another format",
	Long: `Format reads canonical JSON records (as produced by parse) and renders
them into the requested output format.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := readInput(inputPath)
		if err != nil {
			return err
		}
		var records []types.TestCase
		if err := json.Unmarshal([]byte(raw), &records); err != nil {
			// Not strict canonical JSON; run it through the normalizer.
			records = normalize.Parse(raw, "json")
		}
		out := emit.Format(records, outputFormat, emitOptions())
		return writeOutput(outputPath, out)
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate test cases through a configured LLM provider",
	Long: `Generate sends a prompt to the selected provider, normalizes the reply
into canonical records, and emits them in the requested format. Retryable
failures back off and retry; with --fallback the remaining providers are
tried in registration order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if prompt == "" {
			return fmt.Errorf("--prompt is required")
		}

		router, err := provider.NewRouterFromEnv(configPath)
		if err != nil {
			return err
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		if genTimeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, genTimeout)
			defer cancel()
		}

		messages := []types.ChatMessage{}
		if systemPrompt != "" {
			messages = append(messages, types.ChatMessage{Role: "system", Content: systemPrompt})
		}
		messages = append(messages, types.ChatMessage{Role: "user", Content: prompt})

		opts := provider.GenerateOptions{
			Provider:      providerName,
			AllowFallback: allowFallback,
		}
		if modelName != "" {
			opts.Config = &types.GenerationConfig{Model: modelName}
		}

		raw, err := router.Generate(ctx, messages, opts)
		if err != nil {
			return err
		}

		records := normalize.Parse(raw, formatHint)
		out := emit.Format(records, outputFormat, emitOptions())
		return writeOutput(outputPath, out)
	},
}

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List configured providers and their models",
	RunE: func(cmd *cobra.Command, args []string) error {
		router, err := provider.NewRouterFromEnv(configPath)
		if err != nil {
			return err
		}
		for _, h := range router.Handles() {
			status := "available"
			if !h.Available {
				status = "unavailable"
			}
			fmt.Printf("%s (%s)\n", h.Name, status)
			for _, m := range h.SupportedModels() {
				fmt.Printf("  %s (context window %d)\n", m, h.ContextWindow(m))
			}
		}
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{parseCmd, formatCmd, generateCmd} {
		cmd.Flags().StringVarP(&inputPath, "input", "i", "", "input file (default stdin)")
		cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
		cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format: json|yaml|csv|markdown|html|gherkin|xml")
		cmd.Flags().BoolVar(&withMetadata, "metadata", false, "include generation metadata in json/yaml output")
		cmd.Flags().BoolVar(&inlineStyles, "styles", true, "embed inline styles in html output")
	}
	parseCmd.Flags().StringVar(&formatHint, "hint", "", "input format hint: json|yaml|markdown|text")
	generateCmd.Flags().StringVar(&formatHint, "hint", "", "reply format hint: json|yaml|markdown|text")

	generateCmd.Flags().StringVarP(&prompt, "prompt", "p", "", "user prompt")
	generateCmd.Flags().StringVar(&systemPrompt, "system", "", "system prompt")
	generateCmd.Flags().StringVar(&providerName, "provider", "", "provider to use (anthropic|openai|gemini)")
	generateCmd.Flags().StringVar(&modelName, "model", "", "model override")
	generateCmd.Flags().BoolVar(&allowFallback, "fallback", false, "fall back to other providers after retries are exhausted")
	generateCmd.Flags().DurationVar(&genTimeout, "timeout", 0, "overall request deadline (e.g. 90s)")
}

func emitOptions() emit.Options {
	return emit.Options{IncludeMetadata: withMetadata, InlineStyles: inlineStyles}
}

func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func writeOutput(path, content string) error {
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if path == "" || path == "-" {
		_, err := fmt.Print(content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
