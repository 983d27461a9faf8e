package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"caseforge/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
)

var version = "0.3.0"

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "caseforge",
	Short: "caseforge - resilient test-case normalization for LLM output",
	Long: `caseforge turns untrusted LLM output into canonical test-case records.

It accepts JSON, fenced JSON, YAML, Markdown, or plain prose, converges every
input onto one canonical record shape, and re-serializes it into json, yaml,
csv, markdown, html, gherkin, or xml. The generate command routes prompts to
a configured LLM provider with retry and optional fallback.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Initialize(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json (default ~/.caseforge/config.json)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(providersCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the caseforge version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("caseforge %s\n", version)
	},
}

func main() {
	defer logging.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
