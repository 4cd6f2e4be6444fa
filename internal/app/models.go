package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gitsight/gitsight/internal/config"
	"github.com/gitsight/gitsight/internal/insight"
	"github.com/gitsight/gitsight/internal/output"
)

var modelsFlagHost string

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available on the Ollama host",
	Long: `Models queries the configured Ollama host and lists the model names
it has pulled. Use one of them with 'analyze --model' to enable
AI-assisted analysis.`,
	RunE: runModels,
}

func init() {
	modelsCmd.Flags().StringVar(&modelsFlagHost, "host", "", "Ollama base URL (default: config)")
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	host := cfg.Ollama.Host
	if modelsFlagHost != "" {
		host = modelsFlagHost
	}

	client := insight.NewOllamaClient(host, "")
	names, err := client.ListModels(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing models on %s: %w", host, err)
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(names)
	}

	fmt.Println(output.Section("Ollama Models: " + host))
	fmt.Println()
	if len(names) == 0 {
		fmt.Println(output.StyleMuted.Render(" No models installed."))
		return nil
	}
	for _, name := range names {
		fmt.Println("  " + name)
	}
	fmt.Println()
	return nil
}
