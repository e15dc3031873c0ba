package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "limitless-mcp",
	Short: "Consensus search over your lifelog transcripts",
	Long: `limitless-mcp syncs your recorded lifelogs, indexes them locally, and
answers natural-language questions by running several retrieval
strategies in parallel and fusing their results into one ranked,
confidence-scored answer. It integrates with AI agents via MCP.`,
}

func Execute() error {
	// Optional .env for API keys; absence is fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".limitless.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
