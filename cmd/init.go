package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a config file interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(cfgFile); err == nil && !initForce {
			return fmt.Errorf("%s already exists, use --force to overwrite", cfgFile)
		}

		cfg, err := config.RunWizard(cfgFile)
		if err != nil {
			return err
		}

		fmt.Printf("\nWrote %s (embedding provider: %s).\n", cfgFile, cfg.Embedding.Provider)
		fmt.Println("Set LIMITLESS_API_KEY in your environment or a .env file, then run:")
		fmt.Println("  limitless-mcp sync")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}
