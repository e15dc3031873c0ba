package cmd

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/config"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/limitless"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/logger"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Pull new lifelogs from the Limitless API and rebuild the index",
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey := config.APIKey()
		if apiKey == "" {
			return fmt.Errorf("LIMITLESS_API_KEY is not set")
		}

		log := logger.Must(verbose)
		defer log.Sync()

		a, err := loadApp(log)
		if err != nil {
			return err
		}
		defer a.close()

		client := limitless.NewClient(a.cfg.API.BaseURL, apiKey)
		poller := limitless.NewPoller(client, a.store, 0, a.cfg.Sync.PageSize, log)
		poller.OnBatch = a.rebuildIndex

		bar := progressbar.NewOptions(-1,
			progressbar.OptionSetDescription("syncing lifelogs"),
			progressbar.OptionSpinnerType(14),
		)
		poller.OnPage = func(count int) {
			_ = bar.Add(count)
		}

		n, err := poller.SyncOnce(cmd.Context())
		_ = bar.Finish()
		fmt.Println()
		if err != nil {
			return fmt.Errorf("sync failed after %d lifelog(s): %w", n, err)
		}

		total, err := a.store.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("Synced %d new lifelog(s); %d total in store.\n", n, total)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
