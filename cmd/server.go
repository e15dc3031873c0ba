package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/config"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/limitless"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/logger"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/server"
)

var serverAllowAll bool

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP search API with background syncing",
	Long: `Starts an HTTP server exposing /api/search and /api/lifelogs, and keeps
the corpus fresh by polling the Limitless API in the background. Each
completed sync batch publishes a new index generation; queries in flight
keep the one they started with.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Must(verbose)
		defer log.Sync()

		a, err := loadApp(log)
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		if err := a.rebuildIndex(ctx); err != nil {
			log.Warn("initial index build failed; serving empty index")
		}

		if apiKey := config.APIKey(); apiKey != "" {
			client := limitless.NewClient(a.cfg.API.BaseURL, apiKey)
			poller := limitless.NewPoller(
				client,
				a.store,
				time.Duration(a.cfg.Sync.IntervalMinutes)*time.Minute,
				a.cfg.Sync.PageSize,
				log,
			)
			poller.OnBatch = a.rebuildIndex
			go func() {
				if err := poller.Run(ctx); err != nil && ctx.Err() == nil {
					log.Warn("background poller stopped")
				}
			}()
		} else {
			log.Info("LIMITLESS_API_KEY not set; background sync disabled")
		}

		srv := server.New(server.Config{
			Port:     a.cfg.Server.Port,
			AllowAll: serverAllowAll,
		}, a.engine, a.store, log)
		return srv.Start(ctx)
	},
}

func init() {
	serverCmd.Flags().BoolVar(&serverAllowAll, "allow-all-origins", false, "allow all CORS origins (dev mode)")
	rootCmd.AddCommand(serverCmd)
}
