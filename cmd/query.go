package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/logger"
)

var queryJSON bool

var queryCmd = &cobra.Command{
	Use:   "query <question>",
	Short: "Search your lifelogs from the command line",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")

		log := logger.Must(verbose)
		defer log.Sync()

		a, err := loadApp(log)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.rebuildIndex(cmd.Context()); err != nil {
			return err
		}

		resp, err := a.engine.Search(cmd.Context(), question)
		if err != nil {
			return err
		}

		if queryJSON {
			out, err := json.MarshalIndent(resp, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		if resp.ResultCount == 0 {
			fmt.Println("No results.")
			return nil
		}

		fmt.Printf("Confidence %.2f after %d iteration(s):\n\n", resp.Confidence, resp.Iterations)
		for i, r := range resp.Results {
			names := make([]string, len(r.Strategies))
			for j, s := range r.Strategies {
				names[j] = string(s)
			}
			fmt.Printf("%2d. %s  (score %.3f)\n", i+1, r.Title, r.ConsensusScore)
			fmt.Printf("    %s  via %s\n", r.StartTime.Format("Mon Jan 2 15:04"), strings.Join(names, ", "))
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "print the raw response as JSON")
	rootCmd.AddCommand(queryCmd)
}
