package main

import (
	"os"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
