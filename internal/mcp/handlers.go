package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/lifelog"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/search"
)

// handleSearchLifelogs runs the consensus search engine over the lifelog corpus.
func (s *Server) handleSearchLifelogs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	resp, err := s.engine.Search(ctx, query)
	if err != nil {
		s.logger.Warn("search failed", zap.String("query", query), zap.Error(err))
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(resp.Results) > limit {
		resp.Results = resp.Results[:limit]
	}
	return mcp.NewToolResultText(formatSearchResponse(resp)), nil
}

// handleListLifelogs lists stored lifelogs, optionally restricted to one day.
func (s *Server) handleListLifelogs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}

	var logs []*lifelog.Lifelog
	var err error
	if date := request.GetString("date", ""); date != "" {
		day, parseErr := time.Parse("2006-01-02", date)
		if parseErr != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid date %q: use YYYY-MM-DD", date)), nil
		}
		logs, err = s.store.ListRange(ctx, day, day.AddDate(0, 0, 1))
	} else {
		logs, err = s.store.ListAll(ctx)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing lifelogs failed: %v", err)), nil
	}

	if len(logs) == 0 {
		return mcp.NewToolResultText("No lifelogs stored yet. Run `limitless-mcp sync` to pull them."), nil
	}

	// Newest first.
	var sb strings.Builder
	shown := 0
	for i := len(logs) - 1; i >= 0 && shown < limit; i-- {
		l := logs[i]
		sb.WriteString(fmt.Sprintf("%s  %s  %s (%s)\n",
			l.ID,
			l.StartTime.Format("2006-01-02 15:04"),
			l.Title,
			l.Duration().Round(time.Minute),
		))
		shown++
	}
	sb.WriteString(fmt.Sprintf("\n%d of %d lifelog(s) shown.", shown, len(logs)))
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetLifelog returns one full transcript.
func (s *Server) handleGetLifelog(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	l, err := s.store.GetByID(ctx, id)
	if errors.Is(err, lifelog.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("no lifelog with ID %q", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading lifelog failed: %v", err)), nil
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n", l.Title))
	sb.WriteString(fmt.Sprintf("ID: %s\nStart: %s\nDuration: %s\n\n",
		l.ID, l.StartTime.Format(time.RFC3339), l.Duration().Round(time.Second)))
	sb.WriteString(l.Markdown)
	return mcp.NewToolResultText(sb.String()), nil
}

// formatSearchResponse converts a search response into text for AI agent
// consumption, surfacing the confidence and iteration count so the consumer
// can decide how much to trust a low-confidence answer.
func formatSearchResponse(resp *search.Response) string {
	if resp.ResultCount == 0 {
		return fmt.Sprintf("No results (confidence %.2f after %d iteration(s)).", resp.Confidence, resp.Iterations)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s), confidence %.2f, %d iteration(s):\n",
		resp.ResultCount, resp.Confidence, resp.Iterations))

	for i, r := range resp.Results {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("ID: %s\n", r.DocID))
		if r.Title != "" {
			sb.WriteString(fmt.Sprintf("Title: %s\n", r.Title))
		}
		if !r.StartTime.IsZero() {
			sb.WriteString(fmt.Sprintf("Time: %s\n", r.StartTime.Format("2006-01-02 15:04")))
		}
		sb.WriteString(fmt.Sprintf("Score: %.3f\n", r.ConsensusScore))
		names := make([]string, len(r.Strategies))
		for j, st := range r.Strategies {
			names[j] = string(st)
		}
		sb.WriteString(fmt.Sprintf("Agreed by: %s\n", strings.Join(names, ", ")))
	}
	sb.WriteString("\nUse get_lifelog with an ID to read the full transcript.")
	return sb.String()
}
