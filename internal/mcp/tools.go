package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchLifelogsTool defines the search_lifelogs MCP tool.
var searchLifelogsTool = mcp.NewTool("search_lifelogs",
	mcp.WithDescription("Search recorded lifelogs with multi-strategy consensus search. Returns ranked transcripts with a confidence score."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query, e.g. \"where did the kids go this afternoon?\""),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

// listLifelogsTool defines the list_lifelogs MCP tool.
var listLifelogsTool = mcp.NewTool("list_lifelogs",
	mcp.WithDescription("List recorded lifelogs by time, newest first."),
	mcp.WithString("date",
		mcp.Description("Restrict to one day, formatted YYYY-MM-DD"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of lifelogs to return (default 20)"),
	),
)

// getLifelogTool defines the get_lifelog MCP tool.
var getLifelogTool = mcp.NewTool("get_lifelog",
	mcp.WithDescription("Get the full transcript of one lifelog by ID."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("The lifelog identifier"),
	),
)
