package search

import (
	"regexp"
	"strings"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/index"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/lifelog"
)

// QueryType tags the dominant shape of a query.
type QueryType string

const (
	TypeLookup    QueryType = "lookup"
	TypeKeyword   QueryType = "keyword"
	TypeSemantic  QueryType = "semantic"
	TypeTemporal  QueryType = "temporal"
	TypeMultiPart QueryType = "multi-part"
)

// Classification is the router's one-time analysis of a raw query.
type Classification struct {
	Type        QueryType
	HasTemporal bool
	HasEntity   bool
	IsMultiPart bool

	Terms      []string // significant terms, stopwords removed
	TimeWords  []string
	ClockTimes []string
	Entities   []string
}

// Query bundles the raw text with its classification for strategy runners.
type Query struct {
	Text           string
	Classification Classification
}

var (
	interrogativeRe = regexp.MustCompile(`(?i)^\s*(where|when|who)\b`)

	relativeTimeRe = regexp.MustCompile(`(?i)\b(today|yesterday|tonight|tomorrow|last\s+(night|week|month|year)|this\s+(morning|afternoon|evening|week|month)|(on\s+)?(monday|tuesday|wednesday|thursday|friday|saturday|sunday))\b`)

	timeOfDayRe = regexp.MustCompile(`(?i)\b(morning|afternoon|evening|night|noon|midnight|breakfast|lunch|dinner)\b`)

	conjunctionRe = regexp.MustCompile(`(?i)\b(and\s+(also|then|what|when|where|who)|as\s+well\s+as)\b|;`)
)

// semanticTermFloor is the significant-term count past which a query is
// treated as a semantic question rather than a keyword lookup.
const semanticTermFloor = 5

// Classify extracts the feature flags of a raw query and assigns its type.
// Computed once per search call; every iteration of the refinement loop
// re-classifies its refined text.
func Classify(query string) Classification {
	c := Classification{
		Terms:      index.SignificantTerms(query),
		ClockTimes: lifelog.FindClockTimes(query),
		Entities:   lifelog.ExtractEntities(query),
	}
	c.TimeWords = append(relativeTimeRe.FindAllString(query, -1), timeOfDayRe.FindAllString(query, -1)...)

	c.HasTemporal = len(c.TimeWords) > 0 || len(c.ClockTimes) > 0
	c.HasEntity = len(c.Entities) > 0
	c.IsMultiPart = strings.Count(query, "?") > 1 || conjunctionRe.MatchString(query)

	switch {
	case c.IsMultiPart:
		c.Type = TypeMultiPart
	case c.HasTemporal:
		c.Type = TypeTemporal
	case interrogativeRe.MatchString(query) && c.HasEntity:
		c.Type = TypeLookup
	case len(c.Terms) >= semanticTermFloor:
		c.Type = TypeSemantic
	default:
		c.Type = TypeKeyword
	}
	return c
}

// profiles maps each query type to the strategies worth running for it.
// Lookup queries skip the vector strategy entirely; that skip is the main
// end-to-end latency win for cheap, high-precision queries.
var profiles = map[QueryType][]Strategy{
	TypeLookup:    {StrategyFastKeyword, StrategyContextFilter, StrategyRecency},
	TypeKeyword:   {StrategyFastKeyword, StrategyVectorSemantic},
	TypeSemantic:  {StrategyFastKeyword, StrategyVectorSemantic},
	TypeTemporal:  {StrategyFastKeyword, StrategyVectorSemantic, StrategyContextFilter, StrategyRecency},
	TypeMultiPart: {StrategyFastKeyword, StrategyVectorSemantic, StrategyContextFilter, StrategyRecency},
}

// SelectStrategies maps a classification to the strategies to run and their
// fusion weights.
func SelectStrategies(c Classification, cfg Config) map[Strategy]float64 {
	selected := make(map[Strategy]float64)
	for _, s := range profiles[c.Type] {
		w := cfg.weightFor(s)
		// Semantic questions lean harder on the vector signal, but never
		// past the keyword weight.
		if c.Type == TypeSemantic && s == StrategyVectorSemantic {
			w *= 1.2
			if kw := cfg.weightFor(StrategyFastKeyword); w > kw {
				w = kw
			}
		}
		if w > 0 {
			selected[s] = w
		}
	}
	return selected
}
