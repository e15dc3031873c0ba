package search

import (
	"strings"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/index"
)

// overSpecificQualifiers are hedge words stripped first when broadening a
// query; they narrow matching without adding retrievable content.
var overSpecificQualifiers = []string{
	"exactly", "specifically", "precisely", "really", "actually", "just",
}

// interrogativeLeadIns are question scaffolding removed in the second
// broadening pass.
var interrogativeLeadIns = []string{
	"where did", "where do", "where does", "where is", "where was",
	"when did", "when do", "when does", "when is", "when was",
	"who did", "who is", "who was", "who were",
	"what time did", "what time does", "what did", "what was",
	"how did", "how was",
}

// entityAliases expands recognized informal mentions to include the formal
// form, widening keyword recall.
var entityAliases = map[string]string{
	"grandma": "grandma grandmother",
	"grandpa": "grandpa grandfather",
	"mom":     "mom mother",
	"dad":     "dad father",
	"doc":     "doc doctor",
	"tv":      "tv television",
}

// Refine deterministically broadens a query for the next iteration: strip
// hedging qualifiers, then question scaffolding, then expand entity aliases,
// and finally drop the most specific trailing term. Returns the query
// unchanged when no rule applies; the iteration still counts.
func Refine(query string) string {
	trimmed := strings.TrimSpace(query)

	// 1. Hedge qualifiers.
	if out, changed := stripWords(trimmed, overSpecificQualifiers); changed {
		return out
	}

	// 2. Question scaffolding.
	lower := strings.ToLower(trimmed)
	for _, lead := range interrogativeLeadIns {
		if strings.HasPrefix(lower, lead+" ") {
			out := strings.TrimSpace(trimmed[len(lead):])
			return strings.TrimSuffix(out, "?")
		}
	}
	if strings.HasSuffix(trimmed, "?") {
		return strings.TrimSuffix(trimmed, "?")
	}

	// 3. Alias expansion.
	fields := strings.Fields(trimmed)
	for i, f := range fields {
		if expansion, ok := entityAliases[strings.ToLower(f)]; ok {
			replaced := append(append([]string{}, fields[:i]...), expansion)
			replaced = append(replaced, fields[i+1:]...)
			return strings.Join(replaced, " ")
		}
	}

	// 4. Drop the trailing significant term while enough remain to search.
	terms := index.SignificantTerms(trimmed)
	if len(terms) > 2 {
		last := terms[len(terms)-1]
		if idx := strings.LastIndex(strings.ToLower(trimmed), last); idx >= 0 {
			out := strings.TrimSpace(trimmed[:idx] + trimmed[idx+len(last):])
			if out != "" {
				return out
			}
		}
	}

	return trimmed
}

// stripWords removes every occurrence of the given lower-case words.
func stripWords(query string, words []string) (string, bool) {
	fields := strings.Fields(query)
	kept := fields[:0]
	changed := false
	for _, f := range fields {
		drop := false
		lf := strings.ToLower(strings.Trim(f, ".,!?"))
		for _, w := range words {
			if lf == w {
				drop = true
				break
			}
		}
		if drop {
			changed = true
			continue
		}
		kept = append(kept, f)
	}
	if !changed {
		return query, false
	}
	return strings.Join(kept, " "), true
}
