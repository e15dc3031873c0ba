package lifelog

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// maxChunkLen bounds chunk size in characters. Blocks are grouped until the
// next block would push a chunk past this limit.
const maxChunkLen = 600

var (
	clockTimeRe = regexp.MustCompile(`\b\d{1,2}(?::\d{2})?\s?(?:am|pm|AM|PM)\b|\b\d{1,2}:\d{2}\b`)

	timeOfDayWords = []string{
		"morning", "afternoon", "evening", "night", "noon", "midnight",
		"breakfast", "lunch", "dinner",
	}
)

// ChunkLifelog splits a lifelog's flattened text into retrieval chunks and
// extracts temporal-context tags and entity mentions from each.
func ChunkLifelog(l *Lifelog) []Chunk {
	plain := Flatten(l.Markdown)
	if plain == "" {
		return nil
	}

	blocks := strings.Split(plain, "\n")
	var spans []string
	var cur strings.Builder
	for _, b := range blocks {
		b = strings.TrimSpace(b)
		if b == "" {
			continue
		}
		if cur.Len() > 0 && cur.Len()+len(b)+1 > maxChunkLen {
			spans = append(spans, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte('\n')
		}
		cur.WriteString(b)
	}
	if cur.Len() > 0 {
		spans = append(spans, cur.String())
	}

	startTag := timeOfDayTag(l.StartTime.Hour())

	chunks := make([]Chunk, 0, len(spans))
	for i, span := range spans {
		c := Chunk{
			ID:         uuid.NewString(),
			LifelogID:  l.ID,
			Position:   i,
			Text:       span,
			TimeTags:   extractTimeTags(span, startTag),
			ClockTimes: FindClockTimes(span),
			Entities:   ExtractEntities(span),
		}
		chunks = append(chunks, c)
	}
	return chunks
}

// timeOfDayTag maps an hour of day to a coarse tag.
func timeOfDayTag(hour int) string {
	switch {
	case hour < 5:
		return "night"
	case hour < 12:
		return "morning"
	case hour < 17:
		return "afternoon"
	case hour < 21:
		return "evening"
	default:
		return "night"
	}
}

// extractTimeTags collects time-of-day words mentioned in the text plus the
// tag derived from the parent lifelog's start hour.
func extractTimeTags(text, startTag string) []string {
	lower := strings.ToLower(text)
	seen := map[string]bool{startTag: true}
	tags := []string{startTag}
	for _, w := range timeOfDayWords {
		if !seen[w] && strings.Contains(lower, w) {
			seen[w] = true
			tags = append(tags, w)
		}
	}
	return tags
}

// FindClockTimes returns the clock-time mentions in text ("3:15pm", "14:30").
func FindClockTimes(text string) []string {
	return clockTimeRe.FindAllString(text, -1)
}

// ExtractEntities picks out probable proper-noun mentions: capitalized words
// that do not open a sentence. Possessives ("Mimi's") are normalized to the
// bare name. Intentionally rough; entities are a soft retrieval hint, not a
// ground truth.
func ExtractEntities(text string) []string {
	var entities []string
	seen := map[string]bool{}

	sentenceStart := true
	for _, word := range strings.Fields(text) {
		trimmed := strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && r != '\''
		})
		endsSentence := strings.ContainsAny(word, ".!?")

		if trimmed == "" {
			sentenceStart = endsSentence || sentenceStart
			continue
		}

		first := []rune(trimmed)[0]
		if !sentenceStart && unicode.IsUpper(first) {
			name := strings.TrimSuffix(strings.TrimSuffix(trimmed, "'s"), "'")
			if len(name) > 1 && !seen[name] {
				seen[name] = true
				entities = append(entities, name)
			}
		}
		sentenceStart = endsSentence
	}
	return entities
}
