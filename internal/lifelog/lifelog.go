// Package lifelog defines the lifelog domain model and its SQLite-backed store.
//
// A Lifelog is one recorded transcript: an opaque identifier, a title, the
// transcript body as markdown, and the wall-clock span it covers. Chunks are
// derived sub-spans used only to improve retrieval granularity; a chunk always
// resolves back to its parent lifelog before being shown to a caller.
package lifelog

import "time"

// Lifelog is one immutable transcript record.
type Lifelog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Markdown  string    `json:"markdown"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
}

// Duration returns the wall-clock span the lifelog covers.
func (l *Lifelog) Duration() time.Duration {
	return l.EndTime.Sub(l.StartTime)
}

// Chunk is a derived sub-span of a lifelog. LifelogID is a back-reference
// only; the chunk does not own its parent.
type Chunk struct {
	ID        string `json:"id"`
	LifelogID string `json:"lifelogId"`
	Position  int    `json:"position"`
	Text      string `json:"text"`

	// Extracted retrieval hints.
	TimeTags   []string `json:"timeTags,omitempty"`   // "morning", "afternoon", ...
	ClockTimes []string `json:"clockTimes,omitempty"` // "3:15pm", "14:30", ...
	Entities   []string `json:"entities,omitempty"`   // proper-noun mentions
}
