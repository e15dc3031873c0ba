package lifelog

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestChunkLifelogSingleChunk(t *testing.T) {
	l := &Lifelog{
		ID:        "log-1",
		Title:     "Visit",
		Markdown:  "The kids went over to Mimi's house. Dinner was at 6:30pm.",
		StartTime: time.Date(2025, 6, 10, 15, 0, 0, 0, time.UTC),
	}
	chunks := ChunkLifelog(l)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}

	c := chunks[0]
	if c.LifelogID != "log-1" || c.Position != 0 {
		t.Errorf("chunk identity = %s/%d, want log-1/0", c.LifelogID, c.Position)
	}
	if c.ID == "" {
		t.Error("chunk ID is empty")
	}

	// 15:00 start maps to the afternoon tag; "dinner" is mentioned in text.
	hasTag := func(tag string) bool {
		for _, g := range c.TimeTags {
			if g == tag {
				return true
			}
		}
		return false
	}
	if !hasTag("afternoon") {
		t.Errorf("time tags = %v, want afternoon from the start hour", c.TimeTags)
	}
	if !hasTag("dinner") {
		t.Errorf("time tags = %v, want dinner from the text", c.TimeTags)
	}

	if want := []string{"6:30pm"}; !reflect.DeepEqual(c.ClockTimes, want) {
		t.Errorf("clock times = %v, want %v", c.ClockTimes, want)
	}
	if want := []string{"Mimi"}; !reflect.DeepEqual(c.Entities, want) {
		t.Errorf("entities = %v, want %v", c.Entities, want)
	}
}

func TestChunkLifelogSplitsLongText(t *testing.T) {
	line := strings.Repeat("one sentence about nothing much at all ", 4)
	var md strings.Builder
	for i := 0; i < 12; i++ {
		md.WriteString(line)
		md.WriteString("\n\n")
	}
	l := &Lifelog{
		ID:        "log-long",
		Markdown:  md.String(),
		StartTime: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
	}

	chunks := ChunkLifelog(l)
	if len(chunks) < 2 {
		t.Fatalf("got %d chunks, want the text split into several", len(chunks))
	}
	for i, c := range chunks {
		if c.Position != i {
			t.Errorf("chunk %d position = %d", i, c.Position)
		}
		if len(c.Text) > 2*maxChunkLen {
			t.Errorf("chunk %d length = %d, far past the limit", i, len(c.Text))
		}
	}
}

func TestChunkLifelogEmpty(t *testing.T) {
	l := &Lifelog{ID: "log-empty", Markdown: ""}
	if chunks := ChunkLifelog(l); chunks != nil {
		t.Fatalf("got %d chunks for empty markdown, want none", len(chunks))
	}
}

func TestFindClockTimes(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"meet at 3:15pm sharp", []string{"3:15pm"}},
		{"train leaves 14:30", []string{"14:30"}},
		{"9am standup then 5 pm wrapup", []string{"9am", "5 pm"}},
		{"no times here", nil},
	}
	for _, tt := range tests {
		got := FindClockTimes(tt.text)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FindClockTimes(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestExtractEntities(t *testing.T) {
	got := ExtractEntities("We drove to Mimi's house. Sarah stayed home with Rex.")
	want := []string{"Mimi", "Rex"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExtractEntities = %v, want %v (sentence-opening words excluded)", got, want)
	}
}

func TestExtractEntitiesNone(t *testing.T) {
	if got := ExtractEntities("nothing capitalized in here at all"); got != nil {
		t.Errorf("ExtractEntities = %v, want none", got)
	}
}
