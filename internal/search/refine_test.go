package search

import "testing"

func TestRefine(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "strips hedge qualifiers first",
			query: "what exactly did I eat",
			want:  "what did I eat",
		},
		{
			name:  "strips question lead-in and trailing question mark",
			query: "where did the kids go this afternoon?",
			want:  "the kids go this afternoon",
		},
		{
			name:  "strips bare trailing question mark",
			query: "sailing trip?",
			want:  "sailing trip",
		},
		{
			name:  "expands entity aliases",
			query: "grandma apple pie recipe",
			want:  "grandma grandmother apple pie recipe",
		},
		{
			name:  "drops the trailing significant term",
			query: "project deadline budget",
			want:  "project deadline",
		},
		{
			name:  "leaves short queries unchanged",
			query: "kids afternoon",
			want:  "kids afternoon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Refine(tt.query); got != tt.want {
				t.Errorf("Refine(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestRefineIsDeterministic(t *testing.T) {
	const query = "where exactly did grandma park this morning?"
	first := Refine(query)
	for i := 0; i < 5; i++ {
		if got := Refine(query); got != first {
			t.Fatalf("run %d: Refine(%q) = %q, want %q", i, query, got, first)
		}
	}
}

func TestRefineConvergesToBroaderQueries(t *testing.T) {
	// Repeated refinement must make progress and eventually reach a fixed
	// point instead of oscillating.
	query := "where exactly did the kids go this afternoon?"
	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		next := Refine(query)
		if next == query {
			return
		}
		if seen[next] {
			t.Fatalf("refinement revisited %q", next)
		}
		seen[next] = true
		query = next
	}
	t.Fatalf("refinement did not reach a fixed point, last query %q", query)
}
