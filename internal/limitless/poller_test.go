package limitless

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/db"
	"github.com/ericbuess/limitless-ai-mcp-server-sub003/internal/lifelog"
)

// pagedAPI serves two pages of lifelogs, then empty pages.
func pagedAPI(t *testing.T) *httptest.Server {
	t.Helper()
	page := func(ids []string, next string) map[string]any {
		logs := make([]map[string]any, len(ids))
		for i, id := range ids {
			logs[i] = map[string]any{
				"id":        id,
				"title":     "Entry " + id,
				"markdown":  "Transcript for " + id,
				"startTime": fmt.Sprintf("2025-06-1%dT09:00:00Z", i),
				"endTime":   fmt.Sprintf("2025-06-1%dT10:00:00Z", i),
			}
		}
		return map[string]any{
			"data": map[string]any{"lifelogs": logs},
			"meta": map[string]any{"lifelogs": map[string]any{"nextCursor": next, "count": len(logs)}},
		}
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		switch r.URL.Query().Get("cursor") {
		case "":
			body = page([]string{"log-1", "log-2"}, "p2")
		case "p2":
			body = page([]string{"log-3"}, "")
		default:
			body = page(nil, "")
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
}

func newPollerStore(t *testing.T) *lifelog.Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening db: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return lifelog.NewStore(database)
}

func TestSyncOncePullsAllPages(t *testing.T) {
	srv := pagedAPI(t)
	defer srv.Close()

	store := newPollerStore(t)
	p := NewPoller(NewClient(srv.URL, "key"), store, 0, 2, nil)

	batches := 0
	p.OnBatch = func(context.Context) error {
		batches++
		return nil
	}
	var pageCounts []int
	p.OnPage = func(n int) { pageCounts = append(pageCounts, n) }

	ctx := context.Background()
	n, err := p.SyncOnce(ctx)
	if err != nil {
		t.Fatalf("SyncOnce: %v", err)
	}
	if n != 3 {
		t.Errorf("synced = %d, want 3", n)
	}
	if batches != 1 {
		t.Errorf("OnBatch ran %d times, want 1", batches)
	}
	if len(pageCounts) != 2 {
		t.Errorf("OnPage calls = %v, want two pages", pageCounts)
	}

	count, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != 3 {
		t.Errorf("stored = %d, want 3", count)
	}

	cursor, err := store.Cursor(ctx, cursorSource)
	if err != nil {
		t.Fatalf("Cursor: %v", err)
	}
	if cursor != "p2" {
		t.Errorf("saved cursor = %q, want p2", cursor)
	}
}

func TestSyncOnceEmptyPageSkipsRebuild(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"lifelogs": []any{}},
			"meta": map[string]any{"lifelogs": map[string]any{"nextCursor": "", "count": 0}},
		})
	}))
	defer srv.Close()

	store := newPollerStore(t)
	p := NewPoller(NewClient(srv.URL, "key"), store, 0, 10, nil)
	p.OnBatch = func(context.Context) error {
		t.Error("OnBatch ran for an empty sync")
		return nil
	}

	n, err := p.SyncOnce(context.Background())
	if err != nil {
		t.Fatalf("SyncOnce: %v", err)
	}
	if n != 0 {
		t.Errorf("synced = %d, want 0", n)
	}
}

func TestSyncOnceResumesFromSavedCursor(t *testing.T) {
	var gotCursors []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCursors = append(gotCursors, r.URL.Query().Get("cursor"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{"lifelogs": []any{}},
			"meta": map[string]any{"lifelogs": map[string]any{"nextCursor": "", "count": 0}},
		})
	}))
	defer srv.Close()

	store := newPollerStore(t)
	ctx := context.Background()
	if err := store.SetCursor(ctx, cursorSource, "saved-cursor"); err != nil {
		t.Fatalf("SetCursor: %v", err)
	}

	p := NewPoller(NewClient(srv.URL, "key"), store, 0, 10, nil)
	if _, err := p.SyncOnce(ctx); err != nil {
		t.Fatalf("SyncOnce: %v", err)
	}
	if len(gotCursors) != 1 || gotCursors[0] != "saved-cursor" {
		t.Errorf("request cursors = %v, want the saved cursor", gotCursors)
	}
}
