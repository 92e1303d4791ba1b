package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nvaldez/feedtray/internal/model"
)

func TestNotificationFeedFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/notifications/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sekrit" {
			t.Errorf("unexpected auth header %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"unread_count": 3,
			"notifications": [
				{"id": 1, "title": "Old", "message": "older", "notification_type": "system",
				 "is_read": true, "created_at": "2026-08-01T10:00:00+00:00", "sender": "System"},
				{"id": 2, "title": "Order #9", "message": "placed", "notification_type": "order_placed",
				 "is_read": false, "created_at": "2026-08-02T10:00:00.123456+00:00", "sender": "Ana"}
			]
		}`))
	}))
	defer srv.Close()

	f := NewNotificationFeed(NewClient(srv.URL, "sekrit"), "")
	snap, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if snap.UnreadCount != 3 {
		t.Errorf("unread count = %d, want 3", snap.UnreadCount)
	}
	if len(snap.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(snap.Items))
	}
	// Most-recent-first regardless of response order.
	if snap.Items[0].ID != 2 {
		t.Errorf("first item = %d, want 2", snap.Items[0].ID)
	}
	if snap.Items[0].Category != model.CategoryOrderPlaced {
		t.Errorf("category = %q", snap.Items[0].Category)
	}
	if !snap.Items[0].Unread || snap.Items[1].Unread {
		t.Errorf("unread flags wrong: %+v", snap.Items)
	}
}

func TestMessageFeedFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"unread_count": 1,
			"messages": [
				{"id": 7, "conversation_id": 4, "sender_name": "Ben", "body": "hello there",
				 "is_read": false, "created_at": "2026-08-02T09:30:00+00:00"}
			]
		}`))
	}))
	defer srv.Close()

	f := NewMessageFeed(NewClient(srv.URL, "t"), "/api/messages/")
	snap, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if snap.UnreadCount != 1 || len(snap.Items) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	item := snap.Items[0]
	if item.Feed != model.FeedMessages || item.Title != "Ben" || item.Body != "hello there" {
		t.Errorf("unexpected item: %+v", item)
	}
	if item.Category != "" {
		t.Errorf("messages must not carry a category, got %q", item.Category)
	}
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := NewNotificationFeed(NewClient(srv.URL, "t"), "")
	if _, err := f.Fetch(context.Background()); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestFetchAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	f := NewMessageFeed(NewClient(srv.URL, "bad"), "")
	_, err := f.Fetch(context.Background())
	if !IsAuthError(err) {
		t.Fatalf("expected AuthError, got %v", err)
	}
}

func TestFetchMalformedBody(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"not json", `<html>gateway error</html>`},
		{"bad timestamp", `{"unread_count": 1, "notifications": [
			{"id": 1, "title": "x", "message": "y", "created_at": "yesterday"}]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			f := NewNotificationFeed(NewClient(srv.URL, "t"), "")
			if _, err := f.Fetch(context.Background()); err == nil {
				t.Fatal("expected error for malformed body")
			}
		})
	}
}

func TestMarkNotificationRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/notifications/42/read/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		// Without the XHR marker the backend redirects to an HTML page
		// instead of answering with JSON.
		if got := r.Header.Get("X-Requested-With"); got != "XMLHttpRequest" {
			t.Errorf("X-Requested-With = %q", got)
		}
		w.Write([]byte(`{"status": "success", "unread_count": 4}`))
	}))
	defer srv.Close()

	f := NewNotificationFeed(NewClient(srv.URL, "t"), "")
	unread, err := f.MarkRead(context.Background(), 42)
	if err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if unread != 4 {
		t.Errorf("unread = %d, want 4", unread)
	}
}

func TestMarkAllNotificationsRead(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/api/notifications/mark-all-read/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-Requested-With"); got != "XMLHttpRequest" {
			t.Errorf("X-Requested-With = %q", got)
		}
		// The backend answers this route with a redirect to an HTML
		// listing; only the status matters to the client.
		w.Write([]byte("<html>All notifications marked as read.</html>"))
	}))
	defer srv.Close()

	f := NewNotificationFeed(NewClient(srv.URL, "t"), "")
	if err := f.MarkAllRead(context.Background()); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
}

func TestRetryOn429(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"unread_count": 0, "notifications": []}`))
	}))
	defer srv.Close()

	f := NewNotificationFeed(NewClient(srv.URL, "t"), "")
	snap, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if len(snap.Items) != 0 {
		t.Errorf("expected empty items")
	}
}

func TestParseTimestampNaive(t *testing.T) {
	got, err := parseTimestamp("2026-08-02T09:30:00.250000")
	if err != nil {
		t.Fatalf("parseTimestamp: %v", err)
	}
	want := time.Date(2026, 8, 2, 9, 30, 0, 250000000, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
