package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/AmaliaEG/ActNext-sub000/internal/model"
)

func TestFetchDecodesFeed(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/insights" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"Id":7,"Title":"Follow up","Description":"Volume dropped.","CompanyName":"Acme","SalesAnalysisId":42,"DtCreate":"2026-02-01T09:30:00Z"}]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticToken("tok-123"))
	got, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(got) != 1 || got[0].ID != 7 || got[0].CompanyName != "Acme" {
		t.Fatalf("unexpected feed: %#v", got)
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("missing bearer token, got %q", gotAuth)
	}
}

func TestFetchUsesTokenSetAfterClientConstruction(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	// The session starts empty and a token arrives later, the way an in-app
	// login lands between client construction and the first sync.
	token := ""
	client := NewClient(srv.URL, func() string { return token })
	token = "tok-after-login"

	if _, err := client.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotAuth != "Bearer tok-after-login" {
		t.Fatalf("stale token: got %q", gotAuth)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	if _, err := client.Fetch(context.Background()); err != nil {
		t.Fatalf("fetch should succeed after retries: %v", err)
	}
	if attempts != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts)
	}
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, StaticToken("expired"))
	if _, err := client.Fetch(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if attempts != 1 {
		t.Fatalf("4xx must not retry, got %d attempts", attempts)
	}
}

func TestPushFeedback(t *testing.T) {
	var received []model.FeedbackEvent
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/feedback" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	events := []model.FeedbackEvent{
		{ID: "ev-1", InsightID: 7, Kind: model.FeedbackLike, At: time.Now().UTC()},
	}
	client := NewClient(srv.URL, StaticToken("tok"))
	if err := client.PushFeedback(context.Background(), events); err != nil {
		t.Fatalf("push: %v", err)
	}
	if len(received) != 1 || received[0].InsightID != 7 {
		t.Fatalf("unexpected payload: %#v", received)
	}
}

func TestPushFeedbackEmptyQueueIsNoop(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", StaticToken("tok"))
	if err := client.PushFeedback(context.Background(), nil); err != nil {
		t.Fatalf("empty queue must not hit the network: %v", err)
	}
}
