package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/edugrade/similarity-service/internal/models"
)

func TestSubmissionClient_GetSubmissions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/submissions" {
			t.Errorf("path = %s, want /api/v1/submissions", r.URL.Path)
		}
		if got := r.URL.Query().Get("course"); got != "BIO-101" {
			t.Errorf("course query = %q, want BIO-101", got)
		}
		if got := r.URL.Query().Get("type"); got != "essay" {
			t.Errorf("type query = %q, want essay", got)
		}

		json.NewEncoder(w).Encode(submissionListResponse{
			Submissions: []models.SubmissionRef{
				{StudentID: "alice@school.edu", Course: "BIO-101", RawText: "text one"},
				{StudentID: "bob@school.edu", Course: "BIO-101", RawText: "text two"},
			},
		})
	}))
	defer server.Close()

	client := NewSubmissionClient(server.URL, "/api/v1/submissions", 5*time.Second, 2, time.Millisecond, zerolog.Nop())

	subs, err := client.GetSubmissions(context.Background(), models.BatchScope{Course: "BIO-101", SubmissionType: "essay"})
	if err != nil {
		t.Fatalf("GetSubmissions failed: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("got %d submissions, want 2", len(subs))
	}
	if subs[0].StudentID != "alice@school.edu" {
		t.Errorf("first student = %q", subs[0].StudentID)
	}
}

func TestSubmissionClient_NoScopeOmitsQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("query = %q, want empty for an unscoped fetch", r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(submissionListResponse{})
	}))
	defer server.Close()

	client := NewSubmissionClient(server.URL, "/api/v1/submissions", 5*time.Second, 0, time.Millisecond, zerolog.Nop())

	if _, err := client.GetSubmissions(context.Background(), models.BatchScope{}); err != nil {
		t.Fatalf("GetSubmissions failed: %v", err)
	}
}

func TestSubmissionClient_RetriesThenSucceeds(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			http.Error(w, "temporarily unavailable", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(submissionListResponse{
			Submissions: []models.SubmissionRef{{StudentID: "alice@school.edu"}},
		})
	}))
	defer server.Close()

	client := NewSubmissionClient(server.URL, "/api/v1/submissions", 5*time.Second, 3, time.Millisecond, zerolog.Nop())

	subs, err := client.GetSubmissions(context.Background(), models.BatchScope{})
	if err != nil {
		t.Fatalf("GetSubmissions failed after retries: %v", err)
	}
	if len(subs) != 1 {
		t.Errorf("got %d submissions, want 1", len(subs))
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server saw %d calls, want 3", got)
	}
}

func TestSubmissionClient_ExhaustsRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewSubmissionClient(server.URL, "/api/v1/submissions", 5*time.Second, 2, time.Millisecond, zerolog.Nop())

	if _, err := client.GetSubmissions(context.Background(), models.BatchScope{}); err == nil {
		t.Fatal("GetSubmissions should fail once retries are exhausted")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server saw %d calls, want 3 (initial + 2 retries)", got)
	}
}
