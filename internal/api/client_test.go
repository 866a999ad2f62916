package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ShayCichocki/rogueday/pkg/models"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(ClientConfig{
		BaseURL:  srv.URL,
		InitData: "test-init-data",
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient(ClientConfig{InitData: "x"}); err == nil {
		t.Error("expected error for missing base URL")
	}
	if _, err := NewClient(ClientConfig{BaseURL: "http://localhost"}); err == nil {
		t.Error("expected error when both init data and telegram id are missing")
	}
	if _, err := NewClient(ClientConfig{BaseURL: "http://localhost", TelegramID: 42}); err != nil {
		t.Errorf("telegram id alone should be accepted: %v", err)
	}
}

func TestAuthHeader(t *testing.T) {
	var gotHeader string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Telegram-Init-Data")
		json.NewEncoder(w).Encode(models.Run{ID: 1, Status: models.RunStatusActive})
	}))

	if _, err := client.CurrentRun(context.Background()); err != nil {
		t.Fatalf("CurrentRun failed: %v", err)
	}
	if gotHeader != "test-init-data" {
		t.Errorf("init data header = %q, want 'test-init-data'", gotHeader)
	}
}

func TestDevModeTelegramIDQuery(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.URL.Query().Get("telegram_id")
		json.NewEncoder(w).Encode(models.Run{ID: 1})
	}))
	defer srv.Close()

	client, err := NewClient(ClientConfig{BaseURL: srv.URL, TelegramID: 991})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	if _, err := client.CurrentRun(context.Background()); err != nil {
		t.Fatalf("CurrentRun failed: %v", err)
	}
	if gotID != "991" {
		t.Errorf("telegram_id query = %q, want '991'", gotID)
	}
}

func TestCurrentRunNoActiveRun(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "No active run"})
	}))

	run, err := client.CurrentRun(context.Background())
	if err != nil {
		t.Fatalf("404 on current run should not be an error: %v", err)
	}
	if run != nil {
		t.Errorf("expected nil run, got %+v", run)
	}
}

func TestCurrentRunDecodesNaiveTimestamps(t *testing.T) {
	// The backend emits zone-less UTC timestamps. The whole mirror sync
	// rides on this decode, so it must not reject them.
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"id": 1,
			"run_date": "2025-03-10",
			"status": "active",
			"started_at": "2025-03-10T08:00:00",
			"tasks": [
				{"id": 2, "title": "deep work", "tier": 3, "duration": 25,
				 "status": "active", "use_timer": true,
				 "created_at": "2025-03-10T08:00:00.123456",
				 "started_at": "2025-03-10T09:30:00"}
			]
		}`))
	}))

	run, err := client.CurrentRun(context.Background())
	if err != nil {
		t.Fatalf("CurrentRun failed on naive timestamps: %v", err)
	}
	if !run.StartedAt.Equal(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("run started_at = %v, want 08:00 UTC", run.StartedAt)
	}
	task := run.TaskByID(2)
	if task.StartedAt == nil || !task.StartedAt.Equal(time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("task started_at = %v, want 09:30 UTC", task.StartedAt)
	}
}

func TestErrorNormalization(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"detail field", http.StatusBadRequest, `{"detail":"Not enough energy"}`, "Not enough energy"},
		{"no detail field", http.StatusInternalServerError, `{"oops":true}`, "API error: 500"},
		{"garbage body", http.StatusBadGateway, `<html>`, "API error: 502"},
		{"empty body", http.StatusConflict, ``, "API error: 409"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			_, err := client.StartRun(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *api.Error, got %T", err)
			}
			if apiErr.Status != tt.status {
				t.Errorf("status = %d, want %d", apiErr.Status, tt.status)
			}
			if apiErr.Detail != tt.wantDetail {
				t.Errorf("detail = %q, want %q", apiErr.Detail, tt.wantDetail)
			}
		})
	}
}

func TestTaskEndpoints(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /tasks", func(w http.ResponseWriter, r *http.Request) {
		var spec models.TaskSpec
		if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
			t.Errorf("decode spec: %v", err)
		}
		if spec.Title != "write report" || spec.Tier != models.Tier2 {
			t.Errorf("unexpected spec: %+v", spec)
		}
		json.NewEncoder(w).Encode(models.Task{
			ID: 7, Title: spec.Title, Tier: spec.Tier,
			Duration: spec.Duration, Status: models.TaskStatusPending,
			XPEarned: 130, EnergyCost: 5, UseTimer: spec.UseTimer,
		})
	})
	mux.HandleFunc("POST /tasks/7/start", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Task{ID: 7, Status: models.TaskStatusActive})
	})
	mux.HandleFunc("POST /tasks/7/complete", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Task{ID: 7, Status: models.TaskStatusCompleted})
	})
	mux.HandleFunc("POST /tasks/7/fail", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.Task{ID: 7, Status: models.TaskStatusFailed})
	})
	mux.HandleFunc("DELETE /tasks/7", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	client := newTestClient(t, mux)
	ctx := context.Background()

	task, err := client.CreateTask(ctx, models.TaskSpec{
		Title: "write report", Tier: models.Tier2, Duration: 20, UseTimer: true,
	})
	if err != nil {
		t.Fatalf("CreateTask failed: %v", err)
	}
	if task.ID != 7 || task.XPEarned != 130 {
		t.Errorf("unexpected task: %+v", task)
	}

	if task, err = client.StartTask(ctx, 7); err != nil || task.Status != models.TaskStatusActive {
		t.Errorf("StartTask = (%+v, %v)", task, err)
	}
	if task, err = client.CompleteTask(ctx, 7); err != nil || task.Status != models.TaskStatusCompleted {
		t.Errorf("CompleteTask = (%+v, %v)", task, err)
	}
	if task, err = client.FailTask(ctx, 7); err != nil || task.Status != models.TaskStatusFailed {
		t.Errorf("FailTask = (%+v, %v)", task, err)
	}
	if err = client.DeleteTask(ctx, 7); err != nil {
		t.Errorf("DeleteTask failed: %v", err)
	}
}

func TestExtractRun(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/runs/3/extract" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.Extraction{
			ID: 11, RunID: 3, FinalXP: 450, PenaltyXP: 50, TasksCompleted: 4,
		})
	}))

	extraction, err := client.ExtractRun(context.Background(), 3)
	if err != nil {
		t.Fatalf("ExtractRun failed: %v", err)
	}
	if extraction.FinalXP != 450 || extraction.PenaltyXP != 50 {
		t.Errorf("unexpected extraction: %+v", extraction)
	}
}

func TestApplyPreset(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/presets/5/apply" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.PresetApplyResult{
			TasksCreated: 3, TasksSkipped: 1, TotalEnergyCost: 10, Message: "ok",
		})
	}))

	result, err := client.ApplyPreset(context.Background(), 5)
	if err != nil {
		t.Fatalf("ApplyPreset failed: %v", err)
	}
	if result.TasksCreated != 3 || result.TasksSkipped != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestListJournalLimit(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "10" {
			t.Errorf("limit = %q, want '10'", got)
		}
		json.NewEncoder(w).Encode([]models.JournalEntry{{RunDate: "2025-03-10"}})
	}))

	entries, err := client.ListJournal(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListJournal failed: %v", err)
	}
	if len(entries) != 1 || entries[0].RunDate != "2025-03-10" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}
