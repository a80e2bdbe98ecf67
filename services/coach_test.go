package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"main/config"
	"main/model"
)

func coachTestServer(t *testing.T, status int, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q, want Bearer test-key", auth)
		}

		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
			t.Errorf("unexpected messages: %+v", req.Messages)
		}

		w.WriteHeader(status)
		if status == http.StatusOK {
			json.NewEncoder(w).Encode(chatResponse{
				Choices: []struct {
					Message chatMessage `json:"message"`
				}{
					{Message: chatMessage{Role: "assistant", Content: reply}},
				},
			})
		}
	}))
}

func coachConfigFor(url string) config.CoachConfig {
	return config.CoachConfig{
		APIURL:    url,
		APIKey:    "test-key",
		Model:     "test-model",
		MaxTokens: 100,
	}
}

func TestCheckinEncouragement(t *testing.T) {
	srv := coachTestServer(t, http.StatusOK, "Nice work, three days in a row!")
	defer srv.Close()

	coach := NewCoachService(coachConfigFor(srv.URL))
	goal := &model.Goal{Title: "Morning run", CurrentStreak: 3}

	message, err := coach.CheckinEncouragement(context.Background(), goal, "ran 5k")
	if err != nil {
		t.Fatalf("CheckinEncouragement() error = %v", err)
	}
	if message != "Nice work, three days in a row!" {
		t.Errorf("message = %q", message)
	}
}

func TestDailyFocus(t *testing.T) {
	srv := coachTestServer(t, http.StatusOK, "Start with your run today.")
	defer srv.Close()

	coach := NewCoachService(coachConfigFor(srv.URL))
	goals := []*model.Goal{
		{Title: "Morning run", Progress: 40, CurrentStreak: 3, DueDate: "2024-07-01"},
		{Title: "Read daily", Progress: 10, CurrentStreak: 1},
	}

	message, err := coach.DailyFocus(context.Background(), goals)
	if err != nil {
		t.Fatalf("DailyFocus() error = %v", err)
	}
	if message != "Start with your run today." {
		t.Errorf("message = %q", message)
	}
}

func TestDailyFocusNoGoals(t *testing.T) {
	coach := NewCoachService(coachConfigFor("http://unused"))
	if _, err := coach.DailyFocus(context.Background(), nil); err == nil {
		t.Error("expected an error for an empty goal list")
	}
}

func TestCoachUpstreamError(t *testing.T) {
	srv := coachTestServer(t, http.StatusServiceUnavailable, "")
	defer srv.Close()

	coach := NewCoachService(coachConfigFor(srv.URL))
	goal := &model.Goal{Title: "Morning run"}

	_, err := coach.CheckinEncouragement(context.Background(), goal, "")
	if err == nil {
		t.Fatal("expected an error on upstream 503")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error %q should mention the upstream status", err)
	}
}

func TestCoachMissingAPIKey(t *testing.T) {
	coach := NewCoachService(config.CoachConfig{APIURL: "http://unused"})
	goal := &model.Goal{Title: "Morning run"}

	if _, err := coach.CheckinEncouragement(context.Background(), goal, ""); err == nil {
		t.Error("expected an error when no API key is configured")
	}
}

func TestCoachEmptyReply(t *testing.T) {
	srv := coachTestServer(t, http.StatusOK, "   ")
	defer srv.Close()

	coach := NewCoachService(coachConfigFor(srv.URL))
	goal := &model.Goal{Title: "Morning run"}

	if _, err := coach.CheckinEncouragement(context.Background(), goal, ""); err == nil {
		t.Error("expected an error on a blank completion")
	}
}
