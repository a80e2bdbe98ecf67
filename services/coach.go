package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"main/config"
	"main/model"
	"main/utils"
)

// CoachService talks to an opaque chat-completions API to produce short
// coaching messages. One round trip per request, no retry: a failed call
// surfaces as a single error for the handler to report.
type CoachService struct {
	cfg    config.CoachConfig
	client *http.Client
}

func NewCoachService(cfg config.CoachConfig) *CoachService {
	return &CoachService{
		cfg:    cfg,
		client: http.DefaultClient,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

const coachSystemPrompt = "You are a warm, concrete focus coach for neurodivergent users. " +
	"Keep replies to two or three sentences, celebrate small wins, and never shame missed days."

// CheckinEncouragement generates a short encouragement for a check-in that
// was just logged.
func (s *CoachService) CheckinEncouragement(ctx context.Context, goal *model.Goal, description string) (string, error) {
	prompt := fmt.Sprintf(
		"The user just checked in on their goal %q (current streak: %d days).",
		goal.Title, goal.CurrentStreak,
	)
	if description != "" {
		prompt += fmt.Sprintf(" They wrote: %q.", description)
	}
	prompt += " Write an encouraging response."

	message, err := s.complete(ctx, prompt)
	utils.TrackCoachRequest("encouragement", err == nil)
	return message, err
}

// DailyFocus generates a short "what to focus on today" message from the
// user's top-ranked goals.
func (s *CoachService) DailyFocus(ctx context.Context, goals []*model.Goal) (string, error) {
	if len(goals) == 0 {
		return "", errors.New("no goals to focus on")
	}

	var sb strings.Builder
	sb.WriteString("The user's top goals for today, in priority order:\n")
	for i, g := range goals {
		fmt.Fprintf(&sb, "%d. %q — progress %d%%, streak %d days", i+1, g.Title, g.Progress, g.CurrentStreak)
		if g.DueDate != "" {
			fmt.Fprintf(&sb, ", due %s", g.DueDate)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("Suggest one gentle, specific focus for today.")

	message, err := s.complete(ctx, sb.String())
	utils.TrackCoachRequest("daily_focus", err == nil)
	return message, err
}

func (s *CoachService) complete(ctx context.Context, userPrompt string) (string, error) {
	if s.cfg.APIKey == "" {
		return "", errors.New("coaching API key not configured")
	}

	payload, err := json.Marshal(chatRequest{
		Model: s.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: coachSystemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens: s.cfg.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode coaching request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build coaching request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("coaching API call failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("coaching API returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode coaching response: %v", err)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("coaching API returned no choices")
	}

	message := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if message == "" {
		return "", errors.New("coaching API returned an empty message")
	}
	return message, nil
}
