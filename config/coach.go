package config

import "main/utils"

// CoachConfig points at the external text-generation API used for coaching
// messages. The endpoint is treated as an opaque chat-completions service.
type CoachConfig struct {
	APIURL    string
	APIKey    string
	Model     string
	MaxTokens int
}

func LoadCoachConfig() CoachConfig {
	return CoachConfig{
		APIURL:    utils.GetEnvAsString("COACH_API_URL", "https://api.openai.com/v1/chat/completions"),
		APIKey:    utils.GetEnvAsString("COACH_API_KEY", ""),
		Model:     utils.GetEnvAsString("COACH_MODEL", "gpt-4o-mini"),
		MaxTokens: utils.GetEnvAsInt("COACH_MAX_TOKENS", 300),
	}
}
