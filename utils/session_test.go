package utils

import "testing"

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		name        string
		userAgent   string
		wantBrowser string
		wantOS      string
		wantDevice  string
	}{
		{
			name:        "Chrome on Windows",
			userAgent:   "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.131 Safari/537.36",
			wantBrowser: "Chrome",
			wantOS:      "Windows",
			wantDevice:  "Desktop",
		},
		{
			name:        "Safari on iPhone",
			userAgent:   "Mozilla/5.0 (iPhone; CPU iPhone OS 14_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0.3 Mobile/15E148 Safari/604.1",
			wantBrowser: "Safari",
			wantOS:      "iOS",
			wantDevice:  "iPhone",
		},
		{
			name:        "empty user agent",
			userAgent:   "",
			wantBrowser: "Unknown Browser",
			wantOS:      "Unknown OS",
			wantDevice:  "Desktop",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			browser, os, device := ParseUserAgent(tt.userAgent)
			if browser != tt.wantBrowser {
				t.Errorf("browser = %q, want %q", browser, tt.wantBrowser)
			}
			if os != tt.wantOS {
				t.Errorf("os = %q, want %q", os, tt.wantOS)
			}
			if device != tt.wantDevice {
				t.Errorf("device = %q, want %q", device, tt.wantDevice)
			}
		})
	}
}

func TestGenerateSessionName(t *testing.T) {
	got := GenerateSessionName("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.131 Safari/537.36")
	if got != "Chrome on Windows" {
		t.Errorf("GenerateSessionName() = %q, want %q", got, "Chrome on Windows")
	}

	if got := GenerateSessionName(""); got != "Unknown Browser on Unknown OS" {
		t.Errorf("GenerateSessionName(empty) = %q", got)
	}
}
