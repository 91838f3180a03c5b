package logparse

import (
	"testing"

	"github.com/GoldenEggsUNION/mcsAna/internal/model"
)

func TestClassifyLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		raw       string
		ok        bool
		timeOfDay string
		message   string
	}{
		{
			"server info line",
			"[10:00:00] [Server thread/INFO]: Alice[/1.2.3.4:5] logged in",
			true, "10:00:00", "Alice[/1.2.3.4:5] logged in",
		},
		{
			"empty message",
			"[23:59:59] [Server/INFO]: ",
			true, "23:59:59", "",
		},
		{"blank line", "", false, "", ""},
		{"separator", "--- End of 2024-05-01-1.log ---", false, "", ""},
		{"warn level", "[10:00:00] [Server thread/WARN]: Can't keep up!", false, "", ""},
		{"no brackets", "10:00:00 Server INFO: hello", false, "", ""},
		{"one digit hour", "[9:00:00] [Server/INFO]: hello", false, "", ""},
		{"missing colon space", "[10:00:00] [Server/INFO] hello", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, ok := ClassifyLine(tt.raw)
			if ok != tt.ok {
				t.Fatalf("ClassifyLine(%q) ok = %v, want %v", tt.raw, ok, tt.ok)
			}
			if !ok {
				return
			}
			if line.TimeOfDay != tt.timeOfDay {
				t.Errorf("TimeOfDay = %q, want %q", line.TimeOfDay, tt.timeOfDay)
			}
			if line.Message != tt.message {
				t.Errorf("Message = %q, want %q", line.Message, tt.message)
			}
		})
	}
}

func TestToEvent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    model.Event
	}{
		{
			"login",
			"Alice[/1.2.3.4:5] logged in",
			model.Event{Type: model.EventLogin, Player: "Alice"},
		},
		{
			"login with trailing details",
			"Steve_99[/192.168.0.10:25565] logged in with entity id 123 at (0.5, 64.0, 0.5)",
			model.Event{Type: model.EventLogin, Player: "Steve_99"},
		},
		{
			"logout",
			"Alice left the game",
			model.Event{Type: model.EventLogout, Player: "Alice"},
		},
		{
			"logout with trailing text is not a logout",
			"Alice left the game early",
			model.Event{Type: model.EventUnrecognized},
		},
		{
			"command",
			"Alice issued server command: /help",
			model.Event{Type: model.EventCommand, Player: "Alice"},
		},
		{
			"command with no text",
			"Bob issued server command:",
			model.Event{Type: model.EventCommand, Player: "Bob"},
		},
		{
			"login without ip is not a login",
			"Alice logged in",
			model.Event{Type: model.EventUnrecognized},
		},
		{
			"chat noise",
			"<Alice> left the game was a lie",
			model.Event{Type: model.EventUnrecognized},
		},
		{
			"server chatter",
			"Preparing spawn area: 85%",
			model.Event{Type: model.EventUnrecognized},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToEvent(tt.message); got != tt.want {
				t.Errorf("ToEvent(%q) = %+v, want %+v", tt.message, got, tt.want)
			}
		})
	}
}

func TestIsSeparator(t *testing.T) {
	t.Parallel()

	if !IsSeparator("--- End of 2024-05-01-2.log ---") {
		t.Error("separator line not detected")
	}
	if IsSeparator("[10:00:00] [Server/INFO]: --- End of the world ---") {
		t.Error("log line misdetected as separator")
	}
}
