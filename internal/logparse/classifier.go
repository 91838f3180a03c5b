// Package logparse matches raw log lines against the recognized line and
// message shapes and classifies messages into player activity events.
package logparse

import (
	"regexp"
	"strings"

	"github.com/GoldenEggsUNION/mcsAna/internal/model"
)

// linePattern matches the physical line shape: a bracketed time of day,
// a level tag whose category is INFO (the prefix before the slash does
// not matter), then ": " and the free-text message.
var linePattern = regexp.MustCompile(`^\[(\d{2}:\d{2}:\d{2})\] \[[^/]+/INFO\]: (.*)$`)

// Message patterns, in classification priority order. Player names are
// one or more letters, digits, or underscores.
var (
	loginPattern   = regexp.MustCompile(`^([a-zA-Z0-9_]+)\[/\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}:\d+\] logged in`)
	logoutPattern  = regexp.MustCompile(`^([a-zA-Z0-9_]+) left the game$`)
	commandPattern = regexp.MustCompile(`^([a-zA-Z0-9_]+) issued server command:`)
)

// separatorPrefix marks fragment boundaries inserted by consolidation.
const separatorPrefix = "--- End of"

// ClassifyLine matches one raw line against the log line shape. Lines of
// any other shape (blank lines, separators, other log levels) produce no
// LogLine and are skipped by the caller.
func ClassifyLine(raw string) (model.LogLine, bool) {
	m := linePattern.FindStringSubmatch(raw)
	if m == nil {
		return model.LogLine{}, false
	}
	return model.LogLine{TimeOfDay: m[1], Message: m[2]}, true
}

// ToEvent maps a message to its event. Priority is explicit: login wins
// over logout, logout over command; first match decides.
func ToEvent(message string) model.Event {
	if m := loginPattern.FindStringSubmatch(message); m != nil {
		return model.Event{Type: model.EventLogin, Player: m[1]}
	}
	if m := logoutPattern.FindStringSubmatch(message); m != nil {
		return model.Event{Type: model.EventLogout, Player: m[1]}
	}
	if m := commandPattern.FindStringSubmatch(message); m != nil {
		return model.Event{Type: model.EventCommand, Player: m[1]}
	}
	return model.Event{Type: model.EventUnrecognized}
}

// IsSeparator reports whether line is a fragment separator from the
// consolidation step.
func IsSeparator(line string) bool {
	return strings.HasPrefix(line, separatorPrefix)
}
