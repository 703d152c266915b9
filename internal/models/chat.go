package models

import "time"

// Transcript entry senders.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// TranscriptEntry is one message in a session transcript. The transcript is
// append-only and purely observational.
type TranscriptEntry struct {
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	// TypingMillis is the simulated typing delay applied before this bot
	// message appeared; zero for user messages and immediate bot messages.
	TypingMillis int64 `json:"typing_ms,omitempty"`
}

// Photo is one memory-wall entry: an inline-encoded image and the display
// name of the visitor who shared it.
type Photo struct {
	Src  string `json:"src"`
	Name string `json:"name"`
}
