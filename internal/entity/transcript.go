package entity

// Role identifies who produced a transcript entry.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// TranscriptEntry is one line of a dialogue practice transcript.
type TranscriptEntry struct {
	Role     Role        `json:"role"`
	Text     Translation `json:"text"`
	AudioKey string      `json:"audio_key,omitempty"`
}

// ChatMessage is one message exchanged with the tutor.
type ChatMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
