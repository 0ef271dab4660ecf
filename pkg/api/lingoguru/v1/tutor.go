package lingoguruv1

type ChatMessage struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

type ChatState struct {
	SessionID string        `json:"session_id"`
	Messages  []ChatMessage `json:"messages"`
	Reply     *ChatMessage  `json:"reply,omitempty"`
	Fallback  bool          `json:"fallback"`
}

type SendMessageRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// AnalyzePronunciationRequest carries the recording base64 encoded.
type AnalyzePronunciationRequest struct {
	Word     string `json:"word"`
	Audio    []byte `json:"audio"`
	MimeType string `json:"mime_type"`
}

type AnalyzePronunciationResponse struct {
	Word     string `json:"word"`
	Feedback string `json:"feedback"`
	Fallback bool   `json:"fallback"`
}
