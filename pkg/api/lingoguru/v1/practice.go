package lingoguruv1

type StartSessionRequest struct {
	LessonID string `json:"lesson_id"`
}

type DialogueOption struct {
	Index int32       `json:"index"`
	Text  Translation `json:"text"`
	// DeadEnd marks a reply that does not move the conversation.
	DeadEnd bool `json:"dead_end"`
}

type DialogueNode struct {
	ID      string           `json:"id"`
	Text    Translation      `json:"text"`
	Options []DialogueOption `json:"options"`
}

type TranscriptEntry struct {
	Role     string      `json:"role"`
	Text     Translation `json:"text"`
	AudioURL string      `json:"audio_url,omitempty"`
}

type DialogueState struct {
	SessionID  string            `json:"session_id"`
	LessonID   string            `json:"lesson_id"`
	Current    *DialogueNode     `json:"current"`
	Transcript []TranscriptEntry `json:"transcript"`
	Terminal   bool              `json:"terminal"`
	Applied    bool              `json:"applied"`
}

type SelectOptionRequest struct {
	SessionID   string `json:"session_id"`
	OptionIndex int32  `json:"option_index"`
}

// QuizQuestion carries the answer and explanation only once answered.
type QuizQuestion struct {
	ID            string     `json:"id"`
	Prompt        Bilingual  `json:"prompt"`
	Options       []string   `json:"options"`
	Answered      bool       `json:"answered"`
	Selected      string     `json:"selected,omitempty"`
	Correct       bool       `json:"correct"`
	CorrectAnswer string     `json:"correct_answer,omitempty"`
	Explanation   *Bilingual `json:"explanation,omitempty"`
}

type QuizState struct {
	SessionID string        `json:"session_id"`
	LessonID  string        `json:"lesson_id"`
	State     string        `json:"state"`
	Index     int32         `json:"index"`
	Total     int32         `json:"total"`
	Score     int32         `json:"score"`
	Question  *QuizQuestion `json:"question,omitempty"`
}

type SelectAnswerRequest struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

type SpeakRequest struct {
	Text string `json:"text"`
}

type SpeakResponse struct {
	AudioURL string `json:"audio_url"`
	Ready    bool   `json:"ready"`
}
