package lingoguruv1

type VocabularyItem struct {
	German        string `json:"german"`
	English       string `json:"english"`
	Kannada       string `json:"kannada"`
	Pronunciation string `json:"pronunciation"`
}

// Lesson is a curriculum entry. Vocabulary is only filled by GetLesson.
type Lesson struct {
	ID              string           `json:"id"`
	Title           Bilingual        `json:"title"`
	Level           string           `json:"level"`
	Description     Bilingual        `json:"description"`
	Origin          string           `json:"origin"`
	CreatedAt       string           `json:"created_at"`
	VocabularyCount int32            `json:"vocabulary_count"`
	QuizCount       int32            `json:"quiz_count"`
	Vocabulary      []VocabularyItem `json:"vocabulary,omitempty"`
}

type ListLessonsRequest struct {
	Filter     string             `json:"filter"`
	OrderBy    string             `json:"order_by"`
	Pagination *PaginationRequest `json:"pagination,omitempty"`
}

type ListLessonsResponse struct {
	Lessons    []*Lesson           `json:"lessons"`
	Pagination *PaginationResponse `json:"pagination"`
}

type ShuffleLessonsResponse struct {
	Lessons []*Lesson `json:"lessons"`
}

type GetVocabularyResponse struct {
	LessonID string           `json:"lesson_id"`
	Items    []VocabularyItem `json:"items"`
}

type GenerateLessonRequest struct {
	Level string `json:"level"`
}

type GrammarTopic struct {
	ID      string    `json:"id"`
	Title   Bilingual `json:"title"`
	Summary Bilingual `json:"summary"`
	Icon    string    `json:"icon"`
}

type ListGrammarTopicsResponse struct {
	Topics []*GrammarTopic `json:"topics"`
}

type ExplainGrammarResponse struct {
	Topic    *GrammarTopic `json:"topic"`
	Markdown string        `json:"markdown"`
	Fallback bool          `json:"fallback"`
}
