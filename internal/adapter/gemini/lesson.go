package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/eslsoft/lingoguru/internal/entity"
)

func str() map[string]any { return map[string]any{"type": "STRING"} }

func object(props map[string]any, required ...string) map[string]any {
	o := map[string]any{"type": "OBJECT", "properties": props}
	if len(required) > 0 {
		o["required"] = required
	}
	return o
}

func array(items map[string]any) map[string]any {
	return map[string]any{"type": "ARRAY", "items": items}
}

var lessonSchema = object(map[string]any{
	"title":              str(),
	"titleKannada":       str(),
	"description":        str(),
	"descriptionKannada": str(),
	"level":              str(),
	"content": array(object(map[string]any{
		"german":        str(),
		"english":       str(),
		"kannada":       str(),
		"pronunciation": str(),
	}, "german", "english", "kannada")),
	"quiz": array(object(map[string]any{
		"id":                 str(),
		"question":           str(),
		"questionKannada":    str(),
		"options":            array(str()),
		"correctAnswer":      str(),
		"explanation":        str(),
		"explanationKannada": str(),
	}, "id", "question", "options", "correctAnswer")),
	"dialogue": object(map[string]any{
		"startNodeId": str(),
		"nodes": array(object(map[string]any{
			"id":      str(),
			"text":    str(),
			"english": str(),
			"kannada": str(),
			"options": array(object(map[string]any{
				"text":       str(),
				"english":    str(),
				"kannada":    str(),
				"nextNodeId": str(),
			}, "text")),
		}, "id", "text", "options")),
	}, "startNodeId", "nodes"),
}, "title", "titleKannada", "description", "content", "quiz", "dialogue")

type lessonDoc struct {
	Title              string `json:"title"`
	TitleKannada       string `json:"titleKannada"`
	Description        string `json:"description"`
	DescriptionKannada string `json:"descriptionKannada"`
	Level              string `json:"level"`
	Content            []struct {
		German        string `json:"german"`
		English       string `json:"english"`
		Kannada       string `json:"kannada"`
		Pronunciation string `json:"pronunciation"`
	} `json:"content"`
	Quiz []struct {
		ID                 string   `json:"id"`
		Question           string   `json:"question"`
		QuestionKannada    string   `json:"questionKannada"`
		Options            []string `json:"options"`
		CorrectAnswer      string   `json:"correctAnswer"`
		Explanation        string   `json:"explanation"`
		ExplanationKannada string   `json:"explanationKannada"`
	} `json:"quiz"`
	Dialogue struct {
		StartNodeID string    `json:"startNodeId"`
		Nodes       []nodeDoc `json:"nodes"`
	} `json:"dialogue"`
}

type nodeDoc struct {
	ID      string      `json:"id"`
	Text    string      `json:"text"`
	English string      `json:"english"`
	Kannada string      `json:"kannada"`
	Options []optionDoc `json:"options"`
}

type optionDoc struct {
	Text       string `json:"text"`
	English    string `json:"english"`
	Kannada    string `json:"kannada"`
	NextNodeID string `json:"nextNodeId"`
}

// GenerateLesson asks the model for a new lesson at the given level. The result
// is decoded but not validated; callers must validate before installing it.
func (c *Client) GenerateLesson(ctx context.Context, level entity.Level) (*entity.Lesson, error) {
	prompt := fmt.Sprintf(`Generate a new, unique German language lesson for %s level.
Topic should be practical (e.g., At the Market, Visiting a Friend, Hobbies).
Translate all content into English and Kannada.
Include 5 vocabulary items, 3 quiz questions, and a short 4-node dialogue.
Dialogue nodes reference each other by id through nextNodeId; the final node has no options.`, level)

	resp, err := c.generate(ctx, c.textModel, &generateRequest{
		Contents: []content{textContent(roleUser, prompt)},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   lessonSchema,
		},
	})
	if err != nil {
		return nil, err
	}
	return decodeLessonDoc(resp.text(), level)
}

func decodeLessonDoc(raw string, level entity.Level) (*entity.Lesson, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty lesson document", entity.ErrMalformedAIResponse)
	}
	var doc lessonDoc
	dec := json.NewDecoder(strings.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrMalformedAIResponse, err)
	}

	lesson := &entity.Lesson{
		Title:       entity.Bilingual{English: doc.Title, Kannada: doc.TitleKannada},
		Level:       entity.Level(strings.ToUpper(strings.TrimSpace(doc.Level))),
		Description: entity.Bilingual{English: doc.Description, Kannada: doc.DescriptionKannada},
		Origin:      entity.OriginAI,
	}
	if lesson.Level == "" {
		lesson.Level = level
	}
	for _, v := range doc.Content {
		lesson.Vocabulary = append(lesson.Vocabulary, entity.VocabularyItem{
			German: v.German, English: v.English, Kannada: v.Kannada, Pronunciation: v.Pronunciation,
		})
	}
	for _, q := range doc.Quiz {
		lesson.Quiz = append(lesson.Quiz, entity.QuizQuestion{
			ID:            q.ID,
			Prompt:        entity.Bilingual{English: q.Question, Kannada: q.QuestionKannada},
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   entity.Bilingual{English: q.Explanation, Kannada: q.ExplanationKannada},
		})
	}

	lesson.Dialogue.StartNodeID = doc.Dialogue.StartNodeID
	lesson.Dialogue.Nodes = make(map[string]entity.DialogueNode, len(doc.Dialogue.Nodes))
	for _, n := range doc.Dialogue.Nodes {
		if _, dup := lesson.Dialogue.Nodes[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate dialogue node %q", entity.ErrMalformedAIResponse, n.ID)
		}
		options := lo.Map(n.Options, func(o optionDoc, _ int) entity.DialogueOption {
			opt := entity.DialogueOption{Text: entity.Translation{German: o.Text, English: o.English, Kannada: o.Kannada}}
			if next := strings.TrimSpace(o.NextNodeID); next != "" {
				opt.NextNodeID = &next
			}
			return opt
		})
		lesson.Dialogue.Nodes[n.ID] = entity.DialogueNode{
			ID:      n.ID,
			Text:    entity.Translation{German: n.Text, English: n.English, Kannada: n.Kannada},
			Options: options,
		}
	}
	return lesson, nil
}
