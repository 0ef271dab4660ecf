package mapping

import (
	"github.com/samber/lo"

	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/internal/usecase"
	lingoguruv1 "github.com/eslsoft/lingoguru/pkg/api/lingoguru/v1"
)

// AudioPath is the route cached narration clips are served from.
const AudioPath = "/audio/"

// AudioURL returns the relative url of a clip, or "" for no clip.
func AudioURL(key string) string {
	if key == "" {
		return ""
	}
	return AudioPath + key
}

func ToPbDialogueNode(n entity.DialogueNode) *lingoguruv1.DialogueNode {
	return &lingoguruv1.DialogueNode{
		ID:   n.ID,
		Text: ToPbTranslation(n.Text),
		Options: lo.Map(n.Options, func(o entity.DialogueOption, i int) lingoguruv1.DialogueOption {
			return lingoguruv1.DialogueOption{
				Index:   int32(i),
				Text:    ToPbTranslation(o.Text),
				DeadEnd: !o.HasDestination(),
			}
		}),
	}
}

func ToPbDialogueState(v *usecase.DialogueView) *lingoguruv1.DialogueState {
	return &lingoguruv1.DialogueState{
		SessionID: v.SessionID,
		LessonID:  v.LessonID,
		Current:   ToPbDialogueNode(v.Current),
		Transcript: lo.Map(v.Transcript, func(e entity.TranscriptEntry, _ int) lingoguruv1.TranscriptEntry {
			return lingoguruv1.TranscriptEntry{
				Role:     string(e.Role),
				Text:     ToPbTranslation(e.Text),
				AudioURL: AudioURL(e.AudioKey),
			}
		}),
		Terminal: v.Terminal,
		Applied:  v.Applied,
	}
}

// ToPbQuizState hides the correct answer and explanation until the current
// question is answered.
func ToPbQuizState(v *usecase.QuizView) *lingoguruv1.QuizState {
	out := &lingoguruv1.QuizState{
		SessionID: v.SessionID,
		LessonID:  v.LessonID,
		State:     string(v.State),
		Index:     int32(v.Index),
		Total:     int32(v.Total),
		Score:     int32(v.Score),
	}
	if q := v.Question; q != nil {
		question := &lingoguruv1.QuizQuestion{
			ID:       q.ID,
			Prompt:   ToPbBilingual(q.Prompt),
			Options:  q.Options,
			Answered: v.Answered,
			Selected: v.Selected,
			Correct:  v.Correct,
		}
		if v.Answered {
			explanation := ToPbBilingual(q.Explanation)
			question.CorrectAnswer = q.CorrectAnswer
			question.Explanation = &explanation
		}
		out.Question = question
	}
	return out
}

func ToPbChatMessage(m entity.ChatMessage) lingoguruv1.ChatMessage {
	return lingoguruv1.ChatMessage{Role: string(m.Role), Text: m.Text}
}

func ToPbChatState(v *usecase.TutorView) *lingoguruv1.ChatState {
	out := &lingoguruv1.ChatState{
		SessionID: v.SessionID,
		Messages: lo.Map(v.Messages, func(m entity.ChatMessage, _ int) lingoguruv1.ChatMessage {
			return ToPbChatMessage(m)
		}),
		Fallback: v.Fallback,
	}
	if v.Reply != nil {
		reply := ToPbChatMessage(*v.Reply)
		out.Reply = &reply
	}
	return out
}
