package gemini

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/eslsoft/lingoguru/internal/entity"
)

// Gemini names the assistant side of a conversation "model".
const (
	roleUser  = "user"
	roleModel = "model"
)

// Chat continues a tutor conversation. Leading model turns are dropped since
// the API expects the conversation to open with the user.
func (c *Client) Chat(ctx context.Context, history []entity.ChatMessage, message string) (string, error) {
	contents := make([]content, 0, len(history)+1)
	for _, m := range history {
		role := roleUser
		if m.Role == entity.RoleAssistant {
			role = roleModel
		}
		if len(contents) == 0 && role == roleModel {
			continue
		}
		contents = append(contents, textContent(role, m.Text))
	}
	contents = append(contents, textContent(roleUser, message))

	system := textContent("", tutorPersona)
	resp, err := c.generate(ctx, c.textModel, &generateRequest{
		Contents:          contents,
		SystemInstruction: &system,
	})
	if err != nil {
		return "", err
	}
	return resp.text(), nil
}

// AnalyzePronunciation grades a recording of the learner saying targetWord.
func (c *Client) AnalyzePronunciation(ctx context.Context, targetWord string, audio []byte, mimeType string) (string, error) {
	prompt := fmt.Sprintf(`The user is practicing the German word: %q.
Analyze their pronunciation from the provided audio.
Provide short, clear feedback in both English and Kannada (using Kannada script).
Grade it as "Excellent", "Good", or "Keep Trying".
If incorrect, explain the phonetic mistake simply.`, targetWord)

	resp, err := c.generate(ctx, c.textModel, &generateRequest{
		Contents: []content{{Parts: []part{
			{Text: prompt},
			{InlineData: &inlineData{MimeType: mimeType, Data: base64.StdEncoding.EncodeToString(audio)}},
		}}},
	})
	if err != nil {
		return "", err
	}
	return resp.text(), nil
}

// ExplainGrammar returns a Markdown explanation of a grammar topic.
func (c *Client) ExplainGrammar(ctx context.Context, topicTitle string) (string, error) {
	prompt := fmt.Sprintf(`As Guru the German Instructor, provide a detailed explanation of the grammar topic: %q.
Target audience: English and Kannada speakers from Karnataka.
Structure your response with:
1. Introduction (German concept)
2. Comparison with English (How it differs or relates)
3. Comparison with Kannada (Very important: explain syntax or concepts using Kannada grammatical terms if applicable, e.g., Vibhakti/Cases).
4. 3 clear examples with German, English, and Kannada translations.
Use clear Markdown and Kannada script.`, topicTitle)

	resp, err := c.generate(ctx, c.textModel, &generateRequest{
		Contents: []content{textContent(roleUser, prompt)},
	})
	if err != nil {
		return "", err
	}
	return resp.text(), nil
}
