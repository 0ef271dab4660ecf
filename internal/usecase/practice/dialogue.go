// Package practice holds the dialogue and quiz state machines behind a
// practice session. Engines are not safe for concurrent use; callers serialize
// access per session.
package practice

import (
	"fmt"

	"github.com/eslsoft/lingoguru/internal/entity"
)

// Narrator speaks text out of band and returns the key the audio will be
// available under. Implementations must not block on synthesis.
type Narrator interface {
	Narrate(text string) string
}

type silentNarrator struct{}

func (silentNarrator) Narrate(string) string { return "" }

// DialogueEngine walks a dialogue graph and records the conversation.
type DialogueEngine struct {
	dialogue   entity.Dialogue
	narrator   Narrator
	currentID  string
	transcript []entity.TranscriptEntry
}

// NewDialogueEngine positions the engine on the start node and narrates it.
func NewDialogueEngine(dialogue entity.Dialogue, narrator Narrator) *DialogueEngine {
	if narrator == nil {
		narrator = silentNarrator{}
	}
	e := &DialogueEngine{dialogue: dialogue, narrator: narrator}
	e.Restart()
	return e
}

// Current returns the node the conversation is on.
func (e *DialogueEngine) Current() entity.DialogueNode {
	return e.dialogue.Nodes[e.currentID]
}

// Transcript returns a copy of the conversation so far.
func (e *DialogueEngine) Transcript() []entity.TranscriptEntry {
	out := make([]entity.TranscriptEntry, len(e.transcript))
	copy(out, e.transcript)
	return out
}

// IsTerminal reports whether the current node offers no replies.
func (e *DialogueEngine) IsTerminal() bool {
	return e.Current().IsTerminal()
}

// SelectOption follows option to its destination. It returns false and leaves
// the engine untouched when the option has no destination, the destination is
// unknown, or the conversation already ended.
func (e *DialogueEngine) SelectOption(option entity.DialogueOption) bool {
	if !option.HasDestination() || e.IsTerminal() {
		return false
	}
	next, ok := e.dialogue.Node(*option.NextNodeID)
	if !ok {
		return false
	}

	e.transcript = append(e.transcript,
		entity.TranscriptEntry{Role: entity.RoleUser, Text: option.Text},
		e.enter(next),
	)
	return true
}

// SelectOptionAt selects the option at index on the current node.
func (e *DialogueEngine) SelectOptionAt(index int) (bool, error) {
	options := e.Current().Options
	if index < 0 || index >= len(options) {
		return false, fmt.Errorf("%w: index %d, node %q has %d options", entity.ErrInvalidOption, index, e.currentID, len(options))
	}
	return e.SelectOption(options[index]), nil
}

// Restart clears the transcript down to the start node.
func (e *DialogueEngine) Restart() {
	e.transcript = []entity.TranscriptEntry{e.enter(e.dialogue.Start())}
}

func (e *DialogueEngine) enter(node entity.DialogueNode) entity.TranscriptEntry {
	e.currentID = node.ID
	return entity.TranscriptEntry{
		Role:     entity.RoleAssistant,
		Text:     node.Text,
		AudioKey: e.narrator.Narrate(node.Text.German),
	}
}
