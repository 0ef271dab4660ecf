package practice

import (
	"reflect"
	"sync"
	"testing"

	"github.com/eslsoft/lingoguru/internal/entity"
)

type recordingNarrator struct {
	mu    sync.Mutex
	texts []string
}

func (r *recordingNarrator) Narrate(text string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.texts = append(r.texts, text)
	return "key:" + text
}

func ptr(s string) *string { return &s }

func tr(s string) entity.Translation {
	return entity.Translation{German: s, English: s + "-en", Kannada: s + "-kn"}
}

// start -> {A: node2, B: node3}, node2 -> {C: end}, node3 -> {D: start, X: nowhere}, end terminal.
func sampleDialogue() entity.Dialogue {
	return entity.Dialogue{
		StartNodeID: "start",
		Nodes: map[string]entity.DialogueNode{
			"start": {ID: "start", Text: tr("start"), Options: []entity.DialogueOption{
				{Text: tr("A"), NextNodeID: ptr("node2")},
				{Text: tr("B"), NextNodeID: ptr("node3")},
			}},
			"node2": {ID: "node2", Text: tr("node2"), Options: []entity.DialogueOption{
				{Text: tr("C"), NextNodeID: ptr("end")},
			}},
			"node3": {ID: "node3", Text: tr("node3"), Options: []entity.DialogueOption{
				{Text: tr("D"), NextNodeID: ptr("start")},
				{Text: tr("X")},
			}},
			"end": {ID: "end", Text: tr("end")},
		},
	}
}

func roles(entries []entity.TranscriptEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = string(e.Role) + ":" + e.Text.German
	}
	return out
}

func TestDialogue_SampleDialogueIsValid(t *testing.T) {
	if err := sampleDialogue().Validate(); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestDialogue_InitialState(t *testing.T) {
	n := &recordingNarrator{}
	e := NewDialogueEngine(sampleDialogue(), n)

	if got := e.Current().ID; got != "start" {
		t.Fatalf("expected start node, got %q", got)
	}
	tx := e.Transcript()
	if !reflect.DeepEqual(roles(tx), []string{"assistant:start"}) {
		t.Fatalf("unexpected transcript: %v", roles(tx))
	}
	if tx[0].AudioKey != "key:start" {
		t.Fatalf("expected audio key for start node, got %q", tx[0].AudioKey)
	}
	if !reflect.DeepEqual(n.texts, []string{"start"}) {
		t.Fatalf("expected start to be narrated, got %v", n.texts)
	}
}

func TestDialogue_PathToTerminal(t *testing.T) {
	e := NewDialogueEngine(sampleDialogue(), nil)

	if !e.SelectOption(e.Current().Options[0]) {
		t.Fatalf("expected A to be applied")
	}
	if !e.SelectOption(e.Current().Options[0]) {
		t.Fatalf("expected C to be applied")
	}

	want := []string{"assistant:start", "user:A", "assistant:node2", "user:C", "assistant:end"}
	if got := roles(e.Transcript()); !reflect.DeepEqual(got, want) {
		t.Fatalf("transcript = %v, want %v", got, want)
	}
	if !e.IsTerminal() {
		t.Fatalf("expected terminal state")
	}
}

func TestDialogue_TerminalRejectsFurtherSelections(t *testing.T) {
	d := sampleDialogue()
	e := NewDialogueEngine(d, nil)
	e.SelectOption(d.Nodes["start"].Options[0])
	e.SelectOption(d.Nodes["node2"].Options[0])

	before := e.Transcript()
	for _, node := range d.Nodes {
		for _, opt := range node.Options {
			if e.SelectOption(opt) {
				t.Fatalf("selection succeeded on terminal node")
			}
		}
	}
	if !reflect.DeepEqual(before, e.Transcript()) {
		t.Fatalf("transcript changed on terminal node")
	}
	if _, err := e.SelectOptionAt(0); err == nil {
		t.Fatalf("expected ErrInvalidOption on terminal node")
	}
}

func TestDialogue_OptionWithoutDestinationIsNoop(t *testing.T) {
	e := NewDialogueEngine(sampleDialogue(), nil)
	e.SelectOption(e.Current().Options[1]) // B -> node3

	before := e.Transcript()
	ok, err := e.SelectOptionAt(1) // X has no destination
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if ok {
		t.Fatalf("expected X to be ignored")
	}
	if e.Current().ID != "node3" {
		t.Fatalf("expected to stay on node3, got %q", e.Current().ID)
	}
	if !reflect.DeepEqual(before, e.Transcript()) {
		t.Fatalf("transcript changed by option without destination")
	}
}

func TestDialogue_RepeatedSelectionIsHonored(t *testing.T) {
	d := sampleDialogue()
	e := NewDialogueEngine(d, nil)
	a := d.Nodes["start"].Options[0]

	e.SelectOption(a)
	e.SelectOption(a)

	want := []string{"assistant:start", "user:A", "assistant:node2", "user:A", "assistant:node2"}
	if got := roles(e.Transcript()); !reflect.DeepEqual(got, want) {
		t.Fatalf("transcript = %v, want %v", got, want)
	}
}

func TestDialogue_CyclesAreAllowed(t *testing.T) {
	e := NewDialogueEngine(sampleDialogue(), nil)
	for i := 0; i < 5; i++ {
		if _, err := e.SelectOptionAt(1); err != nil { // B -> node3
			t.Fatalf("unexpected err: %v", err)
		}
		if _, err := e.SelectOptionAt(0); err != nil { // D -> start
			t.Fatalf("unexpected err: %v", err)
		}
	}
	if got := len(e.Transcript()); got != 1+5*4 {
		t.Fatalf("expected 21 entries, got %d", got)
	}
	if e.Current().ID != "start" {
		t.Fatalf("expected to be back on start, got %q", e.Current().ID)
	}
}

func TestDialogue_RestartIsIdempotent(t *testing.T) {
	n := &recordingNarrator{}
	e := NewDialogueEngine(sampleDialogue(), n)
	e.SelectOption(e.Current().Options[0])

	e.Restart()
	first := e.Transcript()
	e.Restart()
	second := e.Transcript()

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("restart not idempotent: %v vs %v", roles(first), roles(second))
	}
	if !reflect.DeepEqual(roles(second), []string{"assistant:start"}) {
		t.Fatalf("unexpected transcript after restart: %v", roles(second))
	}
	if e.Current().ID != "start" {
		t.Fatalf("expected start after restart, got %q", e.Current().ID)
	}
	want := []string{"start", "node2", "start", "start"}
	if !reflect.DeepEqual(n.texts, want) {
		t.Fatalf("narrated %v, want %v", n.texts, want)
	}
}

func TestDialogue_SelectOptionAtOutOfRange(t *testing.T) {
	e := NewDialogueEngine(sampleDialogue(), nil)
	for _, idx := range []int{-1, 2, 10} {
		if _, err := e.SelectOptionAt(idx); err == nil {
			t.Fatalf("expected error for index %d", idx)
		}
	}
}

func TestDialogue_TranscriptIsACopy(t *testing.T) {
	e := NewDialogueEngine(sampleDialogue(), nil)
	tx := e.Transcript()
	tx[0].Text.German = "mutated"
	if e.Transcript()[0].Text.German != "start" {
		t.Fatalf("transcript leaked internal state")
	}
}
