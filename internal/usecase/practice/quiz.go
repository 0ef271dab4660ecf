package practice

import (
	"github.com/eslsoft/lingoguru/internal/entity"
	"github.com/eslsoft/lingoguru/pkg/shuffle"
)

// QuizState is the coarse state of a quiz run.
type QuizState string

const (
	QuizInProgress QuizState = "in_progress"
	QuizFinished   QuizState = "finished"
)

// QuizSnapshot is a read-only view of a quiz run.
type QuizSnapshot struct {
	State    QuizState
	Index    int
	Total    int
	Score    int
	Question *entity.QuizQuestion
	Answered bool
	Selected string
	Correct  bool
}

// QuizEngine runs a shuffled multiple choice quiz. Each question accepts one
// answer; there is no retry and no partial credit.
type QuizEngine struct {
	questions []entity.QuizQuestion
	shuffler  *shuffle.Shuffler

	order    []entity.QuizQuestion
	options  []string
	index    int
	score    int
	answered bool
	selected string
	finished bool
}

// NewQuizEngine copies questions and starts a fresh run. A nil shuffler uses
// the default source.
func NewQuizEngine(questions []entity.QuizQuestion, shuffler *shuffle.Shuffler) *QuizEngine {
	if shuffler == nil {
		shuffler = shuffle.Default()
	}
	q := &QuizEngine{
		questions: append([]entity.QuizQuestion(nil), questions...),
		shuffler:  shuffler,
	}
	q.Reset()
	return q
}

// Reset reshuffles the question order and returns to the first question.
func (q *QuizEngine) Reset() {
	q.order = shuffle.ShuffleWith(q.shuffler, q.questions)
	q.index = 0
	q.score = 0
	q.finished = len(q.order) == 0
	q.loadQuestion()
}

// SelectAnswer records choice for the current question. It returns false when
// the question was already answered or the quiz is over.
func (q *QuizEngine) SelectAnswer(choice string) bool {
	if q.finished || q.answered {
		return false
	}
	q.answered = true
	q.selected = choice
	if q.order[q.index].IsCorrect(choice) {
		q.score++
	}
	return true
}

// Advance moves to the next question, or finishes the quiz after the last one.
// Nothing happens until the current question is answered.
func (q *QuizEngine) Advance() bool {
	if q.finished || !q.answered {
		return false
	}
	if q.index+1 < len(q.order) {
		q.index++
		q.loadQuestion()
		return true
	}
	q.finished = true
	return true
}

// State reports whether the quiz is still in progress.
func (q *QuizEngine) State() QuizState {
	if q.finished {
		return QuizFinished
	}
	return QuizInProgress
}

// Score is the number of correctly answered questions so far.
func (q *QuizEngine) Score() int {
	return q.score
}

// Total is the number of questions in the run.
func (q *QuizEngine) Total() int {
	return len(q.order)
}

// Snapshot reports the current state. Question carries the shuffled options and
// is nil once the quiz is finished.
func (q *QuizEngine) Snapshot() QuizSnapshot {
	snap := QuizSnapshot{
		State: q.State(),
		Index: q.index,
		Total: len(q.order),
		Score: q.score,
	}
	if q.finished {
		return snap
	}
	current := q.order[q.index]
	current.Options = append([]string(nil), q.options...)
	snap.Question = &current
	snap.Answered = q.answered
	snap.Selected = q.selected
	snap.Correct = q.answered && current.IsCorrect(q.selected)
	return snap
}

func (q *QuizEngine) loadQuestion() {
	q.answered = false
	q.selected = ""
	q.options = nil
	if q.finished {
		return
	}
	q.options = shuffle.ShuffleWith(q.shuffler, q.order[q.index].Options)
}
