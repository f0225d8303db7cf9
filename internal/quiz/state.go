package quiz

import (
	"fmt"
	"strings"
)

// State walks a learner through a quiz one question at a time. It is plain
// data so it can be stored as JSON between requests.
type State struct {
	Questions []Question `json:"questions"`
	Answers   []string   `json:"answers"`
}

// NewState drops malformed questions and returns ErrEmptyQuiz when none remain.
func NewState(questions []Question) (*State, error) {
	usable := Sanitize(questions)
	if len(usable) == 0 {
		return nil, ErrEmptyQuiz
	}
	for i := range usable {
		if usable[i].ID == "" {
			usable[i].ID = fmt.Sprintf("q%d", i+1)
		}
	}
	return &State{Questions: usable, Answers: make([]string, 0, len(usable))}, nil
}

// Sanitize normalizes questions and keeps only the ones a learner can answer.
func Sanitize(questions []Question) []Question {
	usable := make([]Question, 0, len(questions))
	for _, q := range questions {
		if q, ok := sanitize(q); ok {
			usable = append(usable, q)
		}
	}
	return usable
}

func sanitize(q Question) (Question, bool) {
	q.Prompt = strings.TrimSpace(q.Prompt)
	q.CorrectAnswer = strings.TrimSpace(q.CorrectAnswer)
	if q.Prompt == "" || q.CorrectAnswer == "" {
		return q, false
	}

	q.Type = ParseQuestionType(string(q.Type))

	opts := make([]string, 0, len(q.Options))
	for _, o := range q.Options {
		if o = strings.TrimSpace(o); o != "" {
			opts = append(opts, o)
		}
	}
	q.Options = opts

	switch q.Type {
	case TypeMultipleChoice:
		if len(q.Options) < 2 {
			return q, false
		}
	case TypeTrueFalse:
		if len(q.Options) == 0 {
			q.Options = []string{"True", "False"}
		}
	}
	return q, true
}

// Position is the zero-based index of the question awaiting an answer.
func (s *State) Position() int {
	return len(s.Answers)
}

func (s *State) Total() int {
	return len(s.Questions)
}

func (s *State) Done() bool {
	return len(s.Answers) >= len(s.Questions)
}

func (s *State) Current() (Question, bool) {
	if s.Done() {
		return Question{}, false
	}
	return s.Questions[len(s.Answers)], true
}

// Submit records the answer for the current question and reports whether it
// was correct.
func (s *State) Submit(answer string) (bool, error) {
	q, ok := s.Current()
	if !ok {
		return false, ErrQuizComplete
	}
	if strings.TrimSpace(answer) == "" {
		return false, ErrBlankAnswer
	}
	s.Answers = append(s.Answers, answer)
	return IsCorrect(q, answer), nil
}

func (s *State) CorrectSoFar() int {
	n := 0
	for i, a := range s.Answers {
		if i < len(s.Questions) && IsCorrect(s.Questions[i], a) {
			n++
		}
	}
	return n
}

func (s *State) Result() (Result, error) {
	if !s.Done() {
		return Result{}, ErrQuizIncomplete
	}
	return Score(s.Questions, s.Answers), nil
}
