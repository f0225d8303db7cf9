package quiz

import "errors"

type QuestionType string

const (
	TypeMultipleChoice QuestionType = "multiple_choice"
	TypeTrueFalse      QuestionType = "true_false"
	TypeFillBlank      QuestionType = "fill_blank"
	TypeShortAnswer    QuestionType = "short_answer"
)

// ParseQuestionType accepts the spellings LLMs tend to produce ("multiple-choice",
// "True/False", "fill in the blank") and falls back to short answer.
func ParseQuestionType(s string) QuestionType {
	switch normalizeKey(s) {
	case "multiplechoice", "mcq", "choice":
		return TypeMultipleChoice
	case "truefalse", "boolean", "tf":
		return TypeTrueFalse
	case "fillblank", "fillintheblank", "fillintheblanks", "blank":
		return TypeFillBlank
	default:
		return TypeShortAnswer
	}
}

// Verdict is the aggregate understanding level of a finished quiz.
type Verdict string

const (
	VerdictStrong  Verdict = "strong"
	VerdictPartial Verdict = "partial"
	VerdictWeak    Verdict = "weak"
)

const (
	StrongThreshold  = 70
	PartialThreshold = 40
)

type Question struct {
	ID            string       `json:"id"`
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer"`
	Explanation   string       `json:"explanation,omitempty"`
	Difficulty    string       `json:"difficulty,omitempty"`
	Topic         string       `json:"topic,omitempty"`
}

// AnswerResult is one row of a finished quiz's breakdown.
type AnswerResult struct {
	QuestionID    string `json:"question_id"`
	Question      string `json:"question"`
	Answer        string `json:"answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
	Explanation   string `json:"explanation,omitempty"`
	Topic         string `json:"topic,omitempty"`
}

type Result struct {
	CorrectCount   int            `json:"correct_count"`
	TotalQuestions int            `json:"total_questions"`
	Accuracy       int            `json:"accuracy"`
	Understanding  Verdict        `json:"understanding"`
	Answers        []AnswerResult `json:"answers"`
}

var (
	ErrEmptyQuiz      = errors.New("quiz has no usable questions")
	ErrQuizComplete   = errors.New("quiz already complete")
	ErrQuizIncomplete = errors.New("quiz not complete")
	ErrBlankAnswer    = errors.New("answer cannot be blank")
)
