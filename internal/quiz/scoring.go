package quiz

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// IsCorrect compares a learner answer to the question's correct answer.
//
// Comparison trims whitespace and ignores case. For multiple choice, when the
// texts differ, both answers are resolved to a position in the question's
// options (letter, 1-based number or option text) and compared by position.
func IsCorrect(q Question, answer string) bool {
	answer = strings.TrimSpace(answer)
	correct := strings.TrimSpace(q.CorrectAnswer)
	if answer == "" || correct == "" {
		return false
	}

	if strings.EqualFold(answer, correct) {
		return true
	}

	switch q.Type {
	case TypeMultipleChoice:
		got, ok := optionIndex(q.Options, answer)
		if !ok {
			return false
		}
		want, ok := optionIndex(q.Options, correct)
		return ok && got == want
	case TypeTrueFalse:
		got, ok := parseBool(answer)
		if !ok {
			return false
		}
		want, ok := parseBool(correct)
		return ok && got == want
	}

	return false
}

// optionIndex resolves s against options: exact option text first, then the
// text after an option label ("B) Paris"), then a bare label like "B", "b)" or
// "2". Decimals such as "3.5" are never read as labels.
func optionIndex(options []string, s string) (int, bool) {
	s = strings.TrimSpace(s)
	if i, ok := optionByText(options, s); ok {
		return i, true
	}
	if _, rest, ok := splitLabel(s); ok {
		if i, ok := optionByText(options, rest); ok {
			return i, true
		}
	}

	label, ok := bareLabel(s)
	if !ok {
		return 0, false
	}
	if isDigits(label) {
		n, err := strconv.Atoi(label)
		if err != nil || n < 1 || n > len(options) {
			return 0, false
		}
		return n - 1, true
	}
	idx := int(unicode.ToUpper([]rune(label)[0]) - 'A')
	if idx >= 0 && idx < len(options) {
		return idx, true
	}
	return 0, false
}

func optionByText(options []string, s string) (int, bool) {
	for i, opt := range options {
		if strings.EqualFold(strings.TrimSpace(opt), s) {
			return i, true
		}
	}
	for i, opt := range options {
		if _, rest, ok := splitLabel(opt); ok && strings.EqualFold(rest, s) {
			return i, true
		}
	}
	return 0, false
}

// bareLabel accepts a whole answer of one letter or one integer, optionally
// followed by a single ")", "." or ":".
func bareLabel(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	if last := s[len(s)-1]; last == ')' || last == '.' || last == ':' {
		s = strings.TrimSpace(s[:len(s)-1])
	}
	if isDigits(s) {
		return s, true
	}
	if r := []rune(s); len(r) == 1 && unicode.IsLetter(r[0]) {
		return s, true
	}
	return "", false
}

// splitLabel splits "B) Paris" / "B. Paris" / "2: Paris" into ("B", "Paris").
// The label is a single letter or digit; "3.14" and "1:30" are not labelled.
func splitLabel(s string) (string, string, bool) {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) < 3 || !(unicode.IsLetter(r[0]) || unicode.IsDigit(r[0])) {
		return "", "", false
	}
	switch r[1] {
	case ')':
	case '.', ':':
		if unicode.IsDigit(r[2]) {
			return "", "", false
		}
	default:
		return "", "", false
	}
	rest := strings.TrimSpace(string(r[2:]))
	if rest == "" {
		return "", "", false
	}
	return string(r[0]), rest, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "benar":
		return true, true
	case "false", "f", "no", "n", "salah":
		return false, true
	}
	return false, false
}

// Accuracy returns round(100*correct/total) as an integer percentage.
func Accuracy(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(correct) / float64(total)))
}

func VerdictFor(accuracy int) Verdict {
	switch {
	case accuracy >= StrongThreshold:
		return VerdictStrong
	case accuracy >= PartialThreshold:
		return VerdictPartial
	default:
		return VerdictWeak
	}
}

// Score grades answers aligned by index to questions. Missing answers count as
// wrong; answers beyond the question list are ignored.
func Score(questions []Question, answers []string) Result {
	res := Result{
		TotalQuestions: len(questions),
		Answers:        make([]AnswerResult, 0, len(questions)),
	}

	for i, q := range questions {
		var given string
		if i < len(answers) {
			given = answers[i]
		}
		ok := IsCorrect(q, given)
		if ok {
			res.CorrectCount++
		}
		res.Answers = append(res.Answers, AnswerResult{
			QuestionID:    q.ID,
			Question:      q.Prompt,
			Answer:        given,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     ok,
			Explanation:   q.Explanation,
			Topic:         q.Topic,
		})
	}

	res.Accuracy = Accuracy(res.CorrectCount, res.TotalQuestions)
	res.Understanding = VerdictFor(res.Accuracy)
	return res
}

func normalizeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
