package usecase

import (
	"fmt"
	"strings"

	"github.com/evandrarf/tutorly-be/internal/analysis"
	"github.com/evandrarf/tutorly-be/internal/pkg/llm"
)

const defaultTutorPromptTemplate = `You are a patient, encouraging tutor helping a school student learn {{subject}}.

What you know about this student so far:
- Weak areas: {{weakAreas}}
- Strong areas: {{strongAreas}}
- Topics covered: {{topicsCovered}}
- Current understanding: {{understanding}}

How to tutor:
1. Explain step by step in simple language and check understanding with short questions.
2. Guide the student toward answers instead of giving final answers to homework directly.
3. If the student shares an image, describe what you see before helping.
4. Stay on the subject; gently steer back if the student drifts.

After every reply, assess the student based on the whole conversation.
Respond ONLY with a JSON object in this format:
{
  "reply": "your message to the student",
  "analysis": {
    "weak_areas": ["concepts the student struggles with"],
    "strong_areas": ["concepts the student handles well"],
    "topics_covered": ["topics discussed in this turn"],
    "current_understanding": "weak | average | good | excellent"
  }
}`

const quizSystemPrompt = `You write short review quizzes for school students. Questions must be answerable
without external material, have exactly one correct answer and a one sentence explanation.
Respond ONLY with a JSON object, no markdown.`

var chatTurnSchema = &llm.Schema{
	Name:        "tutor-chat-turn",
	Description: "Tutor reply with a learner analysis",
	Definition: map[string]any{
		"type":     "object",
		"required": []string{"reply", "analysis"},
		"properties": map[string]any{
			"reply": map[string]any{"type": "string", "minLength": 1},
			"analysis": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"weak_areas":            map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"strong_areas":          map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"topics_covered":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"current_understanding": map[string]any{"type": "string"},
				},
			},
		},
	},
}

var quizSchema = &llm.Schema{
	Name:        "tutor-quiz",
	Description: "Review quiz for a finished tutoring session",
	Definition: map[string]any{
		"type":     "object",
		"required": []string{"questions"},
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":     "object",
					"required": []string{"type", "question", "correct_answer"},
					"properties": map[string]any{
						"type":           map[string]any{"type": "string"},
						"question":       map[string]any{"type": "string"},
						"options":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"correct_answer": map[string]any{"type": "string"},
						"explanation":    map[string]any{"type": "string"},
						"difficulty":     map[string]any{"type": "string"},
						"topic":          map[string]any{"type": "string"},
					},
				},
			},
		},
	},
}

type chatTurn struct {
	Reply    string           `json:"reply"`
	Analysis analysis.Signals `json:"analysis"`
}

func buildTutorPrompt(template, subject string, a analysis.Analysis) string {
	prompt := template
	prompt = strings.ReplaceAll(prompt, "{{subject}}", subject)
	prompt = strings.ReplaceAll(prompt, "{{weakAreas}}", listOrNone(a.WeakAreas))
	prompt = strings.ReplaceAll(prompt, "{{strongAreas}}", listOrNone(a.StrongAreas))
	prompt = strings.ReplaceAll(prompt, "{{topicsCovered}}", listOrNone(a.TopicsCovered))
	prompt = strings.ReplaceAll(prompt, "{{understanding}}", string(a.CurrentUnderstanding))
	return prompt
}

func buildQuizPrompt(subject string, a analysis.Analysis, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create %d quiz questions on %s for the student we just tutored.\n", count, subject)
	fmt.Fprintf(&b, "Topics covered: %s\n", listOrNone(a.TopicsCovered))
	fmt.Fprintf(&b, "Weak areas to focus on: %s\n", listOrNone(a.WeakAreas))
	fmt.Fprintf(&b, "Current understanding: %s\n\n", a.CurrentUnderstanding)
	b.WriteString(`Mix question types: multiple_choice (4 options), true_false, fill_blank and short_answer.
For multiple_choice, correct_answer must be the exact text of one option.
Format:
{"questions":[{"type":"multiple_choice","question":"...","options":["..."],"correct_answer":"...","explanation":"...","difficulty":"easy|medium|hard","topic":"..."}]}`)
	return b.String()
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none yet"
	}
	return strings.Join(items, ", ")
}
