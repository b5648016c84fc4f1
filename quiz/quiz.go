// Package quiz grades quiz submissions and renders result fragments. All
// functions are pure; malformed input is a caller contract violation rather
// than a recoverable runtime failure.
package quiz

import (
	"fmt"
	"math"
	"strings"

	"github.com/goliatone/go-kb/articles"
)

// AnswerResult flags one submitted answer as correct or incorrect.
type AnswerResult struct {
	OK bool `json:"ok"`
}

// Grade scores the submitted choices against the quiz definition. Choices are
// zero-based option indexes aligned with the question order; a missing or
// out-of-range choice counts as incorrect. The score is the percentage of
// correct answers rounded to the nearest integer.
func Grade(questions []articles.QuizQuestion, choices []int) (int, []AnswerResult) {
	results := make([]AnswerResult, len(questions))
	if len(questions) == 0 {
		return 0, results
	}

	correct := 0
	for i, question := range questions {
		if i < len(choices) && choices[i] == question.Answer {
			results[i] = AnswerResult{OK: true}
			correct++
		}
	}

	score := int(math.Round(float64(correct) / float64(len(questions)) * 100))
	return score, results
}

// RenderResult formats a scored submission as a display fragment: one verdict
// line per answer in input order (1-based), preceded by the score line.
func RenderResult(score int, answers []AnswerResult) string {
	var items strings.Builder
	for idx, answer := range answers {
		state := "Incorrect"
		if answer.OK {
			state = "Correct"
		}
		fmt.Fprintf(&items, "<li>Q%d: %s</li>", idx+1, state)
	}

	list := `<ul class="list-disc pl-6 space-y-1">` + items.String() + `</ul>`
	return fmt.Sprintf(`<div class="border border-green-400 p-4 mt-4"><p class="mb-2">Score: %d%%</p>%s</div>`, score, list)
}
