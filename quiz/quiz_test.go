package quiz

import (
	"strings"
	"testing"

	"github.com/goliatone/go-kb/articles"
)

func TestRenderResult(t *testing.T) {
	fragment := RenderResult(75, []AnswerResult{{OK: true}, {OK: false}, {OK: true}})

	if !strings.Contains(fragment, "Score: 75%") {
		t.Fatalf("expected score line, got %q", fragment)
	}

	verdicts := []string{"<li>Q1: Correct</li>", "<li>Q2: Incorrect</li>", "<li>Q3: Correct</li>"}
	last := -1
	for _, verdict := range verdicts {
		idx := strings.Index(fragment, verdict)
		if idx == -1 {
			t.Fatalf("expected verdict %q in fragment %q", verdict, fragment)
		}
		if idx < last {
			t.Fatalf("verdict %q out of order in fragment %q", verdict, fragment)
		}
		last = idx
	}
}

func TestRenderResult_NoAnswers(t *testing.T) {
	fragment := RenderResult(0, nil)

	if !strings.Contains(fragment, "Score: 0%") {
		t.Fatalf("expected zero score line, got %q", fragment)
	}
	if strings.Contains(fragment, "<li>") {
		t.Fatalf("expected no verdict lines, got %q", fragment)
	}
}

func TestGrade(t *testing.T) {
	questions := []articles.QuizQuestion{
		{Question: "2+2?", Options: []string{"3", "4"}, Answer: 1},
		{Question: "Capital of France?", Options: []string{"Paris", "Rome"}, Answer: 0},
		{Question: "Largest ocean?", Options: []string{"Atlantic", "Pacific"}, Answer: 1},
	}

	score, results := Grade(questions, []int{1, 1, 1})
	if score != 67 {
		t.Fatalf("expected rounded score 67, got %d", score)
	}
	if !results[0].OK || results[1].OK || !results[2].OK {
		t.Fatalf("unexpected results: %#v", results)
	}
}

func TestGrade_ShortSubmission(t *testing.T) {
	questions := []articles.QuizQuestion{
		{Question: "Q1", Options: []string{"a", "b"}, Answer: 0},
		{Question: "Q2", Options: []string{"a", "b"}, Answer: 1},
	}

	score, results := Grade(questions, []int{0})
	if score != 50 {
		t.Fatalf("expected 50, got %d", score)
	}
	if len(results) != 2 || !results[0].OK || results[1].OK {
		t.Fatalf("unexpected results: %#v", results)
	}
}

func TestGrade_EmptyQuiz(t *testing.T) {
	score, results := Grade(nil, nil)
	if score != 0 || len(results) != 0 {
		t.Fatalf("expected zero score and no results, got %d %#v", score, results)
	}
}
