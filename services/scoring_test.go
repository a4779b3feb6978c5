package services

import (
	"errors"
	"testing"

	"topicquiz/models"

	"github.com/google/uuid"
)

func mathQuestion(t *testing.T) models.Question {
	t.Helper()
	q, err := models.NewQuestion("Math", "2 + 2 = ?", []string{"2", "3", "4", "5"}, "4")
	if err != nil {
		t.Fatalf("NewQuestion: %v", err)
	}
	q.ID = uuid.MustParse("11111111-1111-4111-8111-111111111111")
	return *q
}

func TestScoreAnswers_SingleQuestion(t *testing.T) {
	q := mathQuestion(t)
	id := q.ID.String()

	results, score, err := ScoreAnswers([]models.Question{q}, map[string]string{id: "C"}, false)
	if err != nil {
		t.Fatalf("ScoreAnswers: %v", err)
	}
	if score != 1 || Percentage(score, 1) != 100 {
		t.Fatalf("expected score 1 and 100%%, got %d and %d%%", score, Percentage(score, 1))
	}
	if len(results) != 1 || !results[0].Correct || results[0].Selected != "C" || results[0].QuestionID != id {
		t.Fatalf("unexpected results: %+v", results)
	}
	if results[0].CorrectAnswer != "" {
		t.Fatalf("correct answer must stay hidden, got %q", results[0].CorrectAnswer)
	}

	_, score, err = ScoreAnswers([]models.Question{q}, map[string]string{id: "A"}, false)
	if err != nil {
		t.Fatalf("ScoreAnswers: %v", err)
	}
	if score != 0 || Percentage(score, 1) != 0 {
		t.Fatalf("expected score 0, got %d", score)
	}
}

func TestScoreAnswers_CaseSensitiveAndMissing(t *testing.T) {
	q := mathQuestion(t)

	results, score, err := ScoreAnswers([]models.Question{q}, map[string]string{q.ID.String(): "c"}, false)
	if err != nil {
		t.Fatalf("ScoreAnswers: %v", err)
	}
	if score != 0 || results[0].Correct {
		t.Fatalf("lowercase letter must not match, got %+v", results[0])
	}

	results, score, err = ScoreAnswers([]models.Question{q}, map[string]string{}, false)
	if err != nil {
		t.Fatalf("ScoreAnswers: %v", err)
	}
	if score != 0 || results[0].Selected != "" {
		t.Fatalf("missing answer must be scored as empty selection, got %+v", results[0])
	}
}

func TestScoreAnswers_RevealAndLettersBeyondD(t *testing.T) {
	q, err := models.NewQuestion("Science", "Rings?", []string{"Venus", "Mercury", "Mars", "Earth", "Jupiter", "Saturn"}, "Saturn")
	if err != nil {
		t.Fatalf("NewQuestion: %v", err)
	}
	q.ID = uuid.New()

	results, score, err := ScoreAnswers([]models.Question{*q}, map[string]string{q.ID.String(): "F"}, true)
	if err != nil {
		t.Fatalf("ScoreAnswers: %v", err)
	}
	if score != 1 {
		t.Fatalf("expected F to be correct, got score %d", score)
	}
	if results[0].CorrectAnswer != "F" {
		t.Fatalf("expected revealed answer F, got %q", results[0].CorrectAnswer)
	}
}

func TestScoreAnswers_InvalidQuestionFails(t *testing.T) {
	q := models.Question{ID: uuid.New(), Topic: "Math", Question: "broken", Options: []string{"1", "2"}, Answer: "3"}

	_, _, err := ScoreAnswers([]models.Question{q}, map[string]string{q.ID.String(): "A"}, false)
	if !errors.Is(err, models.ErrInvalidQuestion) {
		t.Fatalf("expected ErrInvalidQuestion, got %v", err)
	}
}

func TestScoreAnswers_Idempotent(t *testing.T) {
	q := mathQuestion(t)
	answers := map[string]string{q.ID.String(): "C"}

	_, first, err := ScoreAnswers([]models.Question{q}, answers, false)
	if err != nil {
		t.Fatalf("ScoreAnswers: %v", err)
	}
	for i := 0; i < 5; i++ {
		_, again, err := ScoreAnswers([]models.Question{q}, answers, false)
		if err != nil {
			t.Fatalf("ScoreAnswers: %v", err)
		}
		if again != first {
			t.Fatalf("run %d: score %d differs from %d", i, again, first)
		}
	}
}

func TestPercentage(t *testing.T) {
	cases := []struct {
		score, total, want int
	}{
		{0, 3, 0},
		{1, 3, 33},
		{2, 3, 67},
		{1, 2, 50},
		{1, 8, 13},
		{3, 3, 100},
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := Percentage(tc.score, tc.total); got != tc.want {
			t.Fatalf("Percentage(%d, %d) = %d, want %d", tc.score, tc.total, got, tc.want)
		}
	}
}
