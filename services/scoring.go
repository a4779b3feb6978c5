package services

import (
	"math"

	"topicquiz/models"
)

// ScoreAnswers grades answers (question ID to selected letter) against
// questions. Letters are compared case-sensitively and a missing answer counts
// as "". An inconsistent question fails the whole grading with
// models.ErrInvalidQuestion.
func ScoreAnswers(questions []models.Question, answers map[string]string, revealAnswers bool) ([]models.AnswerResult, int, error) {
	results := make([]models.AnswerResult, 0, len(questions))
	score := 0

	for _, q := range questions {
		correctLetter, err := q.AnswerLetter()
		if err != nil {
			return nil, 0, err
		}

		questionID := q.ID.String()
		selected := answers[questionID]
		correct := selected == correctLetter
		if correct {
			score++
		}

		result := models.AnswerResult{
			QuestionID: questionID,
			Question:   q.Question,
			Selected:   selected,
			Correct:    correct,
		}
		if revealAnswers {
			result.CorrectAnswer = correctLetter
		}
		results = append(results, result)
	}

	return results, score, nil
}

// Percentage rounds half away from zero; total must be positive.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}
