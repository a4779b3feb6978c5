package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"topicquiz/models"

	"gorm.io/gorm"
)

type SubmissionService struct {
	db            *gorm.DB
	quizService   *QuizService
	hub           *Hub
	revealAnswers bool
}

func NewSubmissionService(db *gorm.DB, quizService *QuizService, hub *Hub, revealAnswers bool) *SubmissionService {
	return &SubmissionService{
		db:            db,
		quizService:   quizService,
		hub:           hub,
		revealAnswers: revealAnswers,
	}
}

type SubmitRequest struct {
	User    string            `json:"user" binding:"required"`
	Topic   string            `json:"topic" binding:"required"`
	Answers map[string]string `json:"answers" binding:"required"`
}

type SubmitResult struct {
	Score      int                   `json:"score"`
	Total      int                   `json:"total"`
	Percentage int                   `json:"percentage"`
	Results    []models.AnswerResult `json:"results"`
}

// SubmissionEvent is the feed payload for a scored submission.
type SubmissionEvent struct {
	User       string    `json:"user"`
	Topic      string    `json:"topic"`
	Score      int       `json:"score"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
	CreatedAt  time.Time `json:"createdAt"`
}

const submissionScoredEvent = "submission_scored"

// Submit grades the answers against the topic's questions and records the
// response. Nothing is stored when grading fails.
func (s *SubmissionService) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResult, error) {
	user := strings.TrimSpace(req.User)
	topic := strings.TrimSpace(req.Topic)
	if user == "" || topic == "" || req.Answers == nil {
		return nil, ErrMissingFields
	}

	questions, err := s.quizService.QuestionsForTopic(ctx, topic)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoQuestions, topic)
	}

	results, score, err := ScoreAnswers(questions, req.Answers, s.revealAnswers)
	if err != nil {
		return nil, fmt.Errorf("score submission for %q: %w", topic, err)
	}

	response := models.Response{
		User:    user,
		Topic:   topic,
		Score:   score,
		Answers: results,
	}
	if err := s.db.WithContext(ctx).Create(&response).Error; err != nil {
		return nil, fmt.Errorf("save response: %w", err)
	}

	result := &SubmitResult{
		Score:      score,
		Total:      len(questions),
		Percentage: Percentage(score, len(questions)),
		Results:    results,
	}

	if s.hub != nil {
		sent := s.hub.BroadcastToTopic(topic, submissionScoredEvent, SubmissionEvent{
			User:       user,
			Topic:      topic,
			Score:      result.Score,
			Total:      result.Total,
			Percentage: result.Percentage,
			CreatedAt:  response.CreatedAt,
		})
		if sent > 0 {
			log.Printf("Broadcast %s for topic %s to %d subscribers", submissionScoredEvent, topic, sent)
		}
	}

	return result, nil
}
