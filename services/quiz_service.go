package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"topicquiz/models"

	"gorm.io/gorm"
)

type QuizService struct {
	db    *gorm.DB
	cache *QuestionCache
}

func NewQuizService(db *gorm.DB, cache *QuestionCache) *QuizService {
	return &QuizService{
		db:    db,
		cache: cache,
	}
}

// ListTopics returns every topic name in insertion order. Only this listing
// is served from the cache.
func (s *QuizService) ListTopics(ctx context.Context) ([]string, error) {
	if names, ok := s.cache.Topics(ctx); ok {
		return names, nil
	}

	names, err := s.topicNamesFromStore(ctx)
	if err != nil {
		return nil, err
	}

	if len(names) > 0 {
		s.cache.SetTopics(ctx, names)
	}
	return names, nil
}

func (s *QuizService) topicNamesFromStore(ctx context.Context) ([]string, error) {
	names := []string{}
	err := s.db.WithContext(ctx).
		Model(&models.Topic{}).
		Order("created_at, name").
		Pluck("name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// FindTopic resolves a topic by case-insensitive name. When no topic matches,
// the returned *TopicNotFoundError lists every topic currently stored.
func (s *QuizService) FindTopic(ctx context.Context, name string) (*models.Topic, error) {
	name = strings.TrimSpace(name)

	var topic models.Topic
	err := s.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&topic).Error
	if err == nil {
		return &topic, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find topic %q: %w", name, err)
	}

	suggestions, err := s.topicNamesFromStore(ctx)
	if err != nil {
		return nil, err
	}
	return nil, &TopicNotFoundError{Name: name, Suggestions: suggestions}
}

// GetQuestionsByTopic checks that the topic exists before fetching its
// questions, so an unknown topic and an empty topic fail differently.
func (s *QuizService) GetQuestionsByTopic(ctx context.Context, name string) ([]models.Question, error) {
	topic, err := s.FindTopic(ctx, name)
	if err != nil {
		return nil, err
	}

	questions, err := s.QuestionsForTopic(ctx, topic.Name)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoQuestions, topic.Name)
	}
	return questions, nil
}

// QuestionsForTopic reads the questions whose topic matches name
// case-insensitively straight from the store. An empty result is not an error.
func (s *QuizService) QuestionsForTopic(ctx context.Context, name string) ([]models.Question, error) {
	name = strings.TrimSpace(name)

	var questions []models.Question
	err := s.db.WithContext(ctx).
		Where("LOWER(topic) = LOWER(?)", name).
		Order("created_at, id").
		Find(&questions).Error
	if err != nil {
		return nil, fmt.Errorf("fetch questions for %q: %w", name, err)
	}
	return questions, nil
}

// CreateTopic stores a topic. It exists for seeding and tests; no HTTP route
// exposes it.
func (s *QuizService) CreateTopic(ctx context.Context, name string) (*models.Topic, error) {
	topic := models.Topic{Name: name}
	if err := s.db.WithContext(ctx).Create(&topic).Error; err != nil {
		return nil, fmt.Errorf("create topic %q: %w", name, err)
	}
	return &topic, nil
}

// CreateQuestion validates and stores a question.
func (s *QuizService) CreateQuestion(ctx context.Context, q *models.Question) error {
	if err := q.Validate(); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Create(q).Error; err != nil {
		return fmt.Errorf("create question: %w", err)
	}
	return nil
}
