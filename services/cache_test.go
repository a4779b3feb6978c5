package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"topicquiz/models"
	"topicquiz/testutil"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func newTestCache(t *testing.T) (*QuestionCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewQuestionCache(client, time.Minute), mr
}

func TestQuestionCache_NilIsDisabled(t *testing.T) {
	var cache *QuestionCache
	if cache.Enabled() {
		t.Fatalf("nil cache must be disabled")
	}
	if _, ok := cache.Topics(context.Background()); ok {
		t.Fatalf("nil cache must always miss")
	}
	cache.SetTopics(context.Background(), []string{"Math"})
	if err := cache.Ping(context.Background()); err != ErrCacheDisabled {
		t.Fatalf("expected ErrCacheDisabled, got %v", err)
	}
}

func newCachedServices(t *testing.T) (*QuizService, *SubmissionService, *gorm.DB, *miniredis.Miniredis) {
	t.Helper()
	cache, mr := newTestCache(t)
	db := testutil.NewDB(t)
	testutil.Seed(t, db)
	quiz := NewQuizService(db, cache)
	return quiz, NewSubmissionService(db, quiz, nil, false), db, mr
}

func addMathQuestion(t *testing.T, db *gorm.DB) *models.Question {
	t.Helper()
	q, err := models.NewQuestion("math", "3 * 3 = ?", []string{"6", "9"}, "9")
	if err != nil {
		t.Fatalf("NewQuestion: %v", err)
	}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("create question: %v", err)
	}
	return q
}

func TestQuestionCache_TopicListingIsCachedAndExpires(t *testing.T) {
	quiz, _, db, mr := newCachedServices(t)
	ctx := context.Background()

	if _, err := quiz.ListTopics(ctx); err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	if !mr.Exists(topicsCacheKey) {
		t.Fatalf("expected topics to be cached")
	}
	if ttl := mr.TTL(topicsCacheKey); ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected TTL of at most a minute, got %s", ttl)
	}

	if err := db.Create(&models.Topic{Name: "Music"}).Error; err != nil {
		t.Fatalf("create topic: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	names, err := quiz.ListTopics(ctx)
	if err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	if len(names) != len(testutil.TopicNames)+1 {
		t.Fatalf("expected %d topics after expiry, got %v", len(testutil.TopicNames)+1, names)
	}
}

func TestQuestionCache_SuggestionsReflectCurrentTopics(t *testing.T) {
	quiz, _, db, _ := newCachedServices(t)
	ctx := context.Background()

	if _, err := quiz.ListTopics(ctx); err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	if err := db.Create(&models.Topic{Name: "Music"}).Error; err != nil {
		t.Fatalf("create topic: %v", err)
	}

	_, err := quiz.GetQuestionsByTopic(ctx, "Astrology")
	var notFound *TopicNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected TopicNotFoundError, got %v", err)
	}
	want := append(append([]string{}, testutil.TopicNames...), "Music")
	if !reflect.DeepEqual(notFound.Suggestions, want) {
		t.Fatalf("expected suggestions %v, got %v", want, notFound.Suggestions)
	}
}

func TestQuestionCache_QuestionsAlwaysReadFromStore(t *testing.T) {
	quiz, _, db, mr := newCachedServices(t)
	ctx := context.Background()

	if _, err := quiz.GetQuestionsByTopic(ctx, "Math"); err != nil {
		t.Fatalf("GetQuestionsByTopic: %v", err)
	}
	added := addMathQuestion(t, db)

	questions, err := quiz.GetQuestionsByTopic(ctx, "MATH")
	if err != nil {
		t.Fatalf("GetQuestionsByTopic: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	found := false
	for _, q := range questions {
		if q.ID == added.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("new question %s missing from %v", added.ID, questions)
	}
	for _, key := range mr.Keys() {
		if key != topicsCacheKey {
			t.Fatalf("unexpected cache key %s", key)
		}
	}
}

func TestQuestionCache_SubmitScoresAgainstStore(t *testing.T) {
	quiz, submissions, db, _ := newCachedServices(t)
	ctx := context.Background()

	if _, err := quiz.GetQuestionsByTopic(ctx, "Math"); err != nil {
		t.Fatalf("GetQuestionsByTopic: %v", err)
	}
	if _, err := quiz.ListTopics(ctx); err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	added := addMathQuestion(t, db)

	result, err := submissions.Submit(ctx, &SubmitRequest{
		User:    "erin",
		Topic:   "Math",
		Answers: map[string]string{added.ID.String(): "B"},
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if result.Total != 2 || result.Score != 1 || result.Percentage != 50 {
		t.Fatalf("expected 1/2 (50%%), got %+v", result)
	}

	var saved models.Response
	if err := db.First(&saved).Error; err != nil {
		t.Fatalf("load response: %v", err)
	}
	if saved.Score != 1 || len(saved.Answers) != 2 {
		t.Fatalf("unexpected stored response: %+v", saved)
	}
}

func TestQuestionCache_EmptyResultsNotCached(t *testing.T) {
	cache, mr := newTestCache(t)
	svc := NewQuizService(testutil.NewDB(t), cache)

	if _, err := svc.ListTopics(context.Background()); err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	if mr.Exists(topicsCacheKey) {
		t.Fatalf("empty topic list must not be cached")
	}
}

func TestQuestionCache_RedisDownFallsThrough(t *testing.T) {
	cache, mr := newTestCache(t)
	db := testutil.NewDB(t)
	testutil.Seed(t, db)
	svc := NewQuizService(db, cache)
	mr.Close()

	names, err := svc.ListTopics(context.Background())
	if err != nil {
		t.Fatalf("ListTopics must not fail when redis is down: %v", err)
	}
	if len(names) != len(testutil.TopicNames) {
		t.Fatalf("expected %d topics, got %d", len(testutil.TopicNames), len(names))
	}
	if err := cache.Ping(context.Background()); err == nil {
		t.Fatalf("expected ping error with redis down")
	}
}
