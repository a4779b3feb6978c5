package testutil

import (
	_ "embed"
	"testing"

	"topicquiz/models"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// IDs of fixture questions referenced directly by tests.
const (
	MathQuestionID     = "11111111-1111-4111-8111-111111111111"
	HistoryQuestion1ID = "22222222-2222-4222-8222-222222222221"
	HistoryQuestion2ID = "22222222-2222-4222-8222-222222222222"
	HistoryQuestion3ID = "22222222-2222-4222-8222-222222222223"
	ScienceQuestion1ID = "33333333-3333-4333-8333-333333333331"
	ScienceQuestion2ID = "33333333-3333-4333-8333-333333333332"
)

// TopicNames lists the fixture topics in insertion order.
var TopicNames = []string{"Math", "History", "Science", "Geography"}

//go:embed testdata/fixtures.yaml
var fixturesYAML []byte

type fixtureFile struct {
	Topics []fixtureTopic `yaml:"topics"`
}

type fixtureTopic struct {
	Name          string            `yaml:"name"`
	QuestionTopic string            `yaml:"questionTopic"`
	Questions     []fixtureQuestion `yaml:"questions"`
}

type fixtureQuestion struct {
	ID       string   `yaml:"id"`
	Question string   `yaml:"question"`
	Options  []string `yaml:"options"`
	Answer   string   `yaml:"answer"`
}

// Seed loads the fixture topics and questions into db.
func Seed(t *testing.T, db *gorm.DB) {
	t.Helper()

	var file fixtureFile
	if err := yaml.Unmarshal(fixturesYAML, &file); err != nil {
		t.Fatalf("parse fixtures: %v", err)
	}

	for _, ft := range file.Topics {
		if err := db.Create(&models.Topic{Name: ft.Name}).Error; err != nil {
			t.Fatalf("seed topic %s: %v", ft.Name, err)
		}

		questionTopic := ft.QuestionTopic
		if questionTopic == "" {
			questionTopic = ft.Name
		}
		for _, fq := range ft.Questions {
			q, err := models.NewQuestion(questionTopic, fq.Question, fq.Options, fq.Answer)
			if err != nil {
				t.Fatalf("fixture question %s: %v", fq.ID, err)
			}
			q.ID = uuid.MustParse(fq.ID)
			if err := db.Create(q).Error; err != nil {
				t.Fatalf("seed question %s: %v", fq.ID, err)
			}
		}
	}
}

// InsertRawQuestion stores q without running model hooks, so tests can place
// inconsistent data the service would normally reject.
func InsertRawQuestion(t *testing.T, db *gorm.DB, q *models.Question) {
	t.Helper()

	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if err := db.Session(&gorm.Session{SkipHooks: true}).Create(q).Error; err != nil {
		t.Fatalf("insert raw question: %v", err)
	}
}

// InvalidQuestion returns a question whose answer is not among its options.
func InvalidQuestion(topic string) *models.Question {
	return &models.Question{
		Topic:    topic,
		Question: "Which option is missing?",
		Options:  []string{"1", "2"},
		Answer:   "3",
	}
}
