package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrInvalidQuestion = errors.New("invalid question")

type Question struct {
	ID        uuid.UUID                   `json:"id" gorm:"type:uuid;primaryKey"`
	Topic     string                      `json:"topic" gorm:"not null"`
	Question  string                      `json:"question" gorm:"not null"`
	Options   datatypes.JSONSlice[string] `json:"options" gorm:"not null"`
	Answer    string                      `json:"answer" gorm:"not null"`
	CreatedAt time.Time                   `json:"-"`
	UpdatedAt time.Time                   `json:"-"`
}

// NewQuestion builds a question and rejects it unless answer is one of options.
func NewQuestion(topic, text string, options []string, answer string) (*Question, error) {
	q := &Question{
		Topic:    strings.TrimSpace(topic),
		Question: text,
		Options:  datatypes.JSONSlice[string](options),
		Answer:   answer,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}

// Validate checks the coupling between Answer and Options.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Topic) == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidQuestion)
	}
	if len(q.Options) == 0 {
		return fmt.Errorf("%w: at least one option is required", ErrInvalidQuestion)
	}
	if len(q.Options) > MaxOptions {
		return fmt.Errorf("%w: %d options exceeds the limit of %d", ErrInvalidQuestion, len(q.Options), MaxOptions)
	}
	if _, err := q.AnswerLetter(); err != nil {
		return err
	}
	return nil
}

// AnswerLetter resolves Answer to the letter of its position in Options.
func (q *Question) AnswerLetter() (string, error) {
	for i, option := range q.Options {
		if option == q.Answer {
			return OptionLetter(i)
		}
	}
	return "", fmt.Errorf("%w: answer %q is not one of the options", ErrInvalidQuestion, q.Answer)
}

func (q *Question) BeforeSave(tx *gorm.DB) error {
	q.Topic = strings.TrimSpace(q.Topic)
	return q.Validate()
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}
