package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnswerResult is the scored outcome for a single question of a submission.
type AnswerResult struct {
	QuestionID    string `json:"questionId"`
	Question      string `json:"question"`
	Selected      string `json:"selected"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
}

// Response is written once per submission and never updated.
type Response struct {
	ID        uuid.UUID                         `json:"id" gorm:"type:uuid;primaryKey"`
	User      string                            `json:"user" gorm:"not null"`
	Topic     string                            `json:"topic" gorm:"not null"`
	Score     int                               `json:"score" gorm:"not null;default:0"`
	Answers   datatypes.JSONSlice[AnswerResult] `json:"answers"`
	CreatedAt time.Time                         `json:"createdAt"`
}

func (r *Response) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	return nil
}
