package services

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFields = errors.New("missing required fields")
	ErrNoQuestions   = errors.New("no questions found for topic")
)

// TopicNotFoundError carries the known topic names so callers can suggest them.
type TopicNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *TopicNotFoundError) Error() string {
	return fmt.Sprintf("topic %q not found", e.Name)
}
