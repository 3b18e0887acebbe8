package models

import (
	"time"
)

// QuizResult is the durable summary of one completed attempt. Rows are written
// exactly once and never updated.
type QuizResult struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	QuizID     uint      `json:"quiz_id" gorm:"not null"`
	UserEmail  string    `json:"user_email" gorm:"size:50;not null;index"`
	UserScore  int       `json:"user_score" gorm:"not null;default:0"`
	MaxScore   int       `json:"max_score" gorm:"not null;default:0"`
	FinishedAt time.Time `json:"finished_at" gorm:"not null"`
}

// ResultAnswer is one per-question outcome inside a result detail.
type ResultAnswer struct {
	QuestionID      uint `json:"question_id"`
	UserAnswerID    uint `json:"user_answer_id"`
	CorrectAnswerID uint `json:"correct_answer_id"`
	IsCorrect       bool `json:"is_correct"`
}

// QuizResultDetail is the full breakdown of an attempt. It lives only in the
// cache, serialized as JSON, and may be gone after its expiry window.
type QuizResultDetail struct {
	QuizID     uint           `json:"quiz_id"`
	UserEmail  string         `json:"user_email"`
	UserScore  int            `json:"user_score"`
	MaxScore   int            `json:"max_score"`
	FinishedAt time.Time      `json:"finished_at"`
	Answers    []ResultAnswer `json:"answers"`
}

// UserAnswer is one submitted (question, answer) pair.
type UserAnswer struct {
	QuestionID uint `json:"question_id" binding:"required"`
	AnswerID   uint `json:"answer_id" binding:"required"`
}
