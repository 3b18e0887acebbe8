package models

import (
	"time"
)

type Answer struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	AnswerText string    `json:"answer_text" gorm:"size:200;uniqueIndex;not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null;default:false"`
	QuestionID uint      `json:"question_id" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
