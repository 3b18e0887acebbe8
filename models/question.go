package models

import (
	"time"
)

type Question struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	QuestionText string    `json:"question_text" gorm:"size:200;uniqueIndex;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relationships
	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`
}

// QuestionRow is one flat row of the outer join across questions, answers and
// categories. Answer and category columns are nullable because a question may
// join to no categories at all.
type QuestionRow struct {
	ID           uint    `json:"id"`
	QuestionText string  `json:"question_text"`
	AnswerID     *uint   `json:"answer_id"`
	AnswerText   *string `json:"answer_text"`
	IsCorrect    *bool   `json:"is_correct"`
	CategoryID   *uint   `json:"category_id"`
	CategoryName *string `json:"category_name"`
	CategoryDesc *string `json:"category_desc"`
}

// QuestionDetail is the regrouped view of a question with its answers and
// categories, in first-appearance order.
type QuestionDetail struct {
	ID           uint             `json:"id"`
	QuestionText string           `json:"question_text"`
	Answers      []AnswerInDetail `json:"answers"`
	Categories   []CategoryBrief  `json:"categories"`
}

type AnswerInDetail struct {
	ID         uint   `json:"id"`
	AnswerText string `json:"answer_text"`
	IsCorrect  *bool  `json:"is_correct,omitempty"`
}

type CategoryBrief struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// QuestionKey pairs a question with its single correct answer, the minimum the
// scorer needs.
type QuestionKey struct {
	ID              uint `json:"id"`
	CorrectAnswerID uint `json:"correct_answer_id"`
}
