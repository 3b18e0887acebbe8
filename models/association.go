package models

// QuizQuestion links a quiz to a question. The pair is unique; duplicate
// associations are rejected by the index, not silently ignored.
type QuizQuestion struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	QuizID     uint `json:"quiz_id" gorm:"not null;uniqueIndex:idx_quiz_question"`
	QuestionID uint `json:"question_id" gorm:"not null;uniqueIndex:idx_quiz_question"`
}

func (QuizQuestion) TableName() string {
	return "quizzes_questions"
}

// QuestionCategory links a question to a category. Rows are removed together
// with their question.
type QuestionCategory struct {
	ID         uint `json:"id" gorm:"primaryKey"`
	QuestionID uint `json:"question_id" gorm:"not null;uniqueIndex:idx_question_category"`
	CategoryID uint `json:"category_id" gorm:"not null;uniqueIndex:idx_question_category"`
}

func (QuestionCategory) TableName() string {
	return "questions_categories"
}
