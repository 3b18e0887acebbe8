package services

import (
	"context"

	"gorm.io/gorm"

	"quizapi/models"
)

// minAnswersPerQuestion is the floor every question keeps at all times,
// enforced on both the creation and deletion paths.
const minAnswersPerQuestion = 2

type QuestionService struct {
	db *gorm.DB
}

func NewQuestionService(db *gorm.DB) *QuestionService {
	return &QuestionService{db: db}
}

type CreateQuestionRequest struct {
	QuestionText string                `json:"question_text" binding:"required,max=200"`
	Answers      []CreateAnswerRequest `json:"answers" binding:"required,dive"`
}

type CreateAnswerRequest struct {
	AnswerText string `json:"answer_text" binding:"required,max=200"`
	IsCorrect  bool   `json:"is_correct"`
}

type UpdateQuestionRequest struct {
	QuestionText string `json:"question_text" binding:"required,max=200"`
}

// CreateQuestion inserts the question row, then each answer row referencing
// it, all in one transaction. A question never exists with fewer than two
// answers.
func (s *QuestionService) CreateQuestion(ctx context.Context, req *CreateQuestionRequest) (*models.Question, error) {
	if len(req.Answers) < minAnswersPerQuestion {
		return nil, validationError("question must have at least two answers")
	}

	question := models.Question{QuestionText: req.QuestionText}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&question).Error; err != nil {
			if isConstraintViolation(err) {
				return conflictError(err)
			}
			return err
		}

		for _, aReq := range req.Answers {
			answer := models.Answer{
				AnswerText: aReq.AnswerText,
				IsCorrect:  aReq.IsCorrect,
				QuestionID: question.ID,
			}
			if err := tx.Create(&answer).Error; err != nil {
				if isConstraintViolation(err) {
					return conflictError(err)
				}
				return err
			}
			question.Answers = append(question.Answers, answer)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &question, nil
}

// GetQuestions loads every question with answers and categories through the
// outer join, regrouped into nested records.
func (s *QuestionService) GetQuestions(ctx context.Context) ([]models.QuestionDetail, error) {
	rows, err := s.questionRows(ctx, 0)
	if err != nil {
		return nil, err
	}
	return GroupQuestionRows(rows), nil
}

func (s *QuestionService) GetQuestion(ctx context.Context, questionID uint) (*models.QuestionDetail, error) {
	rows, err := s.questionRows(ctx, questionID)
	if err != nil {
		return nil, err
	}

	questions := GroupQuestionRows(rows)
	if len(questions) != 1 {
		return nil, notFoundError("question with id: %d was not found", questionID)
	}
	return &questions[0], nil
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, questionID uint, req *UpdateQuestionRequest) (*models.Question, error) {
	var question models.Question
	if err := s.db.WithContext(ctx).First(&question, questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFoundError("question with id: %d was not found", questionID)
		}
		return nil, err
	}

	question.QuestionText = req.QuestionText
	if err := s.db.WithContext(ctx).Save(&question).Error; err != nil {
		if isConstraintViolation(err) {
			return nil, conflictError(err)
		}
		return nil, err
	}
	return &question, nil
}

// DeleteQuestion removes the question together with its answers, its category
// links and any quiz associations referencing it.
func (s *QuestionService) DeleteQuestion(ctx context.Context, questionID uint) error {
	var question models.Question
	if err := s.db.WithContext(ctx).First(&question, questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return notFoundError("question with id: %d was not found", questionID)
		}
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", questionID).Delete(&models.QuestionCategory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", questionID).Delete(&models.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", questionID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Question{}, questionID).Error
	})
}

func (s *QuestionService) AddAnswer(ctx context.Context, questionID uint, req *CreateAnswerRequest) (*models.Answer, error) {
	var question models.Question
	if err := s.db.WithContext(ctx).First(&question, questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFoundError("question with id: %d was not found", questionID)
		}
		return nil, err
	}

	answer := models.Answer{
		AnswerText: req.AnswerText,
		IsCorrect:  req.IsCorrect,
		QuestionID: questionID,
	}
	if err := s.db.WithContext(ctx).Create(&answer).Error; err != nil {
		if isConstraintViolation(err) {
			return nil, conflictError(err)
		}
		return nil, err
	}
	return &answer, nil
}

func (s *QuestionService) UpdateAnswer(ctx context.Context, questionID, answerID uint, req *CreateAnswerRequest) (*models.Answer, error) {
	var answer models.Answer
	err := s.db.WithContext(ctx).
		Where("id = ? AND question_id = ?", answerID, questionID).
		First(&answer).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFoundError("question or answer with such ids doesn't exist")
		}
		return nil, err
	}

	answer.AnswerText = req.AnswerText
	answer.IsCorrect = req.IsCorrect
	if err := s.db.WithContext(ctx).Save(&answer).Error; err != nil {
		if isConstraintViolation(err) {
			return nil, conflictError(err)
		}
		return nil, err
	}
	return &answer, nil
}

// DeleteAnswer refuses to drop a question below two answers.
func (s *QuestionService) DeleteAnswer(ctx context.Context, questionID, answerID uint) error {
	var answer models.Answer
	err := s.db.WithContext(ctx).
		Where("id = ? AND question_id = ?", answerID, questionID).
		First(&answer).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return notFoundError("answer with id: %d was not found", answerID)
		}
		return err
	}

	var count int64
	err = s.db.WithContext(ctx).Model(&models.Answer{}).
		Where("question_id = ?", questionID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if err := checkAnswerRemovable(count); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Delete(&models.Answer{}, answerID).Error
}

// checkAnswerRemovable rejects removing an answer from a question that holds
// only the minimum.
func checkAnswerRemovable(current int64) error {
	if current <= minAnswersPerQuestion {
		return validationError("question must have at least two answers")
	}
	return nil
}

func (s *QuestionService) AddQuestionCategory(ctx context.Context, questionID, categoryID uint) (*models.QuestionCategory, error) {
	var question models.Question
	if err := s.db.WithContext(ctx).First(&question, questionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFoundError("question or category with such ids doesn't exist")
		}
		return nil, err
	}
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, categoryID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFoundError("question or category with such ids doesn't exist")
		}
		return nil, err
	}

	association := models.QuestionCategory{QuestionID: questionID, CategoryID: categoryID}
	if err := s.db.WithContext(ctx).Create(&association).Error; err != nil {
		if isConstraintViolation(err) {
			return nil, conflictError(err)
		}
		return nil, err
	}
	return &association, nil
}

func (s *QuestionService) DeleteQuestionCategory(ctx context.Context, questionID, categoryID uint) error {
	result := s.db.WithContext(ctx).
		Where("question_id = ? AND category_id = ?", questionID, categoryID).
		Delete(&models.QuestionCategory{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundError("question or category with such ids doesn't exist")
	}
	return nil
}

// questionRows runs the outer join across questions, answers and categories.
// questionID of zero loads every question.
func (s *QuestionService) questionRows(ctx context.Context, questionID uint) ([]models.QuestionRow, error) {
	query := `
		SELECT questions.id AS id, questions.question_text AS question_text,
		       answers.id AS answer_id, answers.answer_text AS answer_text,
		       answers.is_correct AS is_correct,
		       categories.id AS category_id, categories.name AS category_name,
		       categories.description AS category_desc
		FROM questions
		LEFT JOIN answers ON answers.question_id = questions.id
		LEFT JOIN questions_categories ON questions_categories.question_id = questions.id
		LEFT JOIN categories ON categories.id = questions_categories.category_id`

	var rows []models.QuestionRow
	var err error
	if questionID != 0 {
		err = s.db.WithContext(ctx).Raw(query+` WHERE questions.id = ? ORDER BY questions.id`, questionID).Scan(&rows).Error
	} else {
		err = s.db.WithContext(ctx).Raw(query + ` ORDER BY questions.id`).Scan(&rows).Error
	}
	if err != nil {
		return nil, err
	}
	return rows, nil
}
