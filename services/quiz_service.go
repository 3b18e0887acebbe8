package services

import (
	"context"

	"gorm.io/gorm"

	"quizapi/models"
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type CreateQuizRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"max=200"`
	IsActive    *bool  `json:"is_active"`
	Questions   []uint `json:"questions"`
}

type UpdateQuizRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"max=200"`
	IsActive    *bool  `json:"is_active" binding:"required"`
}

// CreateQuiz inserts the quiz row and its question associations in one
// transaction. Any association conflict rolls the whole operation back.
func (s *QuizService) CreateQuiz(ctx context.Context, req *CreateQuizRequest) (*models.Quiz, error) {
	quiz := models.Quiz{
		Title:       req.Title,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			if isConstraintViolation(err) {
				return conflictError(err)
			}
			return err
		}
		return associateQuestions(tx, quiz.ID, req.Questions)
	})
	if err != nil {
		return nil, err
	}

	return &quiz, nil
}

// GetQuizzes lists quizzes; non-admin callers only see active ones.
func (s *QuizService) GetQuizzes(ctx context.Context, activeOnly bool) ([]models.Quiz, error) {
	query := s.db.WithContext(ctx).Order("id")
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var quizzes []models.Quiz
	err := query.Find(&quizzes).Error
	return quizzes, err
}

func (s *QuizService) GetQuiz(ctx context.Context, quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.WithContext(ctx).First(&quiz, quizID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFoundError("quiz with id: %d was not found", quizID)
		}
		return nil, err
	}
	return &quiz, nil
}

func (s *QuizService) UpdateQuiz(ctx context.Context, quizID uint, req *UpdateQuizRequest) (*models.Quiz, error) {
	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	if req.IsActive != nil {
		quiz.IsActive = *req.IsActive
	}

	if err := s.db.WithContext(ctx).Save(quiz).Error; err != nil {
		if isConstraintViolation(err) {
			return nil, conflictError(err)
		}
		return nil, err
	}
	return quiz, nil
}

// DeleteQuiz removes the quiz and its question associations. The questions
// themselves survive.
func (s *QuizService) DeleteQuiz(ctx context.Context, quizID uint) error {
	if _, err := s.GetQuiz(ctx, quizID); err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quizID).Delete(&models.QuizQuestion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Quiz{}, quizID).Error
	})
}

// AddQuizQuestions associates questions with an existing quiz, rejecting any
// id already associated.
func (s *QuizService) AddQuizQuestions(ctx context.Context, quizID uint, questionIDs []uint) ([]models.QuizQuestion, error) {
	if _, err := s.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}

	var created []models.QuizQuestion
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := associateQuestions(tx, quizID, questionIDs); err != nil {
			return err
		}
		return tx.Where("quiz_id = ? AND question_id IN ?", quizID, questionIDs).
			Order("id").Find(&created).Error
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *QuizService) DeleteQuizQuestion(ctx context.Context, quizID, questionID uint) error {
	result := s.db.WithContext(ctx).
		Where("quiz_id = ? AND question_id = ?", quizID, questionID).
		Delete(&models.QuizQuestion{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFoundError("quiz doesn't include question with id: %d", questionID)
	}
	return nil
}

// GetQuizQuestions loads the quiz's questions with answers and categories via
// one outer join, regrouped into nested records.
func (s *QuizService) GetQuizQuestions(ctx context.Context, quizID uint) ([]models.QuestionDetail, error) {
	if _, err := s.GetQuiz(ctx, quizID); err != nil {
		return nil, err
	}

	var rows []models.QuestionRow
	err := s.db.WithContext(ctx).Raw(`
		SELECT questions.id AS id, questions.question_text AS question_text,
		       answers.id AS answer_id, answers.answer_text AS answer_text,
		       answers.is_correct AS is_correct,
		       categories.id AS category_id, categories.name AS category_name,
		       categories.description AS category_desc
		FROM questions
		JOIN quizzes_questions ON quizzes_questions.question_id = questions.id
		LEFT JOIN answers ON answers.question_id = questions.id
		LEFT JOIN questions_categories ON questions_categories.question_id = questions.id
		LEFT JOIN categories ON categories.id = questions_categories.category_id
		WHERE quizzes_questions.quiz_id = ?
		ORDER BY questions.id`, quizID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return GroupQuestionRows(rows), nil
}

// associateQuestions inserts quiz-question association rows after verifying
// none of the requested ids are already associated with the quiz. Duplicate
// ids within one request are not deduplicated here; the unique index rejects
// the second insert and the transaction rolls back.
func associateQuestions(tx *gorm.DB, quizID uint, questionIDs []uint) error {
	if len(questionIDs) == 0 {
		return nil
	}

	var existing []uint
	err := tx.Model(&models.QuizQuestion{}).
		Where("quiz_id = ?", quizID).
		Pluck("question_id", &existing).Error
	if err != nil {
		return err
	}

	if overlap := intersect(existing, questionIDs); len(overlap) > 0 {
		return validationError("questions with ids %v are already associated with quiz %d", overlap, quizID)
	}

	for _, questionID := range questionIDs {
		association := models.QuizQuestion{QuizID: quizID, QuestionID: questionID}
		if err := tx.Create(&association).Error; err != nil {
			if isConstraintViolation(err) {
				return conflictError(err)
			}
			return err
		}
	}
	return nil
}

// intersect returns the requested ids that already exist, preserving request
// order.
func intersect(existing, requested []uint) []uint {
	seen := make(map[uint]struct{}, len(existing))
	for _, id := range existing {
		seen[id] = struct{}{}
	}

	var overlap []uint
	for _, id := range requested {
		if _, ok := seen[id]; ok {
			overlap = append(overlap, id)
		}
	}
	return overlap
}
