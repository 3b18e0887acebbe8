package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizapi/models"
)

// resultDetailTTL is how long a result detail survives in the cache.
const resultDetailTTL = 172800 * time.Second // 48 hours

const cacheKeySeparator = ":::"

// cacheTimeLayout must render the microsecond-truncated completion timestamp
// exactly as the durable summary will reproduce it.
const cacheTimeLayout = time.RFC3339Nano

// ResultCacheKey derives the cache key for a result detail from fields the
// durable summary also carries, so the key can be rebuilt later without a
// back-reference from cache to database. Two attempts by the same user at the
// same quiz finishing within one microsecond share a key; the second write
// wins. Accepted limitation.
func ResultCacheKey(email string, quizID uint, finishedAt time.Time) string {
	return fmt.Sprintf("%s%s%d%s%s",
		email, cacheKeySeparator, quizID, cacheKeySeparator,
		finishedAt.UTC().Format(cacheTimeLayout))
}

type ResultService struct {
	db        *gorm.DB
	cache     ResultCache
	exportDir string
	now       func() time.Time
}

func NewResultService(db *gorm.DB, cache ResultCache, exportDir string) *ResultService {
	return &ResultService{
		db:        db,
		cache:     cache,
		exportDir: exportDir,
		now:       time.Now,
	}
}

// SubmitAnswers scores a user's submission against the quiz's correct-answer
// key and persists the outcome: the full detail goes to the cache with a 48h
// expiry, the summary goes to the database as a new row. The two writes are
// deliberately independent; neither is rolled back when the other fails.
func (s *ResultService) SubmitAnswers(ctx context.Context, quizID uint, user models.User, answers []models.UserAnswer) (*models.QuizResult, error) {
	var quiz models.Quiz
	if err := s.db.WithContext(ctx).First(&quiz, quizID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, notFoundError("quiz with id: %d was not found", quizID)
		}
		return nil, err
	}

	keys, err := s.questionKeys(ctx, quizID)
	if err != nil {
		return nil, err
	}

	detail, err := ScoreAnswers(keys, answers, s.now)
	if err != nil {
		return nil, err
	}
	detail.QuizID = quizID
	detail.UserEmail = user.Email

	if err := s.writeDetailToCache(ctx, detail); err != nil {
		// Best effort: the summary below remains retrievable either way.
		log.Printf("Failed to cache result detail for %s quiz %d: %v", user.Email, quizID, err)
	}

	summary := models.QuizResult{
		QuizID:     detail.QuizID,
		UserEmail:  detail.UserEmail,
		UserScore:  detail.UserScore,
		MaxScore:   detail.MaxScore,
		FinishedAt: detail.FinishedAt,
	}
	if err := s.db.WithContext(ctx).Create(&summary).Error; err != nil {
		if isConstraintViolation(err) {
			return nil, conflictError(err)
		}
		return nil, err
	}

	return &summary, nil
}

// questionKeys loads the quiz's question ids paired with each question's
// correct answer id, sorted ascending by question id as the scorer requires.
func (s *ResultService) questionKeys(ctx context.Context, quizID uint) ([]models.QuestionKey, error) {
	var keys []models.QuestionKey
	err := s.db.WithContext(ctx).Raw(`
		SELECT questions.id AS id, answers.id AS correct_answer_id
		FROM questions
		JOIN quizzes_questions ON quizzes_questions.question_id = questions.id
		JOIN answers ON answers.question_id = questions.id AND answers.is_correct
		WHERE quizzes_questions.quiz_id = ?
		ORDER BY questions.id`, quizID).Scan(&keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *ResultService) writeDetailToCache(ctx context.Context, detail *models.QuizResultDetail) error {
	data, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("failed to marshal result detail: %v", err)
	}

	key := ResultCacheKey(detail.UserEmail, detail.QuizID, detail.FinishedAt)
	return s.cache.Set(ctx, key, data, resultDetailTTL)
}

// GetResult fetches exactly one summary row. A non-empty emailFilter restricts
// the lookup to that user's own results. Zero rows is a not-found condition;
// more than one means the store is in a state the writer can never produce.
func (s *ResultService) GetResult(ctx context.Context, resultID uint, emailFilter string) (*models.QuizResult, error) {
	query := s.db.WithContext(ctx).Where("id = ?", resultID)
	if emailFilter != "" {
		query = query.Where("user_email = ?", emailFilter)
	}

	var results []models.QuizResult
	if err := query.Find(&results).Error; err != nil {
		return nil, err
	}

	switch len(results) {
	case 0:
		return nil, notFoundError("quiz result with id: %d was not found", resultID)
	case 1:
		return &results[0], nil
	default:
		return nil, fmt.Errorf("%w: %d rows for quiz result id %d", ErrIntegrity, len(results), resultID)
	}
}

// ListResults returns summaries, optionally filtered by quiz and/or user.
func (s *ResultService) ListResults(ctx context.Context, quizID uint, email string) ([]models.QuizResult, error) {
	query := s.db.WithContext(ctx).Order("id")
	if quizID != 0 {
		query = query.Where("quiz_id = ?", quizID)
	}
	if email != "" {
		query = query.Where("user_email = ?", email)
	}

	var results []models.QuizResult
	err := query.Find(&results).Error
	return results, err
}

// GetResultDetail rebuilds the cache key from the stored summary and looks up
// the full breakdown. A miss means the detail expired or was evicted, which
// is distinct from the result id being invalid.
func (s *ResultService) GetResultDetail(ctx context.Context, resultID uint) (*models.QuizResultDetail, error) {
	summary, err := s.GetResult(ctx, resultID, "")
	if err != nil {
		return nil, err
	}

	key := ResultCacheKey(summary.UserEmail, summary.QuizID, summary.FinishedAt)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if err == errCacheMiss {
			return nil, notFoundError("detail for quiz result %d is no longer available", resultID)
		}
		return nil, err
	}

	var detail models.QuizResultDetail
	if err := json.Unmarshal(data, &detail); err != nil {
		return nil, fmt.Errorf("failed to unmarshal result detail: %v", err)
	}
	return &detail, nil
}

// ExportResultDetail renders a detail as a semicolon-delimited file, one line
// per per-question outcome with the summary fields repeated. The export
// directory holds at most one file; each export replaces the previous one.
// Column eight duplicates correct_answer_id where the header announces
// is_correct, preserved from the legacy export format.
func (s *ResultService) ExportResultDetail(detail *models.QuizResultDetail) (string, error) {
	if err := os.RemoveAll(s.exportDir); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("details-%s.csv", uuid.NewString())
	path := filepath.Join(s.exportDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if _, err := file.WriteString(
		"quiz_id;user_email;user_score;max_score;question_id;user_answer_id;" +
			"correct_answer_id;is_correct;finished_at\n"); err != nil {
		return "", err
	}

	finishedAt := detail.FinishedAt.UTC().Format(cacheTimeLayout)
	for _, answer := range detail.Answers {
		line := fmt.Sprintf("%d;%s;%d;%d;%d;%d;%d;%d;%s\n",
			detail.QuizID, detail.UserEmail, detail.UserScore, detail.MaxScore,
			answer.QuestionID, answer.UserAnswerID, answer.CorrectAnswerID,
			answer.CorrectAnswerID, finishedAt)
		if _, err := file.WriteString(line); err != nil {
			return "", err
		}
	}

	return path, nil
}
