package services

import (
	"sort"
	"time"

	"quizapi/models"
)

// ScoreAnswers validates a submitted answer set against the quiz's question
// keys and computes the result. questions must be sorted ascending by id,
// which the query layer guarantees. The clock is injected so the completion
// timestamp can be fixed in tests.
//
// The timestamp is truncated to microseconds: Postgres stores no finer, and
// the cache key derived from the stored summary must reproduce the key used
// at write time.
func ScoreAnswers(questions []models.QuestionKey, answers []models.UserAnswer, now func() time.Time) (*models.QuizResultDetail, error) {
	if len(answers) != len(questions) {
		return nil, validationError(
			"the number of user's answers does not correspond to the number of questions in the quiz")
	}

	sorted := make([]models.UserAnswer, len(answers))
	copy(sorted, answers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].QuestionID < sorted[j].QuestionID
	})

	result := &models.QuizResultDetail{
		FinishedAt: now().UTC().Truncate(time.Microsecond),
		MaxScore:   len(questions),
		Answers:    make([]models.ResultAnswer, 0, len(questions)),
	}

	for i, answer := range sorted {
		if answer.QuestionID != questions[i].ID {
			return nil, validationError(
				"user's answers do not correspond to the questions of the quiz")
		}

		item := models.ResultAnswer{
			QuestionID:      answer.QuestionID,
			UserAnswerID:    answer.AnswerID,
			CorrectAnswerID: questions[i].CorrectAnswerID,
		}
		if answer.AnswerID == questions[i].CorrectAnswerID {
			result.UserScore++
			item.IsCorrect = true
		}

		result.Answers = append(result.Answers, item)
	}

	return result, nil
}
