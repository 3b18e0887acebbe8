package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizapi/models"
)

var fixedTime = time.Date(2026, 3, 14, 15, 9, 26, 535898000, time.UTC)

func fixedClock() time.Time { return fixedTime }

func TestScoreAnswers_FullExample(t *testing.T) {
	questions := []models.QuestionKey{
		{ID: 1, CorrectAnswerID: 1},
		{ID: 2, CorrectAnswerID: 3},
	}
	answers := []models.UserAnswer{
		{QuestionID: 1, AnswerID: 1},
		{QuestionID: 2, AnswerID: 9},
	}

	result, err := ScoreAnswers(questions, answers, fixedClock)
	require.NoError(t, err)

	assert.Equal(t, 1, result.UserScore)
	assert.Equal(t, 2, result.MaxScore)
	assert.Equal(t, fixedTime, result.FinishedAt)

	require.Len(t, result.Answers, 2)
	assert.Equal(t, models.ResultAnswer{QuestionID: 1, UserAnswerID: 1, CorrectAnswerID: 1, IsCorrect: true}, result.Answers[0])
	assert.Equal(t, models.ResultAnswer{QuestionID: 2, UserAnswerID: 9, CorrectAnswerID: 3, IsCorrect: false}, result.Answers[1])
}

func TestScoreAnswers_AllCorrect(t *testing.T) {
	questions := []models.QuestionKey{
		{ID: 1, CorrectAnswerID: 11},
		{ID: 2, CorrectAnswerID: 22},
		{ID: 3, CorrectAnswerID: 33},
	}
	answers := []models.UserAnswer{
		{QuestionID: 1, AnswerID: 11},
		{QuestionID: 2, AnswerID: 22},
		{QuestionID: 3, AnswerID: 33},
	}

	result, err := ScoreAnswers(questions, answers, fixedClock)
	require.NoError(t, err)
	assert.Equal(t, 3, result.UserScore)
	assert.Equal(t, 3, result.MaxScore)
}

func TestScoreAnswers_SortsSubmissionsByQuestionID(t *testing.T) {
	questions := []models.QuestionKey{
		{ID: 1, CorrectAnswerID: 11},
		{ID: 2, CorrectAnswerID: 22},
	}
	answers := []models.UserAnswer{
		{QuestionID: 2, AnswerID: 22},
		{QuestionID: 1, AnswerID: 11},
	}

	result, err := ScoreAnswers(questions, answers, fixedClock)
	require.NoError(t, err)
	assert.Equal(t, 2, result.UserScore)
	assert.Equal(t, uint(1), result.Answers[0].QuestionID)
	assert.Equal(t, uint(2), result.Answers[1].QuestionID)
}

func TestScoreAnswers_CountMismatch(t *testing.T) {
	questions := []models.QuestionKey{
		{ID: 1, CorrectAnswerID: 11},
		{ID: 2, CorrectAnswerID: 22},
	}

	for _, answers := range [][]models.UserAnswer{
		{{QuestionID: 1, AnswerID: 11}},
		{{QuestionID: 1, AnswerID: 11}, {QuestionID: 2, AnswerID: 22}, {QuestionID: 3, AnswerID: 33}},
		nil,
	} {
		_, err := ScoreAnswers(questions, answers, fixedClock)
		assert.True(t, errors.Is(err, ErrValidation), "expected validation error, got %v", err)
	}
}

func TestScoreAnswers_QuestionSetMismatch(t *testing.T) {
	questions := []models.QuestionKey{
		{ID: 1, CorrectAnswerID: 11},
		{ID: 2, CorrectAnswerID: 22},
	}
	// Right count, wrong question ids.
	answers := []models.UserAnswer{
		{QuestionID: 1, AnswerID: 11},
		{QuestionID: 7, AnswerID: 22},
	}

	_, err := ScoreAnswers(questions, answers, fixedClock)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestScoreAnswers_DuplicateQuestionID(t *testing.T) {
	questions := []models.QuestionKey{
		{ID: 1, CorrectAnswerID: 11},
		{ID: 2, CorrectAnswerID: 22},
	}
	answers := []models.UserAnswer{
		{QuestionID: 1, AnswerID: 11},
		{QuestionID: 1, AnswerID: 12},
	}

	_, err := ScoreAnswers(questions, answers, fixedClock)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestScoreAnswers_DoesNotMutateInput(t *testing.T) {
	questions := []models.QuestionKey{
		{ID: 1, CorrectAnswerID: 11},
		{ID: 2, CorrectAnswerID: 22},
	}
	answers := []models.UserAnswer{
		{QuestionID: 2, AnswerID: 22},
		{QuestionID: 1, AnswerID: 11},
	}

	_, err := ScoreAnswers(questions, answers, fixedClock)
	require.NoError(t, err)
	assert.Equal(t, uint(2), answers[0].QuestionID)
}

func TestScoreAnswers_TruncatesTimestampToMicroseconds(t *testing.T) {
	clock := func() time.Time {
		return time.Date(2026, 3, 14, 15, 9, 26, 535897932, time.UTC)
	}

	result, err := ScoreAnswers(nil, nil, clock)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 15, 9, 26, 535897000, time.UTC), result.FinishedAt)
}
