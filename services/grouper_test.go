package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizapi/models"
)

func uintPtr(v uint) *uint    { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func row(qID uint, text string, aID *uint, aText *string, correct *bool, cID *uint, cName *string) models.QuestionRow {
	return models.QuestionRow{
		ID:           qID,
		QuestionText: text,
		AnswerID:     aID,
		AnswerText:   aText,
		IsCorrect:    correct,
		CategoryID:   cID,
		CategoryName: cName,
	}
}

func TestGroupQuestionRows_Basic(t *testing.T) {
	rows := []models.QuestionRow{
		row(1, "Q1", uintPtr(10), strPtr("A"), boolPtr(true), uintPtr(100), strPtr("Math")),
		row(1, "Q1", uintPtr(11), strPtr("B"), boolPtr(false), uintPtr(100), strPtr("Math")),
		row(2, "Q2", uintPtr(20), strPtr("C"), boolPtr(false), nil, nil),
		row(2, "Q2", uintPtr(21), strPtr("D"), boolPtr(true), nil, nil),
	}

	questions := GroupQuestionRows(rows)
	require.Len(t, questions, 2)

	assert.Equal(t, uint(1), questions[0].ID)
	assert.Equal(t, "Q1", questions[0].QuestionText)
	require.Len(t, questions[0].Answers, 2)
	assert.Equal(t, uint(10), questions[0].Answers[0].ID)
	assert.True(t, *questions[0].Answers[0].IsCorrect)
	assert.Equal(t, uint(11), questions[0].Answers[1].ID)
	require.Len(t, questions[0].Categories, 1)
	assert.Equal(t, "Math", questions[0].Categories[0].Name)

	assert.Equal(t, uint(2), questions[1].ID)
	require.Len(t, questions[1].Answers, 2)
	assert.Empty(t, questions[1].Categories)
	assert.NotNil(t, questions[1].Categories)
}

func TestGroupQuestionRows_DeduplicatesSubRows(t *testing.T) {
	// The cross product of 2 answers x 2 categories yields 4 rows; each
	// answer and category must appear exactly once.
	rows := []models.QuestionRow{
		row(1, "Q1", uintPtr(10), strPtr("A"), boolPtr(true), uintPtr(100), strPtr("Math")),
		row(1, "Q1", uintPtr(10), strPtr("A"), boolPtr(true), uintPtr(101), strPtr("Logic")),
		row(1, "Q1", uintPtr(11), strPtr("B"), boolPtr(false), uintPtr(100), strPtr("Math")),
		row(1, "Q1", uintPtr(11), strPtr("B"), boolPtr(false), uintPtr(101), strPtr("Logic")),
	}

	questions := GroupQuestionRows(rows)
	require.Len(t, questions, 1)
	assert.Len(t, questions[0].Answers, 2)
	assert.Len(t, questions[0].Categories, 2)
	assert.Equal(t, "Math", questions[0].Categories[0].Name)
	assert.Equal(t, "Logic", questions[0].Categories[1].Name)
}

func TestGroupQuestionRows_StableUnderSubRowReordering(t *testing.T) {
	original := []models.QuestionRow{
		row(1, "Q1", uintPtr(10), strPtr("A"), boolPtr(true), uintPtr(100), strPtr("Math")),
		row(1, "Q1", uintPtr(11), strPtr("B"), boolPtr(false), uintPtr(101), strPtr("Logic")),
	}
	reordered := []models.QuestionRow{original[1], original[0]}

	a := GroupQuestionRows(original)
	b := GroupQuestionRows(reordered)

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	// Same members either way; order within the question follows first
	// appearance.
	assert.ElementsMatch(t, a[0].Answers, b[0].Answers)
	assert.ElementsMatch(t, a[0].Categories, b[0].Categories)
	assert.Equal(t, uint(11), b[0].Answers[0].ID)
}

func TestGroupQuestionRows_Empty(t *testing.T) {
	questions := GroupQuestionRows(nil)
	assert.NotNil(t, questions)
	assert.Empty(t, questions)
}

func TestHideAnswerCorrectness(t *testing.T) {
	rows := []models.QuestionRow{
		row(1, "Q1", uintPtr(10), strPtr("A"), boolPtr(true), nil, nil),
		row(1, "Q1", uintPtr(11), strPtr("B"), boolPtr(false), nil, nil),
	}

	questions := HideAnswerCorrectness(GroupQuestionRows(rows))
	require.Len(t, questions, 1)
	for _, answer := range questions[0].Answers {
		assert.Nil(t, answer.IsCorrect)
	}
}
