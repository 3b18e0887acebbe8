package services

import (
	"quizapi/models"
)

// GroupQuestionRows rebuilds nested question records from the flat rows of an
// outer join across questions, answers and categories. The caller guarantees
// rows are pre-sorted by question id; within a question, answers and
// categories keep the order of their first appearance and later duplicate
// rows for the same answer or category id are dropped.
func GroupQuestionRows(rows []models.QuestionRow) []models.QuestionDetail {
	questions := make([]models.QuestionDetail, 0)
	index := make(map[uint]int)

	for _, row := range rows {
		pos, ok := index[row.ID]
		if !ok {
			pos = len(questions)
			index[row.ID] = pos
			questions = append(questions, models.QuestionDetail{
				ID:           row.ID,
				QuestionText: row.QuestionText,
				Answers:      []models.AnswerInDetail{},
				Categories:   []models.CategoryBrief{},
			})
		}
		question := &questions[pos]

		if row.AnswerID != nil && !containsAnswer(question.Answers, *row.AnswerID) {
			isCorrect := false
			if row.IsCorrect != nil {
				isCorrect = *row.IsCorrect
			}
			question.Answers = append(question.Answers, models.AnswerInDetail{
				ID:         *row.AnswerID,
				AnswerText: derefString(row.AnswerText),
				IsCorrect:  &isCorrect,
			})
		}

		if row.CategoryID != nil && !containsCategory(question.Categories, *row.CategoryID) {
			question.Categories = append(question.Categories, models.CategoryBrief{
				ID:   *row.CategoryID,
				Name: derefString(row.CategoryName),
			})
		}
	}

	return questions
}

// HideAnswerCorrectness strips the correctness flag from grouped questions for
// the non-admin view.
func HideAnswerCorrectness(questions []models.QuestionDetail) []models.QuestionDetail {
	for i := range questions {
		for j := range questions[i].Answers {
			questions[i].Answers[j].IsCorrect = nil
		}
	}
	return questions
}

func containsAnswer(answers []models.AnswerInDetail, id uint) bool {
	for _, a := range answers {
		if a.ID == id {
			return true
		}
	}
	return false
}

func containsCategory(categories []models.CategoryBrief, id uint) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
