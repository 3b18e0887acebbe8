package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizapi/services"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	questions, err := h.questionService.GetQuestions(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req services.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.CreateQuestion(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	questionID, ok := idParam(c, "id")
	if !ok {
		return
	}

	question, err := h.questionService.GetQuestion(c.Request.Context(), questionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	questionID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.UpdateQuestion(c.Request.Context(), questionID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.questionService.DeleteQuestion(c.Request.Context(), questionID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *QuestionHandler) AddAnswer(c *gin.Context) {
	questionID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.questionService.AddAnswer(c.Request.Context(), questionID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, answer)
}

func (h *QuestionHandler) UpdateAnswer(c *gin.Context) {
	questionID, ok := idParam(c, "id")
	if !ok {
		return
	}
	answerID, ok := idParam(c, "answerId")
	if !ok {
		return
	}

	var req services.CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.questionService.UpdateAnswer(c.Request.Context(), questionID, answerID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

func (h *QuestionHandler) DeleteAnswer(c *gin.Context) {
	questionID, ok := idParam(c, "id")
	if !ok {
		return
	}
	answerID, ok := idParam(c, "answerId")
	if !ok {
		return
	}

	if err := h.questionService.DeleteAnswer(c.Request.Context(), questionID, answerID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *QuestionHandler) AddQuestionCategory(c *gin.Context) {
	questionID, ok := idParam(c, "id")
	if !ok {
		return
	}
	categoryID, ok := idParam(c, "categoryId")
	if !ok {
		return
	}

	association, err := h.questionService.AddQuestionCategory(c.Request.Context(), questionID, categoryID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, association)
}

func (h *QuestionHandler) DeleteQuestionCategory(c *gin.Context) {
	questionID, ok := idParam(c, "id")
	if !ok {
		return
	}
	categoryID, ok := idParam(c, "categoryId")
	if !ok {
		return
	}

	if err := h.questionService.DeleteQuestionCategory(c.Request.Context(), questionID, categoryID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
