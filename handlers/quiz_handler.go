package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quizapi/services"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// GetQuizzes lists every quiz for admins.
func (h *QuizHandler) GetQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.GetQuizzes(c.Request.Context(), false)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// GetActiveQuizzes lists the quizzes end users may take.
func (h *QuizHandler) GetActiveQuizzes(c *gin.Context) {
	quizzes, err := h.quizService.GetQuizzes(c.Request.Context(), true)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req services.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.CreateQuiz(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID, ok := idParam(c, "id")
	if !ok {
		return
	}

	quiz, err := h.quizService.GetQuiz(c.Request.Context(), quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) UpdateQuiz(c *gin.Context) {
	quizID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.UpdateQuiz(c.Request.Context(), quizID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID, ok := idParam(c, "id")
	if !ok {
		return
	}

	if err := h.quizService.DeleteQuiz(c.Request.Context(), quizID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetQuizQuestions returns the quiz's questions with answer correctness
// visible, for admins.
func (h *QuizHandler) GetQuizQuestions(c *gin.Context) {
	quizID, ok := idParam(c, "id")
	if !ok {
		return
	}

	questions, err := h.quizService.GetQuizQuestions(c.Request.Context(), quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// GetQuizQuestionsForUser returns the same questions with answer correctness
// stripped.
func (h *QuizHandler) GetQuizQuestionsForUser(c *gin.Context) {
	quizID, ok := idParam(c, "id")
	if !ok {
		return
	}

	questions, err := h.quizService.GetQuizQuestions(c.Request.Context(), quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, services.HideAnswerCorrectness(questions))
}

type addQuizQuestionsRequest struct {
	Questions []uint `json:"questions" binding:"required,min=1"`
}

func (h *QuizHandler) AddQuizQuestions(c *gin.Context) {
	quizID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req addQuizQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	associations, err := h.quizService.AddQuizQuestions(c.Request.Context(), quizID, req.Questions)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, associations)
}

func (h *QuizHandler) DeleteQuizQuestion(c *gin.Context) {
	quizID, ok := idParam(c, "id")
	if !ok {
		return
	}
	questionID, ok := idParam(c, "questionId")
	if !ok {
		return
	}

	if err := h.quizService.DeleteQuizQuestion(c.Request.Context(), quizID, questionID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
