package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"quizapi/middleware"
	"quizapi/models"
	"quizapi/services"
)

type ResultHandler struct {
	resultService *services.ResultService
}

func NewResultHandler(resultService *services.ResultService) *ResultHandler {
	return &ResultHandler{resultService: resultService}
}

type submitAnswersRequest struct {
	Answers []models.UserAnswer `json:"answers" binding:"required,dive"`
}

// SubmitAnswers completes a quiz attempt for the calling user.
func (h *ResultHandler) SubmitAnswers(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	quizID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req submitAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.resultService.SubmitAnswers(c.Request.Context(), quizID, user, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// ListResults returns summaries. Admins may filter by quiz and user; other
// callers only ever see their own.
func (h *ResultHandler) ListResults(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var quizID uint
	if raw := c.Query("quiz"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quiz filter"})
			return
		}
		quizID = uint(parsed)
	}

	email := c.Query("user")
	if !user.HasRole("admin") {
		email = user.Email
	}

	results, err := h.resultService.ListResults(c.Request.Context(), quizID, email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// GetResult fetches one summary. Non-admin callers are restricted to their
// own results.
func (h *ResultHandler) GetResult(c *gin.Context) {
	user, ok := middleware.GetUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	resultID, ok := idParam(c, "id")
	if !ok {
		return
	}

	emailFilter := ""
	if !user.HasRole("admin") {
		emailFilter = user.Email
	}

	result, err := h.resultService.GetResult(c.Request.Context(), resultID, emailFilter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetResultDetails returns the cached per-question breakdown, or with
// ?csv=true a file export of it.
func (h *ResultHandler) GetResultDetails(c *gin.Context) {
	resultID, ok := idParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.resultService.GetResultDetail(c.Request.Context(), resultID)
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("csv") == "true" {
		path, err := h.resultService.ExportResultDetail(detail)
		if err != nil {
			respondError(c, err)
			return
		}
		c.FileAttachment(path, "details.csv")
		return
	}

	c.JSON(http.StatusOK, detail)
}
