package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ouppakdigital/quiz-service/internal/models"
	"github.com/ouppakdigital/quiz-service/internal/services"
	"github.com/ouppakdigital/quiz-service/internal/utils"
)

type GradingHandler struct {
	BaseHandler
	gradingService  services.GradingService
	questionService services.QuestionService
}

func NewGradingHandler(
	gradingService services.GradingService,
	questionService services.QuestionService,
	logger utils.Logger,
) *GradingHandler {
	return &GradingHandler{
		BaseHandler:     NewBaseHandler(logger),
		gradingService:  gradingService,
		questionService: questionService,
	}
}

// CalculateScoreRequest evaluates a detached (content, answer) pair; the
// authoring preview uses this before a question is ever saved.
type CalculateScoreRequest struct {
	QuestionType models.QuestionType `json:"question_type" binding:"required"`
	Content      json.RawMessage     `json:"content" binding:"required"`
	Answer       json.RawMessage     `json:"answer"`
}

type CalculateScoreResponse struct {
	Score   int  `json:"score"`
	Correct bool `json:"correct"`
}

// EvaluateAnswerRequest checks one answer against a stored question.
type EvaluateAnswerRequest struct {
	QuestionID uint            `json:"question_id" binding:"required"`
	Answer     json.RawMessage `json:"answer"`
}

type EvaluateAnswerResponse struct {
	Correct  bool   `json:"correct"`
	Answered bool   `json:"answered"`
	Feedback string `json:"feedback"`
}

// CalculateScore evaluates a detached content/answer pair
func (h *GradingHandler) CalculateScore(c *gin.Context) {
	var req CalculateScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}
	if !req.QuestionType.IsValid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid question type",
		})
		return
	}

	score, correct, err := h.gradingService.CalculateScore(c.Request.Context(), req.QuestionType, req.Content, req.Answer)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, CalculateScoreResponse{Score: score, Correct: correct})
}

// EvaluateAnswer grades one answer against a stored question and resolves
// its feedback message
func (h *GradingHandler) EvaluateAnswer(c *gin.Context) {
	var req EvaluateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	question, err := h.questionService.GetByID(c.Request.Context(), req.QuestionID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	correct, answered, err := h.gradingService.EvaluateAnswer(question, req.Answer)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	feedback, err := h.gradingService.Feedback(question, correct)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, EvaluateAnswerResponse{
		Correct:  correct,
		Answered: answered,
		Feedback: feedback,
	})
}
