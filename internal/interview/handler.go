package interview

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-coach/internal/resumes"
	"interview-coach/internal/shared/server/request"
	"interview-coach/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches interview routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/generate-questions", h.generateQuestions)
	rg.POST("/analyze-answer", h.analyzeAnswer)
}

func (h *Handler) generateQuestions(c *gin.Context) {
	var resume resumes.ResumeData
	if err := request.DecodeObject(c, &resume); err != nil {
		respond.Error(c, http.StatusBadRequest, request.Message(err, "invalid resume data"))
		return
	}
	respond.OK(c, h.Svc.GenerateQuestions(c.Request.Context(), resume))
}

type analyzeAnswerRequest struct {
	Question *string `json:"question" binding:"required"`
	Answer   *string `json:"answer" binding:"required"`
	Type     *string `json:"type" binding:"required"`
}

const missingAnswerFields = "Missing required fields: question, answer, type"

func (h *Handler) analyzeAnswer(c *gin.Context) {
	var req analyzeAnswerRequest
	if err := request.DecodeObject(c, &req); err != nil {
		msg := missingAnswerFields
		if errors.Is(err, request.ErrMalformedBody) {
			msg = request.Message(err, msg)
		}
		respond.Error(c, http.StatusBadRequest, msg)
		return
	}
	respond.OK(c, h.Svc.AnalyzeAnswer(c.Request.Context(), *req.Question, *req.Answer, *req.Type))
}
