package jobs

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"interview-coach/internal/ats"
	"interview-coach/internal/resumes"
	"interview-coach/internal/shared/server/middleware"
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

// RegisterRoutes attaches job search routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/search-jobs", h.search)
}

type searchRequest struct {
	ResumeData     *resumes.ResumeData `json:"resume_data" binding:"required"`
	ATSAnalysis    *ats.Analysis       `json:"ats_analysis" binding:"required"`
	InterviewScore *float64            `json:"interview_score"`
	UserEmail      string              `json:"user_email"`
	Location       string              `json:"location"`
}

const missingSearchFields = "Missing required fields: resume_data, ats_analysis"

func (h *Handler) search(c *gin.Context) {
	var req searchRequest
	if err := request.DecodeObject(c, &req); err != nil {
		msg := missingSearchFields
		if errors.Is(err, request.ErrMalformedBody) {
			msg = request.Message(err, msg)
		}
		respond.Error(c, http.StatusBadRequest, msg)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.UserEmail))
	middleware.SetUserEmail(c, email)

	result := h.Svc.Search(c.Request.Context(), SearchRequest{
		Resume:         *req.ResumeData,
		ATS:            req.ATSAnalysis.Normalize(),
		InterviewScore: interviewScore(req.InterviewScore),
		UserEmail:      email,
		Location:       req.Location,
	})
	middleware.SetJobSource(c, result.Source)

	respond.OK(c, result)
}

func interviewScore(raw *float64) int {
	if raw == nil || math.IsNaN(*raw) {
		return 0
	}
	score := int(math.Round(*raw))
	switch {
	case score < 0:
		return 0
	case score > 100:
		return 100
	default:
		return score
	}
}
