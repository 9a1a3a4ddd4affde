package ats

import (
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

// RegisterRoutes attaches ATS routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze-ats", h.analyze)
}

func (h *Handler) analyze(c *gin.Context) {
	var resume resumes.ResumeData
	if err := request.DecodeObject(c, &resume); err != nil {
		respond.Error(c, http.StatusBadRequest, request.Message(err, "invalid resume data"))
		return
	}
	respond.OK(c, h.Svc.Analyze(c.Request.Context(), resume))
}
